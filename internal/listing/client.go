package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
)

// The three failure states stay distinguishable even though the page renders
// them all as "no products".
var (
	ErrNetwork   = errors.New("listing: request failed")
	ErrMalformed = errors.New("listing: malformed response")
	ErrServer    = errors.New("listing: server reported failure")
)

// Params mirrors the listing endpoint's query string.
type Params struct {
	Page          int
	PerPage       int
	Query         string
	CategoryID    int64
	SortBy        string
	SortOrder     string
	WithSoldCount bool
}

func (p Params) Values() url.Values {
	vals := url.Values{}
	vals.Set("page", strconv.Itoa(p.Page))
	vals.Set("perPage", strconv.Itoa(p.PerPage))
	if p.Query != "" {
		vals.Set("q", p.Query)
	}
	if p.CategoryID > 0 {
		vals.Set("categoryId", strconv.FormatInt(p.CategoryID, 10))
	}
	if p.SortBy != "" {
		vals.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		vals.Set("sortOrder", p.SortOrder)
	}
	if p.WithSoldCount {
		vals.Set("withSoldCount", "true")
	}
	return vals
}

type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

type Result struct {
	Products   []domain.Product
	Pagination Pagination
}

type Client interface {
	ListProducts(ctx context.Context, p Params) (Result, error)
}

// HTTPClient talks to the listing endpoint over plain HTTP.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{BaseURL: baseURL, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

func (c *HTTPClient) ListProducts(ctx context.Context, p Params) (Result, error) {
	u := c.BaseURL + "/api/v1/products?" + p.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success    bool             `json:"success"`
		Data       []domain.Product `json:"data"`
		Pagination Pagination       `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !envelope.Success {
		return Result{}, ErrServer
	}
	return Result{Products: envelope.Data, Pagination: envelope.Pagination}, nil
}
