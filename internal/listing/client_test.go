package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "lamp", r.URL.Query().Get("q"))
		assert.Equal(t, "popular", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "true", r.URL.Query().Get("withSoldCount"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":1,"slug":"brass-floor-lamp","name":"Brass Floor Lamp","price":"89.99","soldCount":7}],"pagination":{"page":1,"totalPages":1,"total":1}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	res, err := c.ListProducts(context.Background(), Params{
		Page: 1, PerPage: 12, Query: "lamp", SortBy: "popular", WithSoldCount: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Brass Floor Lamp", res.Products[0].Name)
	assert.Equal(t, int64(7), res.Products[0].SoldCount)
	assert.Equal(t, 1, res.Pagination.Total)
}

func TestHTTPClientErrorKinds(t *testing.T) {
	// server failure envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"could not load products"}`))
	}))
	c := NewHTTPClient(srv.URL)
	_, err := c.ListProducts(context.Background(), Params{Page: 1, PerPage: 12})
	assert.ErrorIs(t, err, ErrServer)
	srv.Close()

	// malformed body
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	c = NewHTTPClient(srv.URL)
	_, err = c.ListProducts(context.Background(), Params{Page: 1, PerPage: 12})
	assert.ErrorIs(t, err, ErrMalformed)
	srv.Close()

	// network failure: the server is already gone
	_, err = c.ListProducts(context.Background(), Params{Page: 1, PerPage: 12})
	assert.ErrorIs(t, err, ErrNetwork)
}
