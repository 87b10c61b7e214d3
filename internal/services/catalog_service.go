package services

import (
	"errors"
	"strings"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/repos"
	"github.com/lib/pq"
)

var (
	ErrCategoryInUse = errors.New("category still has products")
	ErrProductInUse  = errors.New("product is referenced by order history")
)

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ListQuery carries the raw listing parameters as they arrive from the
// endpoint. SortBy is one of the enumerated sort keys below; anything else
// falls back to newest-first.
type ListQuery struct {
	Query         string
	CategoryID    int64
	SortBy        string
	SortOrder     string // accepted for contract compatibility; the fixed lookup wins
	Page          int
	PerPage       int
	WithSoldCount bool
}

type ListResult struct {
	Products   []domain.Product
	Page       int
	TotalPages int
	Total      int
}

// Fixed sort lookup. The key is what the page puts in the address bar and
// the fetch; the value is the column and direction the store actually sorts on.
var sortFields = map[string]struct{ field, order string }{
	"price_low":  {"price", "asc"},
	"price_high": {"price", "desc"},
	"popular":    {"soldCount", "desc"},
	"rating":     {"rating", "desc"},
	"newest":     {"id", "desc"},
}

func SortFor(choice string) (field, order string) {
	if f, ok := sortFields[choice]; ok {
		return f.field, f.order
	}
	return "id", "desc"
}

// ListProducts clamps pagination, resolves the sort key and runs the listing
// query.
func (s *CatalogService) ListProducts(q ListQuery) (ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	field, order := SortFor(q.SortBy)

	rows, total, err := s.Prods.List(repos.ListParams{
		Query:         q.Query,
		CategoryID:    q.CategoryID,
		SortBy:        field,
		SortOrder:     order,
		Page:          q.Page,
		PerPage:       q.PerPage,
		WithSoldCount: q.WithSoldCount,
	})
	if err != nil {
		return ListResult{}, err
	}
	totalPages := (total + q.PerPage - 1) / q.PerPage
	if rows == nil {
		rows = []domain.Product{}
	}
	return ListResult{Products: rows, Page: q.Page, TotalPages: totalPages, Total: total}, nil
}

type ProductDetail struct {
	domain.Product
	Images []domain.ProductImage `json:"images"`
}

func (s *CatalogService) GetProductBySlug(slug string) (ProductDetail, error) {
	p, err := s.Prods.BySlug(slug)
	if err != nil {
		return ProductDetail{}, err
	}
	imgs, err := s.Prods.Images(p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, Images: imgs}, nil
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) CreateCategory(name, slug string) (domain.Category, error) {
	id, err := s.Cats.Create(name, slug)
	if err != nil {
		return domain.Category{}, err
	}
	return domain.Category{ID: id, Name: name, Slug: slug}, nil
}

func (s *CatalogService) DeleteCategory(id int64) error {
	if err := s.Cats.Delete(id); err != nil {
		if isFKViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	return nil
}

func (s *CatalogService) CreateProduct(p *domain.Product) error {
	return s.Prods.Create(p)
}

func (s *CatalogService) UpdateProduct(p *domain.Product) error {
	return s.Prods.Update(p)
}

func (s *CatalogService) DeleteProduct(id int64) error {
	if err := s.Prods.Delete(id); err != nil {
		if isFKViolation(err) {
			return ErrProductInUse
		}
		return err
	}
	return nil
}

// isFKViolation recognizes referential-integrity errors from both drivers.
func isFKViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
