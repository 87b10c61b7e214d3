package repos

import (
	"strings"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ListParams is the fully-validated listing query. SortBy is a column key,
// not a UI sort choice; the service layer whitelists it before it gets here.
type ListParams struct {
	Query         string
	CategoryID    int64
	SortBy        string // price | soldCount | rating | id
	SortOrder     string // asc | desc
	Page          int    // 1-based
	PerPage       int
	WithSoldCount bool
}

var sortColumns = map[string]string{
	"price":     "p.price",
	"soldCount": "sold_count",
	"rating":    "p.rating",
	"id":        "p.id",
}

const productCols = `p.id, p.slug, p.name, p.description, p.price, p.stock, p.rating,
	p.category_id, p.height, p.length, p.weight, p.width, p.created_at`

// List returns one page of products plus the total match count.
func (r *ProductRepo) List(p ListParams) ([]domain.Product, int, error) {
	where := `1=1`
	args := []any{}
	if p.Query != "" {
		q := "%" + strings.ToLower(p.Query) + "%"
		where += ` AND (LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)`
		args = append(args, q, q)
	}
	if p.CategoryID > 0 {
		where += ` AND p.category_id = ?`
		args = append(args, p.CategoryID)
	}

	var total int
	if err := r.db.Get(&total, r.db.Rebind(`SELECT COUNT(*) FROM products p WHERE `+where), args...); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[p.SortBy]
	if !ok {
		col, p.SortOrder = "p.id", "desc"
	}
	dir := "DESC"
	if strings.EqualFold(p.SortOrder, "asc") {
		dir = "ASC"
	}

	soldExpr, join, group := `0 AS sold_count`, ``, ``
	if p.WithSoldCount || p.SortBy == "soldCount" {
		soldExpr = `COALESCE(SUM(oi.quantity), 0) AS sold_count`
		join = ` LEFT JOIN order_items oi ON oi.product_id = p.id`
		group = ` GROUP BY p.id`
	}

	query := `SELECT ` + productCols + `, ` + soldExpr + `
	  FROM products p` + join + `
	  WHERE ` + where + group + `
	  ORDER BY ` + col + ` ` + dir + `, p.id DESC
	  LIMIT ? OFFSET ?`
	args = append(args, p.PerPage, (p.Page-1)*p.PerPage)

	var out []domain.Product
	err := r.db.Select(&out, r.db.Rebind(query), args...)
	return out, total, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, r.db.Rebind(`SELECT `+productCols+`, 0 AS sold_count FROM products p WHERE p.id = ?`), id)
	return p, err
}

func (r *ProductRepo) BySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, r.db.Rebind(`SELECT `+productCols+`, 0 AS sold_count FROM products p WHERE p.slug = ?`), slug)
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	return r.db.Get(&p.ID, r.db.Rebind(`
	  INSERT INTO products(slug, name, description, price, stock, rating, category_id, height, length, weight, width)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	  RETURNING id
	`), p.Slug, p.Name, p.Description, p.Price, p.Stock, p.Rating, p.CategoryID,
		p.Height, p.Length, p.Weight, p.Width)
}

func (r *ProductRepo) Update(p *domain.Product) error {
	_, err := r.db.Exec(r.db.Rebind(`
	  UPDATE products
	  SET slug = ?, name = ?, description = ?, price = ?, stock = ?, rating = ?,
	      category_id = ?, height = ?, length = ?, weight = ?, width = ?
	  WHERE id = ?
	`), p.Slug, p.Name, p.Description, p.Price, p.Stock, p.Rating,
		p.CategoryID, p.Height, p.Length, p.Weight, p.Width, p.ID)
	return err
}

// Delete fails while order items still reference the product; history wins.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	return err
}

func (r *ProductRepo) Images(productID int64) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	err := r.db.Select(&out, r.db.Rebind(`
	  SELECT id, product_id, image FROM product_images WHERE product_id = ? ORDER BY id
	`), productID)
	return out, err
}

func (r *ProductRepo) AddImage(productID int64, image string) error {
	_, err := r.db.Exec(r.db.Rebind(`INSERT INTO product_images(product_id, image) VALUES (?, ?)`), productID, image)
	return err
}
