package repos

import (
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name, slug FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) ByID(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, r.db.Rebind(`SELECT id, name, slug FROM categories WHERE id = ?`), id)
	return c, err
}

func (r *CategoryRepo) BySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, r.db.Rebind(`SELECT id, name, slug FROM categories WHERE slug = ?`), slug)
	return c, err
}

func (r *CategoryRepo) Create(name, slug string) (int64, error) {
	var id int64
	err := r.db.Get(&id, r.db.Rebind(`INSERT INTO categories(name, slug) VALUES (?, ?) RETURNING id`), name, slug)
	return id, err
}

// Delete fails with the driver's foreign-key error while products still
// reference the category. No cascade, by policy.
func (r *CategoryRepo) Delete(id int64) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	return err
}
