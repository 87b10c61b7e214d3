package repos

import (
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, name, email, password, role, image, created_at`

func (r *UserRepo) ByID(id int64) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, r.db.Rebind(`SELECT `+userCols+` FROM users WHERE id = ?`), id)
	return u, err
}

func (r *UserRepo) ByEmail(email string) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, r.db.Rebind(`SELECT `+userCols+` FROM users WHERE LOWER(email) = LOWER(?)`), email)
	return u, err
}

// Create stores the bcrypt hash, never the raw password.
func (r *UserRepo) Create(name, email, rawPassword, role string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), 12)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.db.Get(&id, r.db.Rebind(`
	  INSERT INTO users(name, email, password, role) VALUES (?, ?, ?, ?) RETURNING id
	`), name, email, string(hash), role)
	return id, err
}
