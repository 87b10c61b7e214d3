package domain

import (
	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Email     string  `db:"email" json:"email"`
	Password  string  `db:"password" json:"-"` // bcrypt hash
	Role      string  `db:"role" json:"role"`  // admin | customer
	Image     *string `db:"image" json:"image,omitempty"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// Dimensions are optional shipping measurements shared by products and
// order-item snapshots.
type Dimensions struct {
	Height decimal.NullDecimal `db:"height" json:"height"`
	Length decimal.NullDecimal `db:"length" json:"length"`
	Weight decimal.NullDecimal `db:"weight" json:"weight"`
	Width  decimal.NullDecimal `db:"width" json:"width"`
}

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Slug        string          `db:"slug" json:"slug"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	Rating      decimal.Decimal `db:"rating" json:"rating"`
	CategoryID  int64           `db:"category_id" json:"categoryId"`
	Dimensions
	CreatedAt string `db:"created_at" json:"createdAt"`
	// SoldCount is filled only when the listing query is asked for it.
	SoldCount int64 `db:"sold_count" json:"soldCount,omitempty"`
}

type ProductImage struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"productId"`
	Image     string `db:"image" json:"image"`
}
