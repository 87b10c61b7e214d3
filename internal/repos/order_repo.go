package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	"github.com/jmoiron/sqlx"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, order_number, user_id, subtotal, shipping_cost, total,
	recipient_name, recipient_phone, recipient_address,
	shipper_name, shipper_phone, shipper_address,
	courier, courier_service, status, created_at`

// Place writes the order header, its snapshot items and the stock decrements
// in one transaction. Any guard failure rolls the whole checkout back, so an
// order never exists with missing items or unreserved stock.
func (r *OrderRepo) Place(o *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		res, err := tx.Exec(tx.Rebind(`
		  UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?
		`), it.Quantity, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: product %d", ErrInsufficientStock, it.ProductID)
		}
	}

	if _, err := tx.Exec(tx.Rebind(`
	  INSERT INTO orders(id, order_number, user_id, subtotal, shipping_cost, total,
	    recipient_name, recipient_phone, recipient_address,
	    shipper_name, shipper_phone, shipper_address,
	    courier, courier_service, status)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), o.ID, o.OrderNumber, o.UserID, o.Subtotal, o.ShippingCost, o.Total,
		o.RecipientName, o.RecipientPhone, o.RecipientAddress,
		o.ShipperName, o.ShipperPhone, o.ShipperAddress,
		o.Courier, o.CourierService, o.Status); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(tx.Rebind(`
		  INSERT INTO order_items(order_id, product_id, name, description, category_name,
		    price, height, length, weight, width, quantity)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`), o.ID, it.ProductID, it.Name, it.Description, it.CategoryName,
			it.Price, it.Height, it.Length, it.Weight, it.Width, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, r.db.Rebind(`SELECT `+orderCols+` FROM orders WHERE id = ?`), id); err != nil {
		return domain.Order{}, nil, err
	}
	var items []domain.OrderItem
	if err := r.db.Select(&items, r.db.Rebind(`
	  SELECT id, order_id, product_id, name, description, category_name,
	         price, height, length, weight, width, quantity
	  FROM order_items WHERE order_id = ? ORDER BY id
	`), id); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListByUser(userID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, r.db.Rebind(`
	  SELECT `+orderCols+` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC
	`), userID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE orders SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
