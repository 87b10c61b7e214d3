package domain

import "github.com/shopspring/decimal"

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// statusFlow holds the allowed forward transitions. Orders are append-only
// history; status is the only mutable field after checkout.
var statusFlow = map[string][]string{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

func ValidTransition(from, to string) bool {
	for _, s := range statusFlow[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID               string          `db:"id" json:"id"` // 26-char ULID
	OrderNumber      string          `db:"order_number" json:"orderNumber"`
	UserID           int64           `db:"user_id" json:"userId"`
	Subtotal         decimal.Decimal `db:"subtotal" json:"subtotal"`
	ShippingCost     decimal.Decimal `db:"shipping_cost" json:"shippingCost"`
	Total            decimal.Decimal `db:"total" json:"total"`
	RecipientName    string          `db:"recipient_name" json:"recipientName"`
	RecipientPhone   string          `db:"recipient_phone" json:"recipientPhone"`
	RecipientAddress string          `db:"recipient_address" json:"recipientAddress"`
	ShipperName      string          `db:"shipper_name" json:"shipperName"`
	ShipperPhone     string          `db:"shipper_phone" json:"shipperPhone"`
	ShipperAddress   string          `db:"shipper_address" json:"shipperAddress"`
	Courier          string          `db:"courier" json:"courier"`
	CourierService   string          `db:"courier_service" json:"courierService"`
	Status           string          `db:"status" json:"status"`
	CreatedAt        string          `db:"created_at" json:"createdAt"`
}

// OrderItem is a snapshot taken at checkout: name, description, category,
// price and dimensions are copied from the product and never re-read, so
// later catalog edits do not rewrite order history.
type OrderItem struct {
	ID           int64           `db:"id" json:"id"`
	OrderID      string          `db:"order_id" json:"orderId"`
	ProductID    int64           `db:"product_id" json:"productId"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	CategoryName string          `db:"category_name" json:"categoryName"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Dimensions
	Quantity int `db:"quantity" json:"quantity"`
}
