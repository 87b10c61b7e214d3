package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/events"
	applog "github.com/agustrio1/sveltekit-ecommerce-sub001/internal/log"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/repos"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrBadQuantity       = errors.New("quantity must be positive")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type OrderService struct {
	Prods  *repos.ProductRepo
	Cats   *repos.CategoryRepo
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Events events.Publisher
}

func NewOrderService(prods *repos.ProductRepo, cats *repos.CategoryRepo, orders *repos.OrderRepo, users *repos.UserRepo, ev events.Publisher) *OrderService {
	if ev == nil {
		ev = events.NopPublisher{}
	}
	return &OrderService{Prods: prods, Cats: cats, Orders: orders, Users: users, Events: ev}
}

type CheckoutItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CheckoutRequest struct {
	UserID           int64           `json:"userId"`
	Items            []CheckoutItem  `json:"items"`
	RecipientName    string          `json:"recipientName"`
	RecipientPhone   string          `json:"recipientPhone"`
	RecipientAddress string          `json:"recipientAddress"`
	ShipperName      string          `json:"shipperName"`
	ShipperPhone     string          `json:"shipperPhone"`
	ShipperAddress   string          `json:"shipperAddress"`
	Courier          string          `json:"courier"`
	CourierService   string          `json:"courierService"`
	ShippingCost     decimal.Decimal `json:"shippingCost"`
}

// Place builds the snapshot items from current product state, then hands the
// whole checkout to the repo as one transaction. Prices and dimensions are
// copied at this point and stay frozen on the order.
func (s *OrderService) Place(ctx context.Context, req CheckoutRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, ErrBadQuantity
		}
	}
	if _, err := s.Users.ByID(req.UserID); err != nil {
		return domain.Order{}, err
	}

	catNames := map[int64]string{}
	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		p, err := s.Prods.Get(it.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		catName, ok := catNames[p.CategoryID]
		if !ok {
			c, err := s.Cats.ByID(p.CategoryID)
			if err != nil {
				return domain.Order{}, err
			}
			catName = c.Name
			catNames[p.CategoryID] = catName
		}
		items = append(items, domain.OrderItem{
			ProductID:    p.ID,
			Name:         p.Name,
			Description:  p.Description,
			CategoryName: catName,
			Price:        p.Price.Round(2),
			Dimensions:   p.Dimensions,
			Quantity:     it.Quantity,
		})
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	id := ulid.Make().String()
	order := domain.Order{
		ID:               id,
		OrderNumber:      orderNumber(id),
		UserID:           req.UserID,
		Subtotal:         subtotal.Round(2),
		ShippingCost:     req.ShippingCost.Round(2),
		Total:            subtotal.Add(req.ShippingCost).Round(2),
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientAddress: req.RecipientAddress,
		ShipperName:      req.ShipperName,
		ShipperPhone:     req.ShipperPhone,
		ShipperAddress:   req.ShipperAddress,
		Courier:          req.Courier,
		CourierService:   req.CourierService,
		Status:           domain.StatusPending,
	}

	if err := s.Orders.Place(&order, items); err != nil {
		return domain.Order{}, err
	}

	if err := s.Events.PublishOrderPlaced(ctx, events.OrderPlaced{
		EventID:     uuid.NewString(),
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Total:       order.Total,
		OccurredAt:  time.Now().UTC(),
	}); err != nil {
		applog.Error(nil, "events.order_placed.fail", err, map[string]any{"order_id": order.ID})
	}
	return order, nil
}

func (s *OrderService) Get(id string) (domain.Order, []domain.OrderItem, error) {
	return s.Orders.Get(id)
}

func (s *OrderService) ListByUser(userID int64) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

// UpdateStatus enforces the forward-only status flow.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	o, _, err := s.Orders.Get(id)
	if err != nil {
		return err
	}
	if !domain.ValidStatus(status) || !domain.ValidTransition(o.Status, status) {
		return ErrInvalidTransition
	}
	if err := s.Orders.UpdateStatus(id, status); err != nil {
		return err
	}
	if err := s.Events.PublishStatusChanged(ctx, events.OrderStatusChanged{
		EventID:    uuid.NewString(),
		OrderID:    id,
		From:       o.Status,
		To:         status,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		applog.Error(nil, "events.status_changed.fail", err, map[string]any{"order_id": id})
	}
	return nil
}

func orderNumber(id string) string {
	return "ORD-" + time.Now().UTC().Format("20060102") + "-" + id[len(id)-6:]
}
