package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/events"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/repos"
)

type capturePublisher struct {
	placed  []events.OrderPlaced
	changed []events.OrderStatusChanged
	fail    error
}

func (p *capturePublisher) PublishOrderPlaced(_ context.Context, ev events.OrderPlaced) error {
	p.placed = append(p.placed, ev)
	return p.fail
}

func (p *capturePublisher) PublishStatusChanged(_ context.Context, ev events.OrderStatusChanged) error {
	p.changed = append(p.changed, ev)
	return p.fail
}

func (p *capturePublisher) Close() error { return nil }

func testOrders(t *testing.T, pub events.Publisher) (*OrderService, *repos.ProductRepo) {
	t.Helper()
	db := testDB(t)
	prods := repos.NewProductRepo(db)
	svc := NewOrderService(prods, repos.NewCategoryRepo(db), repos.NewOrderRepo(db), repos.NewUserRepo(db), pub)
	return svc, prods
}

func checkout(items ...CheckoutItem) CheckoutRequest {
	return CheckoutRequest{
		UserID:           2,
		Items:            items,
		RecipientName:    "Sari",
		RecipientAddress: "Jl. Melati 5, Yogyakarta",
		ShippingCost:     decimal.RequireFromString("10.50"),
	}
}

func TestPlaceComputesTotalsAndSnapshots(t *testing.T) {
	pub := &capturePublisher{}
	svc, prods := testOrders(t, pub)

	order, err := svc.Place(context.Background(),
		checkout(CheckoutItem{ProductID: 3, Quantity: 2}, CheckoutItem{ProductID: 5, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	if len(order.ID) != 26 {
		t.Errorf("order id %q, want 26 chars", order.ID)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD-") || !strings.HasSuffix(order.OrderNumber, order.ID[len(order.ID)-6:]) {
		t.Errorf("order number %q does not follow ORD-<date>-<id tail>", order.OrderNumber)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("status = %q", order.Status)
	}
	if want := decimal.RequireFromString("238.98"); !order.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", order.Subtotal, want)
	}
	if want := decimal.RequireFromString("249.48"); !order.Total.Equal(want) {
		t.Errorf("total = %s, want %s", order.Total, want)
	}

	// stock is reserved in the same transaction
	lamp, err := prods.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	if lamp.Stock != 18 {
		t.Errorf("stock after checkout = %d, want 18", lamp.Stock)
	}

	_, items, err := svc.Get(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].CategoryName != "Lighting" || items[1].CategoryName != "Textiles" {
		t.Errorf("snapshot categories: %q, %q", items[0].CategoryName, items[1].CategoryName)
	}
	if !items[0].Price.Equal(decimal.RequireFromString("89.99")) {
		t.Errorf("snapshot price = %s", items[0].Price)
	}

	if len(pub.placed) != 1 || pub.placed[0].OrderID != order.ID {
		t.Errorf("placed events = %+v", pub.placed)
	}
}

func TestSnapshotSurvivesCatalogEdits(t *testing.T) {
	svc, prods := testOrders(t, nil)

	order, err := svc.Place(context.Background(), checkout(CheckoutItem{ProductID: 3, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	lamp, err := prods.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	lamp.Name = "Renamed Lamp"
	lamp.Price = decimal.RequireFromString("999.00")
	if err := prods.Update(&lamp); err != nil {
		t.Fatal(err)
	}

	_, items, err := svc.Get(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Name != "Brass Floor Lamp" {
		t.Errorf("snapshot name rewritten to %q", items[0].Name)
	}
	if !items[0].Price.Equal(decimal.RequireFromString("89.99")) {
		t.Errorf("snapshot price rewritten to %s", items[0].Price)
	}
}

func TestDeleteProductWithOrderHistory(t *testing.T) {
	db := testDB(t)
	prods := repos.NewProductRepo(db)
	cats := repos.NewCategoryRepo(db)
	orders := NewOrderService(prods, cats, repos.NewOrderRepo(db), repos.NewUserRepo(db), nil)
	catalog := NewCatalogService(cats, prods)

	if _, err := orders.Place(context.Background(), checkout(CheckoutItem{ProductID: 3, Quantity: 1})); err != nil {
		t.Fatal(err)
	}

	if err := catalog.DeleteProduct(3); !errors.Is(err, ErrProductInUse) {
		t.Errorf("delete ordered product: %v, want ErrProductInUse", err)
	}

	// a product with no order history and no images deletes cleanly
	p := domain.Product{Slug: "test-stool", Name: "Test Stool", Price: decimal.RequireFromString("19.00"), Stock: 1, CategoryID: 1}
	if err := catalog.CreateProduct(&p); err != nil {
		t.Fatal(err)
	}
	if err := catalog.DeleteProduct(p.ID); err != nil {
		t.Errorf("delete unordered product: %v", err)
	}
}

func TestPlaceInsufficientStockRollsBack(t *testing.T) {
	svc, prods := testOrders(t, nil)

	// first item would succeed on its own; the second runs the order dry
	_, err := svc.Place(context.Background(),
		checkout(CheckoutItem{ProductID: 3, Quantity: 2}, CheckoutItem{ProductID: 5, Quantity: 999}))
	if !errors.Is(err, repos.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	lamp, err := prods.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	if lamp.Stock != 20 {
		t.Errorf("stock = %d after rollback, want 20", lamp.Stock)
	}

	orders, err := svc.ListByUser(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 0 {
		t.Errorf("failed checkout left %d orders behind", len(orders))
	}
}

func TestPlaceValidation(t *testing.T) {
	svc, _ := testOrders(t, nil)

	if _, err := svc.Place(context.Background(), checkout()); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("no items: %v", err)
	}
	if _, err := svc.Place(context.Background(), checkout(CheckoutItem{ProductID: 3, Quantity: 0})); !errors.Is(err, ErrBadQuantity) {
		t.Errorf("zero quantity: %v", err)
	}

	req := checkout(CheckoutItem{ProductID: 3, Quantity: 1})
	req.UserID = 99
	if _, err := svc.Place(context.Background(), req); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("unknown user: %v", err)
	}
	if _, err := svc.Place(context.Background(), checkout(CheckoutItem{ProductID: 42, Quantity: 1})); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("unknown product: %v", err)
	}
}

func TestPlaceSucceedsWhenPublisherFails(t *testing.T) {
	pub := &capturePublisher{fail: errors.New("broker down")}
	svc, _ := testOrders(t, pub)

	order, err := svc.Place(context.Background(), checkout(CheckoutItem{ProductID: 5, Quantity: 1}))
	if err != nil {
		t.Fatalf("checkout must not depend on the broker: %v", err)
	}
	if _, _, err := svc.Get(order.ID); err != nil {
		t.Errorf("order not stored: %v", err)
	}
}

func TestStatusFlow(t *testing.T) {
	pub := &capturePublisher{}
	svc, _ := testOrders(t, pub)
	ctx := context.Background()

	order, err := svc.Place(ctx, checkout(CheckoutItem{ProductID: 5, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateStatus(ctx, order.ID, domain.StatusDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending -> delivered: %v", err)
	}
	if err := svc.UpdateStatus(ctx, order.ID, "bogus"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("unknown status: %v", err)
	}

	for _, next := range []string{domain.StatusPaid, domain.StatusShipped, domain.StatusDelivered} {
		if err := svc.UpdateStatus(ctx, order.ID, next); err != nil {
			t.Fatalf("-> %s: %v", next, err)
		}
	}
	if err := svc.UpdateStatus(ctx, order.ID, domain.StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("delivered is terminal, got %v", err)
	}

	o, _, err := svc.Get(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.StatusDelivered {
		t.Errorf("status = %q", o.Status)
	}
	if len(pub.changed) != 3 {
		t.Errorf("status events = %d, want 3", len(pub.changed))
	}

	if err := svc.UpdateStatus(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV", domain.StatusPaid); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("unknown order: %v", err)
	}
}
