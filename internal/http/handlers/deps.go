package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/config"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/events"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/repos"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	OrderHandler    *OrderHandler
	PageHandler     *PageHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, ev events.Publisher) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	orderSvc := services.NewOrderService(prodRepo, catRepo, orderRepo, userRepo, ev)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		PageHandler:     &PageHandler{Catalog: catalogSvc},
	}
}
