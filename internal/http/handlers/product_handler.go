package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/domain"
	applog "github.com/agustrio1/sveltekit-ecommerce-sub001/internal/log"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/services"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List is the listing endpoint. Whatever goes wrong, the caller gets the
// envelope with success:false, never a bare error page.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q != "" {
		var ok bool
		if q, ok = validate.Q(q); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false, "message": "enter a valid keyword (letters/numbers only)",
			})
		}
	}

	res, err := h.Catalog.ListProducts(services.ListQuery{
		Query:         q,
		CategoryID:    int64(c.QueryInt("categoryId")),
		SortBy:        c.Query("sortBy"),
		SortOrder:     c.Query("sortOrder"),
		Page:          c.QueryInt("page", 1),
		PerPage:       c.QueryInt("perPage", services.DefaultPerPage),
		WithSoldCount: c.QueryBool("withSoldCount"),
	})
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "could not load products",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    res.Products,
		"pagination": fiber.Map{
			"page":       res.Page,
			"totalPages": res.TotalPages,
			"total":      res.Total,
		},
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "product not found"})
	}
	p, err := h.Catalog.GetProductBySlug(slug)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			applog.Error(c, "products.detail.fail", err, map[string]any{"slug": slug})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "product not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": p})
}

type productRequest struct {
	Slug        string              `json:"slug"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Stock       int                 `json:"stock"`
	Rating      decimal.Decimal     `json:"rating"`
	CategoryID  int64               `json:"categoryId"`
	Height      decimal.NullDecimal `json:"height"`
	Length      decimal.NullDecimal `json:"length"`
	Weight      decimal.NullDecimal `json:"weight"`
	Width       decimal.NullDecimal `json:"width"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid body"})
	}
	slug, okSlug := validate.Slug(req.Slug)
	name, okName := validate.Name(req.Name)
	if !okSlug || !okName || req.CategoryID <= 0 || req.Price.IsNegative() || req.Stock < 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid product"})
	}

	p := domain.Product{
		Slug:        slug,
		Name:        name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
		Rating:      req.Rating,
		CategoryID:  req.CategoryID,
		Dimensions: domain.Dimensions{
			Height: req.Height, Length: req.Length, Weight: req.Weight, Width: req.Width,
		},
	}
	if err := h.Catalog.CreateProduct(&p); err != nil {
		applog.Error(c, "products.create.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "could not create product"})
	}
	applog.Audit(c, "products.create", map[string]any{"id": p.ID, "slug": p.Slug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid id"})
	}
	if err := h.Catalog.DeleteProduct(int64(id)); err != nil {
		if errors.Is(err, services.ErrProductInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		applog.Error(c, "products.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "could not delete product"})
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"success": true})
}
