package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/agustrio1/sveltekit-ecommerce-sub001/internal/log"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/services"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not load categories"})
	}
	return c.JSON(fiber.Map{"success": true, "data": cats})
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid body"})
	}
	name, okName := validate.Name(req.Name)
	slug, okSlug := validate.Slug(req.Slug)
	if !okName || !okSlug {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid category"})
	}
	cat, err := h.Catalog.CreateCategory(name, slug)
	if err != nil {
		// name and slug are both unique
		applog.Error(c, "categories.create.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "could not create category"})
	}
	applog.Audit(c, "categories.create", map[string]any{"id": cat.ID, "slug": cat.Slug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cat})
}

// Delete refuses to orphan products: the store rejects the delete and the
// caller gets a conflict, not a cascade.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid id"})
	}
	if err := h.Catalog.DeleteCategory(int64(id)); err != nil {
		if errors.Is(err, services.ErrCategoryInUse) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		applog.Error(c, "categories.delete.fail", err, map[string]any{"id": id})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "could not delete category"})
	}
	applog.Audit(c, "categories.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"success": true})
}
