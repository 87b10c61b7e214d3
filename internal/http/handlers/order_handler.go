package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/agustrio1/sveltekit-ecommerce-sub001/internal/log"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/repos"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/services"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid body"})
	}

	name, okName := validate.Name(req.RecipientName)
	addr, okAddr := validate.Address(req.RecipientAddress)
	if !okName || !okAddr {
		applog.Security(c, "validation.fail", map[string]any{"field": "recipient"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "recipient name and address are required"})
	}
	req.RecipientName, req.RecipientAddress = name, addr
	if req.RecipientPhone != "" {
		phone, ok := validate.Phone(req.RecipientPhone)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid phone number"})
		}
		req.RecipientPhone = phone
	}
	if req.ShippingCost.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid shipping cost"})
	}

	order, err := h.Orders.Place(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder), errors.Is(err, services.ErrBadQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case errors.Is(err, repos.ErrInsufficientStock):
			applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "insufficient stock"})
		case errors.Is(err, sql.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "unknown user or product"})
		default:
			applog.Error(c, "order.place.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not place order"})
		}
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
	}
	o, items, err := h.Orders.Get(id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			applog.Error(c, "order.view.fail", err, map[string]any{"order_id": id})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"order": o, "items": items}})
}

func (h *OrderHandler) ListByUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid user id"})
	}
	orders, err := h.Orders.ListByUser(int64(id))
	if err != nil {
		applog.Error(c, "order.history.fail", err, map[string]any{"user_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not load orders"})
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "missing status"})
	}
	if err := h.Orders.UpdateStatus(c.UserContext(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case errors.Is(err, sql.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		default:
			applog.Error(c, "order.status.fail", err, map[string]any{"order_id": id})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "could not update status"})
		}
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"success": true})
}
