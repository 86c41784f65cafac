package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/mill-store-backend/internal/address"
	"github.com/wichananm65/mill-store-backend/internal/auth"
	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/orders", h.listOrders)
	app.Get("/api/orders/:id", h.getOrder)
	app.Post("/api/orders", h.createOrder)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	var payload PlaceInput
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	ord, err := h.service.Place(c.UserContext(), userID, payload)
	if err != nil {
		return h.fail(c, err)
	}
	logging.FromCtx(c).WithField("order_id", ord.ID).Info("order placed")
	return httpx.Message(c, fiber.StatusCreated, "order placed", ord)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	orders, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid order id")
	}
	ord, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, ord)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var couponErr *CouponError
	switch {
	case errors.As(err, &couponErr):
		return httpx.Fail(c, fiber.StatusBadRequest, couponErr.Message)
	case errors.Is(err, ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "order not found")
	case errors.Is(err, address.ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "address not found")
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidPayment),
		errors.Is(err, ErrAddressRequired), errors.Is(err, address.ErrIncomplete):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("order request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
