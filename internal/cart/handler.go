package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/mill-store-backend/internal/auth"
	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
	"github.com/wichananm65/mill-store-backend/internal/product"
)

type Handler struct {
	service *Service
}

type addRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type quoteRequest struct {
	SelectedItemIDs []int  `json:"selectedItemIds"`
	CouponCode      string `json:"couponCode"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/cart", h.getCart)
	app.Delete("/api/cart", h.clearCart)
	app.Post("/api/cart/items", h.addItem)
	app.Put("/api/cart/items/:id", h.updateItem)
	app.Post("/api/cart/items/:id/increment", h.stepItem(true))
	app.Post("/api/cart/items/:id/decrement", h.stepItem(false))
	app.Delete("/api/cart/items/:id", h.removeItem)
	app.Post("/api/cart/quote", h.quote)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	v, err := h.service.View(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, v)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := h.service.Clear(c.UserContext(), userID); err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusOK, "cart cleared", nil)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	var payload addRequest
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.ProductID <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "productId is required")
	}

	v, err := h.service.Add(c.UserContext(), userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusOK, "added to cart", v)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid cart item id")
	}
	var payload quantityRequest
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	v, err := h.service.SetQuantity(c.UserContext(), userID, id, payload.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, v)
}

func (h *Handler) stepItem(up bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromCtx(c)
		if err != nil {
			return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
		}
		id, ok := httpx.IntParam(c, "id")
		if !ok {
			return httpx.Fail(c, fiber.StatusBadRequest, "invalid cart item id")
		}

		v, err := h.service.Step(c.UserContext(), userID, id, up)
		if err != nil {
			return h.fail(c, err)
		}
		return httpx.OK(c, v)
	}
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid cart item id")
	}

	v, err := h.service.Remove(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, v)
}

func (h *Handler) quote(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	var payload quoteRequest
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	q, err := h.service.Quote(c.UserContext(), userID, payload.SelectedItemIDs, payload.CouponCode)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, q)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "cart item not found")
	case errors.Is(err, product.ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "product not found")
	case errors.Is(err, ErrInvalidQuantity):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("cart request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
