package wishlist

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

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/wishlist", h.getWishlist)
	app.Post("/api/wishlist/add", h.addItem)
	app.Delete("/api/wishlist/remove", h.removeItem)
	app.Delete("/api/wishlist/remove/:productId", h.removeItem)
}

type wishlistRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	items, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, items)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	payload := new(wishlistRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.ProductID <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid productId")
	}

	items, err := h.service.Add(c.UserContext(), userID, payload.ProductID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusOK, "added to wishlist", items)
}

// removeItem takes the product id from the path or, failing that, the body.
func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var productID int
	if c.Params("productId") != "" {
		id, ok := httpx.IntParam(c, "productId")
		if !ok {
			return httpx.Fail(c, fiber.StatusBadRequest, "invalid productId")
		}
		productID = id
	} else {
		payload := new(wishlistRequest)
		if err := c.BodyParser(payload); err != nil {
			return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		productID = payload.ProductID
	}
	if productID <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid productId")
	}

	items, err := h.service.Remove(c.UserContext(), userID, productID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusOK, "removed from wishlist", items)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "product not found")
	case errors.Is(err, ErrAlreadyInWishlist):
		return httpx.Fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrNotInWishlist):
		return httpx.Fail(c, fiber.StatusNotFound, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("wishlist request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
