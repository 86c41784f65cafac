package review

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/mill-store-backend/internal/auth"
	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
	"github.com/wichananm65/mill-store-backend/internal/product"
	"github.com/wichananm65/mill-store-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/reviews/:id", h.listReviews)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/reviews/:id", h.createReview)
}

func (h *Handler) listReviews(c *fiber.Ctx) error {
	productID, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	reviews, err := h.service.List(c.UserContext(), productID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, reviews)
}

func (h *Handler) createReview(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	productID, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var payload Input
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	rv, err := h.service.Create(c.UserContext(), userID, productID, payload)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Created(c, rv)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "product not found")
	case errors.Is(err, user.ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, ErrInvalidRating), errors.Is(err, ErrCommentRequired):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("review request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
