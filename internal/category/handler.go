package category

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/categories", h.getCategories)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	limit := 100
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	items, err := h.service.List(c.UserContext(), limit)
	if err != nil {
		logging.FromCtx(c).WithError(err).Error("list categories failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
	return httpx.OK(c, items)
}
