package recommended

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
	app.Get("/api/products/recommended", h.getRecommended)
}

func (h *Handler) getRecommended(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.service.List(c.UserContext(), limit, offset)
	if err != nil {
		logging.FromCtx(c).WithError(err).Error("list recommended failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
	return httpx.OK(c, items)
}
