package banner

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
	app.Get("/api/banners", h.getBanners)
}

func (h *Handler) getBanners(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.service.List(c.UserContext(), limit)
	if err != nil {
		logging.FromCtx(c).WithError(err).Error("list banners failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
	return httpx.OK(c, items)
}
