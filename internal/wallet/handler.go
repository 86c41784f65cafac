package wallet

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/mill-store-backend/internal/auth"
	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
	"github.com/wichananm65/mill-store-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/user/wallet", h.getWallet)
}

func (h *Handler) getWallet(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := h.service.Summary(c.UserContext(), userID)
	if errors.Is(err, user.ErrNotFound) {
		return httpx.Fail(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		logging.FromCtx(c).WithError(err).Error("wallet request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
	return httpx.OK(c, summary)
}
