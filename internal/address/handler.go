package address

import (
	"errors"

	"github.com/gofiber/fiber/v2"

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
	app.Get("/api/user/profile/address", h.list)
	app.Post("/api/user/profile/address", h.create)
	app.Put("/api/user/profile/address/:id", h.update)
	app.Delete("/api/user/profile/address/:id", h.remove)
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	addrs, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, addrs)
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload Input
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	addr, err := h.service.Create(c.UserContext(), userID, payload)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Created(c, addr)
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid address id")
	}

	var payload Input
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	addr, err := h.service.Update(c.UserContext(), userID, id, payload)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, addr)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid address id")
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusOK, "address deleted", nil)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "address not found")
	case errors.Is(err, ErrIncomplete):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("address request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
