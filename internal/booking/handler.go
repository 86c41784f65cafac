package booking

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
	app.Post("/api/user/bookings", h.createBooking)
	app.Get("/api/user/bookings", h.listBookings)
	app.Get("/api/user/bookings/:userId", h.listBookings)
	app.Put("/api/user/bookings/:id/cancel", h.cancelBooking)
}

func (h *Handler) createBooking(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	var payload Input
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	b, err := h.service.Create(c.UserContext(), userID, payload)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusCreated, "booking created", b)
}

// listBookings also serves the legacy /:userId form, which may only name the
// caller.
func (h *Handler) listBookings(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if c.Params("userId") != "" {
		id, ok := httpx.IntParam(c, "userId")
		if !ok {
			return httpx.Fail(c, fiber.StatusBadRequest, "invalid user id")
		}
		if id != userID {
			return httpx.Fail(c, fiber.StatusForbidden, "forbidden")
		}
	}

	list, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, list)
}

func (h *Handler) cancelBooking(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid booking id")
	}

	b, err := h.service.Cancel(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusOK, "booking cancelled", b)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotPending):
		return httpx.Fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidServiceType):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("booking request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
