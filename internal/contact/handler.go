package contact

import (
	"errors"

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
	app.Post("/api/contact", h.submit)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	var payload Input
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	m, err := h.service.Submit(c.UserContext(), payload)
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidMobile):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		logging.FromCtx(c).WithError(err).Error("contact submit failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	logging.FromCtx(c).WithField("ticket_id", m.TicketID).Info("contact message received")
	return httpx.Message(c, fiber.StatusCreated, ThankYou, fiber.Map{"ticketId": m.TicketID})
}
