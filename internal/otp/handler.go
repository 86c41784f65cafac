package otp

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/mill-store-backend/internal/address"
	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
	"github.com/wichananm65/mill-store-backend/internal/user"
)

type Handler struct {
	service *Service
}

type mobileRequest struct {
	Mobile string `json:"mobile"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/signup", h.signup)
	app.Post("/api/login", h.login)
	app.Post("/api/VerifyOTP", h.verify)
}

func (h *Handler) signup(c *fiber.Ctx) error {
	var payload mobileRequest
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	issued, err := h.service.Signup(c.UserContext(), payload.Mobile)
	if err != nil {
		return h.fail(c, err)
	}
	logging.FromCtx(c).WithField("otp.purpose", PurposeSignup).Info("otp issued")
	return httpx.Message(c, fiber.StatusOK, "OTP sent", issued)
}

func (h *Handler) login(c *fiber.Ctx) error {
	var payload mobileRequest
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	issued, err := h.service.Login(c.UserContext(), payload.Mobile)
	if err != nil {
		return h.fail(c, err)
	}
	logging.FromCtx(c).WithField("otp.purpose", PurposeLogin).Info("otp issued")
	return httpx.Message(c, fiber.StatusOK, "OTP sent", issued)
}

func (h *Handler) verify(c *fiber.Ctx) error {
	var payload VerifyInput
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Verify(c.UserContext(), payload)
	if err != nil {
		return h.fail(c, err)
	}
	logging.FromCtx(c).WithField("user.id", session.User.ID).Info("otp verified")
	return httpx.Message(c, fiber.StatusOK, "OTP verified", session)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidMobile),
		errors.Is(err, ErrNotRequested),
		errors.Is(err, ErrExpired),
		errors.Is(err, user.ErrNameRequired),
		errors.Is(err, address.ErrIncomplete):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidOTP):
		return httpx.Fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserExists):
		return httpx.Fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrTooManyAttempts):
		return httpx.Fail(c, fiber.StatusTooManyRequests, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("otp request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
