package httpx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func init() {
	// money leaves the API as JSON numbers, the shape the mobile client reads
	decimal.MarshalJSONWithoutQuotes = true
}

// Envelope is the uniform response body returned by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

// Message writes a successful response that carries a human readable message
// alongside optional data.
func Message(c *fiber.Ctx, status int, msg string, data interface{}) error {
	return c.Status(status).JSON(Envelope{Success: true, Message: msg, Data: data})
}

func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: msg})
}

// ErrorHandler renders errors that escape a handler (fiber errors, panics
// caught by recover) in the envelope format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	}
	return Fail(c, code, msg)
}
