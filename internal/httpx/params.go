package httpx

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// IntParam parses a positive integer route parameter.
func IntParam(c *fiber.Ctx, name string) (int, bool) {
	v, err := strconv.Atoi(c.Params(name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
