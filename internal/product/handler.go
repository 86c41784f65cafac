package product

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.getProducts)
	app.Get("/api/products/:id<[0-9]+>", h.getProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	f := Filter{Query: c.Query("q")}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return httpx.Fail(c, fiber.StatusBadRequest, "invalid category")
		}
		f.CategoryID = id
	}

	products, err := h.service.List(c.UserContext(), f)
	if err != nil {
		logging.FromCtx(c).WithError(err).Error("list products failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
	return httpx.OK(c, products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, ok := httpx.IntParam(c, "id")
	if !ok {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	p, err := h.service.GetByID(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return httpx.Fail(c, fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		logging.FromCtx(c).WithError(err).Error("get product failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
	return httpx.OK(c, p)
}
