package user

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wichananm65/mill-store-backend/internal/auth"
	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
)

// avatarURLPrefix is where cmd/app serves UPLOAD_DIR from.
const avatarURLPrefix = "/uploads/avatars/"

var avatarExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type Handler struct {
	service   *Service
	uploadDir string
}

type profileUpdateRequest struct {
	Name *string `json:"name"`
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/user/profile", h.getProfile)
	app.Put("/api/user/profile", h.updateProfile)
	app.Post("/api/user/profile/avatar", h.uploadAvatar)
	app.Delete("/api/user/profile/avatar", h.removeAvatar)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	u, err := h.service.Profile(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.OK(c, u)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload profileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Name == nil {
		return httpx.Fail(c, fiber.StatusBadRequest, ErrNameRequired.Error())
	}

	if _, err := h.service.Rename(c.UserContext(), userID, *payload.Name); err != nil {
		return h.fail(c, err)
	}
	u, err := h.service.Profile(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return httpx.Message(c, fiber.StatusOK, "profile updated", u)
}

func (h *Handler) uploadAvatar(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	// accept the descriptive "avatar" key as well as the generic "file"
	var file *multipart.FileHeader
	if f, e := c.FormFile("avatar"); e == nil && f != nil {
		file = f
	} else if f, e := c.FormFile("file"); e == nil && f != nil {
		file = f
	}
	if file == nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !avatarExtensions[ext] {
		return httpx.Fail(c, fiber.StatusBadRequest, "avatar must be a jpg, jpeg, png or webp image")
	}

	dir := filepath.Join(h.uploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return h.fail(c, err)
	}
	name := strconv.Itoa(userID) + "_" + uuid.NewString() + ext
	stored := filepath.Join(dir, name)
	if err := c.SaveFile(file, stored); err != nil {
		return h.fail(c, err)
	}

	path := avatarURLPrefix + name
	u, previous, err := h.service.SetAvatar(c.UserContext(), userID, &path)
	if err != nil {
		_ = os.Remove(stored)
		return h.fail(c, err)
	}
	h.removeFile(c, previous)
	return httpx.OK(c, fiber.Map{"avatar": path, "user": u})
}

func (h *Handler) removeAvatar(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	u, previous, err := h.service.SetAvatar(c.UserContext(), userID, nil)
	if err != nil {
		return h.fail(c, err)
	}
	h.removeFile(c, previous)
	return httpx.OK(c, fiber.Map{"avatar": nil, "user": u})
}

func (h *Handler) removeFile(c *fiber.Ctx, path *string) {
	if path == nil || !strings.HasPrefix(*path, avatarURLPrefix) {
		return
	}
	name := filepath.Base(*path)
	if err := os.Remove(filepath.Join(h.uploadDir, "avatars", name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.FromCtx(c).WithError(err).Warn("could not remove old avatar")
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, ErrNameRequired):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	default:
		logging.FromCtx(c).WithError(err).Error("user request failed")
		return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
