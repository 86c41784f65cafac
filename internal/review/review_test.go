package review

import (
	"context"
	"io"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/mill-store-backend/internal/product"
	"github.com/wichananm65/mill-store-backend/internal/user"
)

func newTestService() (*Service, *product.Service) {
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Turmeric", OriginalPrice: decimal.NewFromInt(120), SellingPrice: decimal.NewFromInt(99)},
	}))
	users := user.NewInMemoryRepository([]user.User{
		{ID: 7, Name: "Asha", Mobile: "9876543210"},
		{ID: 8, Name: "Ravi", Mobile: "9876500000"},
	})
	return NewService(NewInMemoryRepository(), products, user.NewService(users, nil)), products
}

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCreateRecomputesProductRating(t *testing.T) {
	svc, products := newTestService()
	ctx := context.Background()

	for _, in := range []struct {
		user   int
		rating int
	}{{7, 5}, {8, 4}, {7, 4}} {
		_, err := svc.Create(ctx, in.user, 1, Input{Rating: in.rating, Comment: "fresh and fine"})
		require.NoError(t, err)
	}

	p, err := products.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.3, p.Rating)
	assert.Equal(t, 3, p.ReviewCount)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].ID, "newest first")
	assert.Equal(t, "Ravi", list[1].UserName)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, 1, Input{Rating: 0, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Create(ctx, 7, 1, Input{Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Create(ctx, 7, 1, Input{Rating: 3, Comment: "   "})
	assert.ErrorIs(t, err, ErrCommentRequired)
	_, err = svc.Create(ctx, 7, 42, Input{Rating: 3, Comment: "x"})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestReviewRoutes(t *testing.T) {
	svc, _ := newTestService()
	app := makeApp(NewHandler(svc))

	req := httptest.NewRequest("POST", "/api/reviews/1", strings.NewReader(`{"rating":5,"comment":"Great aroma"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	req = httptest.NewRequest("POST", "/api/reviews/1", strings.NewReader(`{"rating":5,"comment":"Great aroma"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	req = httptest.NewRequest("POST", "/api/reviews/1", strings.NewReader(`{"rating":9,"comment":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	res, _ = app.Test(httptest.NewRequest("GET", "/api/reviews/1", nil))
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	b, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(b), `"userName":"Asha"`)
	assert.Contains(t, string(b), "Great aroma")

	res, _ = app.Test(httptest.NewRequest("GET", "/api/reviews/99", nil))
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestPostgresStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(reviewStatsQuery)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.25, 4))
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(1, 7, "Asha", 5, "ok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))

	repo := NewPostgresRepository(db)
	s, err := repo.Stats(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 4.3, s.roundedMean())

	rv, err := repo.Create(t.Context(), Review{ProductID: 1, UserID: 7, UserName: "Asha", Rating: 5, Comment: "ok"})
	require.NoError(t, err)
	assert.Equal(t, 3, rv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
