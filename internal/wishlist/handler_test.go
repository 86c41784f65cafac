package wishlist

import (
	"io"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/mill-store-backend/internal/product"
)

func makeAppWithWishlistHandler(h *Handler) *fiber.App {
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
	h.RegisterProtectedRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID, body string) (int, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func newTestService() *Service {
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Whole Wheat Atta", OriginalPrice: decimal.NewFromInt(450), SellingPrice: decimal.NewFromInt(399)},
		{ID: 2, Name: "Turmeric", OriginalPrice: decimal.NewFromInt(120), SellingPrice: decimal.NewFromInt(99)},
	}))
	return NewService(NewInMemoryRepository(), products)
}

func TestWishlistRoutes(t *testing.T) {
	app := makeAppWithWishlistHandler(NewHandler(newTestService()))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, p := range []string{"/api/wishlist", "/api/wishlist/add", "/api/wishlist/remove", "/api/wishlist/remove/:productId"} {
		if !routes[p] {
			t.Fatalf("expected route %s to be registered", p)
		}
	}

	if code, _ := doJSON(t, app, "GET", "/api/wishlist", "", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	if code, body := doJSON(t, app, "POST", "/api/wishlist/add", "7", `{"productId":1}`); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", code, body)
	}
	if code, _ := doJSON(t, app, "POST", "/api/wishlist/add", "7", `{"productId":1}`); code != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", code)
	}
	if code, _ := doJSON(t, app, "POST", "/api/wishlist/add", "7", `{"productId":42}`); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", code)
	}
	if code, _ := doJSON(t, app, "POST", "/api/wishlist/add", "7", `{"productId":0}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing product, got %d", code)
	}
	doJSON(t, app, "POST", "/api/wishlist/add", "7", `{"productId":2}`)

	code, body := doJSON(t, app, "GET", "/api/wishlist", "7", "")
	if code != fiber.StatusOK || strings.Index(body, "Turmeric") > strings.Index(body, "Whole Wheat Atta") {
		t.Fatalf("expected newest first, got %d: %s", code, body)
	}

	if code, _ := doJSON(t, app, "DELETE", "/api/wishlist/remove/2", "7", ""); code != fiber.StatusOK {
		t.Fatalf("expected 200 removing by path, got %d", code)
	}
	if code, _ := doJSON(t, app, "DELETE", "/api/wishlist/remove", "7", `{"productId":1}`); code != fiber.StatusOK {
		t.Fatalf("expected 200 removing by body, got %d", code)
	}
	if code, _ := doJSON(t, app, "DELETE", "/api/wishlist/remove/1", "7", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for absent item, got %d", code)
	}
}

func TestPostgresWishlist(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(addWishlistQuery)).WithArgs(7, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(addWishlistQuery)).WithArgs(7, 1).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(listWishlistQuery)).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(removeWishlistQuery)).WithArgs(7, 3).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	ctx := t.Context()
	require.NoError(t, repo.Add(ctx, 7, 1))
	assert.ErrorIs(t, repo.Add(ctx, 7, 1), ErrAlreadyInWishlist)
	ids, err := repo.ProductIDs(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)
	assert.ErrorIs(t, repo.Remove(ctx, 7, 3), ErrNotInWishlist)
	assert.NoError(t, mock.ExpectationsWereMet())
}
