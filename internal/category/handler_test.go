package category

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
)

func TestCategoriesRoute(t *testing.T) {
	repo := NewInMemoryRepository([]Category{
		{ID: 1, Name: "Grains", Order: 1},
		{ID: 2, Name: "Flour", Order: 3},
		{ID: 3, Name: "Spices", Order: 2},
	})
	app := fiber.New()
	NewHandler(NewService(repo)).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/categories?limit=2", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, "Flour") || !strings.Contains(body, "Spices") || strings.Contains(body, "Grains") {
		t.Fatalf("expected the two highest ordered categories, got %s", body)
	}
	if strings.Index(body, "Flour") > strings.Index(body, "Spices") {
		t.Fatalf("expected Flour before Spices, got %s", body)
	}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "image", "ord"}).
		AddRow(1, "Flour", "/category/flour.png", 3).
		AddRow(2, "Spices", nil, 2)
	mock.ExpectQuery("FROM categories ORDER BY ord DESC").WithArgs(100).WillReturnRows(rows)

	items, err := NewPostgresRepository(db).List(context.Background(), 100)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].Image == nil || items[1].Image != nil {
		t.Fatalf("unexpected categories %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
