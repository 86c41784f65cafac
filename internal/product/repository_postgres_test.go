package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var productCols = []string{"id", "name", "description", "images", "original_price", "selling_price", "rating", "review_count", "category_id", "stock", "created_at", "updated_at"}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(productCols).
		AddRow(1, "Atta", "d", "{/a.png,/b.png}", "450.00", "399.00", "4.5", 2, 1, 10, now, now).
		AddRow(2, "Loose Wheat", "d", "{}", "60.00", "60.00", "0", 0, nil, 0, now, now)
	mock.ExpectQuery("FROM products").WithArgs(0, "at").WillReturnRows(rows)

	products, err := repo.List(context.Background(), Filter{Query: "at"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if len(products[0].Images) != 2 || products[0].Images[1] != "/b.png" {
		t.Fatalf("unexpected images %v", products[0].Images)
	}
	if products[0].SellingPrice.String() != "399" || products[0].Rating != 4.5 {
		t.Fatalf("unexpected prices %+v", products[0])
	}
	if products[1].CategoryID != nil {
		t.Fatalf("expected nil category, got %v", *products[1].CategoryID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM products WHERE id = ").WithArgs(9).WillReturnRows(sqlmock.NewRows(productCols))

	if _, err := NewPostgresRepository(db).GetByID(context.Background(), 9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByIDsSkipsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	found, err := NewPostgresRepository(db).GetByIDs(context.Background(), nil)
	if err != nil || len(found) != 0 {
		t.Fatalf("expected empty map, got %v (%v)", found, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}
