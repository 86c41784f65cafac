package address

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var addressCols = []string{"id", "user_id", "street", "city", "state", "zip_code", "country", "is_default", "created_at", "updated_at"}

func TestPostgresCreateFirstAddressIsDefault(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE addresses SET is_default = FALSE").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO addresses").
		WithArgs(5, "s", "c", "st", "z", "India", true).
		WillReturnRows(sqlmock.NewRows(addressCols).AddRow(1, 5, "s", "c", "st", "z", "India", true, now, now))
	mock.ExpectCommit()

	a, err := repo.Create(context.Background(), Address{UserID: 5, Street: "s", City: "c", State: "st", ZipCode: "z", Country: "India"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !a.IsDefault || a.ID != 1 {
		t.Fatalf("unexpected address %+v", a)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDeletePromotesOldest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM addresses").WithArgs(5, 3).WillReturnRows(sqlmock.NewRows([]string{"is_default"}).AddRow(true))
	mock.ExpectExec("UPDATE addresses SET is_default = TRUE").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), 5, 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM addresses").WithArgs(5, 9).WillReturnRows(sqlmock.NewRows([]string{"is_default"}))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 5, 9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
