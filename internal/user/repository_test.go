package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestInMemoryCreateRejectsDuplicateMobile(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()
	if _, err := repo.Create(ctx, User{Name: "A", Mobile: "9876543210"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(ctx, User{Name: "B", Mobile: "9876543210"}); !errors.Is(err, ErrMobileExists) {
		t.Fatalf("expected ErrMobileExists, got %v", err)
	}
	coins, err := repo.AddCoins(ctx, 1, 10)
	if err != nil || coins != 10 {
		t.Fatalf("expected 10 coins, got %d (%v)", coins, err)
	}
}

func TestPostgresCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Asha", "9876543210", nil).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if _, err := repo.Create(context.Background(), User{Name: "Asha", Mobile: "9876543210"}); !errors.Is(err, ErrMobileExists) {
		t.Fatalf("expected ErrMobileExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByMobile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "mobile", "avatar", "coins", "created_at", "updated_at"}).
		AddRow(3, "Asha", "9876543210", nil, 30, now, now)
	mock.ExpectQuery("FROM users WHERE mobile").WithArgs("9876543210").WillReturnRows(rows)
	mock.ExpectQuery("FROM users WHERE mobile").WithArgs("0000000000").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "mobile", "avatar", "coins", "created_at", "updated_at"}))

	u, err := repo.GetByMobile(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if u.ID != 3 || u.Avatar != nil || u.Coins != 30 {
		t.Fatalf("unexpected user %+v", u)
	}
	if _, err := repo.GetByMobile(context.Background(), "0000000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInMemoryDelete(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 2, Name: "A", Mobile: "9876543210"}})
	ctx := context.Background()
	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByMobile(ctx, "9876543210"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted user gone, got %v", err)
	}
	if err := repo.Delete(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
