package database

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRunsEveryStatementInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range schema {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(t.Context(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateReportsFailingStep(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(schema[0])).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(schema[1])).WillReturnError(errors.New("boom"))

	err = Migrate(t.Context(), db)
	assert.ErrorContains(t, err, "migrate step 2")
}

func TestSeedSkipsPopulatedCatalogue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM categories`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM banners`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := Seed(t.Context(), db)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedInsertsCatalogueInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM categories`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	want := 0
	for i, cat := range seedCatalog {
		mock.ExpectQuery("INSERT INTO categories").
			WithArgs(cat.name, cat.image, len(seedCatalog)-i).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
		for range cat.products {
			mock.ExpectExec("INSERT INTO products").WillReturnResult(sqlmock.NewResult(0, 1))
			want++
		}
	}
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM banners`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for i, b := range seedBanners {
		mock.ExpectExec("INSERT INTO banners").
			WithArgs(b.title, b.subtitle, b.image, len(seedBanners)-i).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}

	n, err := Seed(t.Context(), db)
	require.NoError(t, err)
	assert.Equal(t, want, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedCatalog(t *testing.T) {
	cats, products := SeedCatalog()
	require.Len(t, cats, 3)
	assert.Equal(t, "Flour", cats[0].Name)
	assert.Greater(t, cats[0].Order, cats[2].Order)
	require.Len(t, products, 5)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 1, *products[0].CategoryID)
	assert.Equal(t, 3, *products[4].CategoryID)
	assert.Equal(t, "399", products[0].SellingPrice.String())
}

func TestSeedBanners(t *testing.T) {
	banners := SeedBanners()
	require.Len(t, banners, len(seedBanners))
	assert.Equal(t, "10-20% OFF", banners[0].Title)
	assert.Greater(t, banners[0].Order, banners[1].Order)
}
