package banner

import (
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBannerRoute(t *testing.T) {
	img := "/banners/multigrain.png"
	repo := NewInMemoryRepository([]Banner{
		{ID: 1, Title: "Free delivery", Order: 1},
		{ID: 2, Title: "10-20% OFF", Subtitle: "Now in Multi-Grain Flour", Image: &img, Order: 5},
		{ID: 3, Title: "Fresh turmeric", Order: 3},
	})
	app := fiber.New()
	NewHandler(NewService(repo)).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/banners?limit=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var body struct {
		Data []Banner `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Data[0].ID)
	assert.Equal(t, 3, body.Data[1].ID)

	res, _ = app.Test(httptest.NewRequest("GET", "/api/banners?limit=abc", nil))
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(listBannersQuery)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "subtitle", "image", "link", "ord"}).
			AddRow(1, "10-20% OFF", "Now in Multi-Grain Flour", "/banners/multigrain.png", nil, 5))

	items, err := NewService(NewPostgresRepository(db)).List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Image)
	assert.Nil(t, items[0].Link)
	assert.NoError(t, mock.ExpectationsWereMet())
}
