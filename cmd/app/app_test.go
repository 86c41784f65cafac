package main

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/mill-store-backend/internal/config"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		JWTSecret:        "test-secret",
		TokenTTL:         time.Hour,
		UploadDir:        t.TempDir(),
		OTPTTL:           time.Minute,
		OTPLength:        4,
		OTPMaxAttempts:   5,
		ExposeOTP:        true,
		DeliveryCharge:   decimal.Zero,
		TaxRate:          decimal.RequireFromString("0.05"),
		OrderRewardCoins: 10,
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return newApp(cfg, log, newRepositories(nil))
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, envelope, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(res.Body)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return res.StatusCode, env, string(raw)
}

func TestPublicRoutes(t *testing.T) {
	app := newTestApp(t)

	code, _, _ := call(t, app, "GET", "/health", "", "")
	assert.Equal(t, fiber.StatusOK, code)

	code, _, body := call(t, app, "GET", "/api/products", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, "Whole Wheat Atta")

	code, _, body = call(t, app, "GET", "/api/categories", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, "Spices")

	code, _, body = call(t, app, "GET", "/api/banners", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, "Multi-Grain Flour")

	code, _, body = call(t, app, "GET", "/api/products/recommended?limit=3", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"data":[`)

	code, _, _ = call(t, app, "GET", "/api/reviews/1", "", "")
	assert.Equal(t, fiber.StatusOK, code)

	code, _, _ = call(t, app, "GET", "/api/cart", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _, _ = call(t, app, "GET", "/api/cart", "not-a-token", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestSignupToOrderFlow(t *testing.T) {
	app := newTestApp(t)

	code, env, body := call(t, app, "POST", "/api/signup", "", `{"mobile":"9876543210"}`)
	require.Equal(t, fiber.StatusOK, code, body)
	var issued struct {
		OTP string `json:"otp"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &issued))
	require.Len(t, issued.OTP, 4)

	code, env, body = call(t, app, "POST", "/api/VerifyOTP", "", `{"mobile":"9876543210","otp":"`+issued.OTP+`","name":"Asha",
		"address":{"mode":"manual","manualAddress":{"street":"12 Mill Road","city":"Pune","state":"MH","zipCode":"411001"}}}`)
	require.Equal(t, fiber.StatusOK, code, body)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	token := session.Token

	code, _, body = call(t, app, "POST", "/api/signup", "", `{"mobile":"9876543210"}`)
	assert.Equal(t, fiber.StatusConflict, code, body)

	code, _, body = call(t, app, "POST", "/api/cart/items", token, `{"productId":1,"quantity":2}`)
	require.Equal(t, fiber.StatusOK, code, body)

	code, _, body = call(t, app, "POST", "/api/cart/quote", token, `{"couponCode":"SAVE50"}`)
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Contains(t, body, `"total":748`)

	code, _, body = call(t, app, "POST", "/api/orders", token, `{"paymentMethod":"COD","couponCode":"SAVE50"}`)
	require.Equal(t, fiber.StatusCreated, code, body)
	for _, want := range []string{`"itemsPrice":798`, `"discount":50`, `"taxPrice":37`, `"totalPrice":785`, `"street":"12 Mill Road"`} {
		assert.Contains(t, body, want)
	}

	code, _, body = call(t, app, "GET", "/api/cart", token, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"items":[]`)

	code, _, body = call(t, app, "GET", "/api/user/wallet", token, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"coins":10`)
	assert.Contains(t, body, "Order #1")

	code, _, _ = call(t, app, "POST", "/api/reviews/1", token, `{"rating":4,"comment":"Soft rotis"}`)
	assert.Equal(t, fiber.StatusCreated, code)
	code, _, body = call(t, app, "GET", "/api/products/1", "", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"reviewCount":1`)
}
