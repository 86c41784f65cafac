package otp

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func post(t *testing.T, app *fiber.App, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestOTPRoutes(t *testing.T) {
	svc, _, _ := newTestService(nil)
	app := fiber.New()
	NewHandler(svc).RegisterPublicRoutes(app)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, p := range []string{"/api/signup", "/api/login", "/api/VerifyOTP"} {
		if !routes[p] {
			t.Fatalf("expected route %s registered", p)
		}
	}

	if code, body := post(t, app, "/api/login", `{"mobile":"9876543210"}`); code != fiber.StatusNotFound || !strings.Contains(body, "please sign up") {
		t.Fatalf("expected 404 for unknown login, got %d: %s", code, body)
	}
	if code, _ := post(t, app, "/api/signup", `{"mobile":"abc"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad mobile, got %d", code)
	}

	code, body := post(t, app, "/api/signup", `{"mobile":"9876543210"}`)
	if code != fiber.StatusOK || !strings.Contains(body, "OTP sent") {
		t.Fatalf("expected OTP sent, got %d: %s", code, body)
	}

	if code, _ := post(t, app, "/api/VerifyOTP", `{"mobile":"9876543210","otp":"9999","name":"Asha"}`); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong otp, got %d", code)
	}

	code, body = post(t, app, "/api/VerifyOTP", `{"mobile":"9876543210","otp":"1234","name":"Asha",
		"address":{"mode":"manual","manualAddress":{"street":"1 Road","city":"Pune","state":"MH","zipCode":"411001","country":"India","isDefault":true}}}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", code, body)
	}
	for _, want := range []string{`"token":"`, `"name":"Asha"`, `"street":"1 Road"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("verify body missing %q: %s", want, body)
		}
	}

	if code, _ := post(t, app, "/api/signup", `{"mobile":"9876543210"}`); code != fiber.StatusConflict {
		t.Fatalf("expected 409 on repeat signup, got %d", code)
	}
}
