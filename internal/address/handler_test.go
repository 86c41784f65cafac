package address

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithAddressHandler(a *Handler) *fiber.App {
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
	a.RegisterProtectedRoutes(app)
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

func TestAddressRoutes(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeAppWithAddressHandler(NewHandler(NewService(repo)))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/api/user/profile/address"] || !routes["/api/user/profile/address/:id"] {
		t.Fatalf("expected address routes registered")
	}

	if code, _ := doJSON(t, app, "GET", "/api/user/profile/address", "", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	code, body := doJSON(t, app, "POST", "/api/user/profile/address", "42",
		`{"street":"12 Mill Road","city":"Pune","state":"MH","zipCode":"411001"}`)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, body)
	}
	if !strings.Contains(body, `"isDefault":true`) || !strings.Contains(body, `"country":"India"`) {
		t.Fatalf("first address should be default in India, got %s", body)
	}

	code, body = doJSON(t, app, "POST", "/api/user/profile/address", "42", `{"street":"x"}`)
	if code != fiber.StatusBadRequest || !strings.Contains(body, "zipCode") {
		t.Fatalf("expected 400 for incomplete address, got %d: %s", code, body)
	}

	// another user's address is invisible
	if code, _ := doJSON(t, app, "DELETE", "/api/user/profile/address/1", "7", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for foreign address, got %d", code)
	}

	code, body = doJSON(t, app, "PUT", "/api/user/profile/address/1", "42",
		`{"street":"14 Mill Road","city":"Pune","state":"MH","zipCode":"411002"}`)
	if code != fiber.StatusOK || !strings.Contains(body, "14 Mill Road") {
		t.Fatalf("expected updated address, got %d: %s", code, body)
	}

	if code, _ := doJSON(t, app, "PUT", "/api/user/profile/address/abc", "42", `{}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", code)
	}
}

func TestDefaultAddressRules(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)
	ctx := t.Context()
	in := Input{Street: "s", City: "c", State: "st", ZipCode: "z"}

	first, _ := svc.Create(ctx, 1, in)
	second, _ := svc.Create(ctx, 1, in)
	if !first.IsDefault || second.IsDefault {
		t.Fatalf("only the first address should be default: %+v %+v", first, second)
	}

	withDefault := in
	withDefault.IsDefault = true
	third, _ := svc.Create(ctx, 1, withDefault)
	def, err := svc.Default(ctx, 1)
	if err != nil || def.ID != third.ID {
		t.Fatalf("expected address %d to be default, got %+v (%v)", third.ID, def, err)
	}

	if err := svc.Delete(ctx, 1, third.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	def, err = svc.Default(ctx, 1)
	if err != nil || def.ID != first.ID {
		t.Fatalf("expected oldest address promoted, got %+v (%v)", def, err)
	}

	// un-setting the flag on the default address keeps it
	if _, err := svc.Update(ctx, 1, first.ID, in); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	def, _ = svc.Default(ctx, 1)
	if def.ID != first.ID {
		t.Fatalf("default must not be dropped, got %+v", def)
	}

	list, _ := svc.List(ctx, 1)
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults != 1 || !list[0].IsDefault {
		t.Fatalf("expected exactly one default listed first, got %+v", list)
	}
}
