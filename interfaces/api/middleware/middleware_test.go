package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cardapio-digital/pkg/utils"
)

func TestProtected(t *testing.T) {
	const secret = "test-secret"
	token, _, err := utils.GenerateAdminToken("admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	other, _, _ := utils.GenerateAdminToken("admin", "other-secret", time.Hour)

	app := fiber.New()
	app.Get("/admin", Protected(secret), func(c *fiber.Ctx) error {
		admin, err := utils.GetAdminFromContext(c)
		if err != nil {
			return err
		}
		return c.SendString(admin.Username)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"not bearer", "Token " + token, fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + other, fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestCartSession(t *testing.T) {
	app := fiber.New()
	app.Get("/cart", CartSession(time.Hour, false), func(c *fiber.Ctx) error {
		return c.SendString(GetCartSession(c))
	})

	// no session: a new one is issued as cookie and header
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cart", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	issued := resp.Header.Get(CartSessionHeader)
	if _, err := uuid.Parse(issued); err != nil {
		t.Fatalf("issued session %q is not a uuid", issued)
	}
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CartSessionCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != issued || !cookie.HttpOnly {
		t.Fatalf("cookie = %+v", cookie)
	}

	// the cookie is reused on the next request
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: CartSessionCookie, Value: issued})
	resp, _ = app.Test(req)
	if resp.Header.Get(CartSessionHeader) != issued || len(resp.Cookies()) != 0 {
		t.Fatalf("session not reused: %q", resp.Header.Get(CartSessionHeader))
	}

	// a malformed header is replaced
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(CartSessionHeader, "../../etc/passwd")
	resp, _ = app.Test(req)
	if got := resp.Header.Get(CartSessionHeader); got == "../../etc/passwd" || got == "" {
		t.Fatalf("malformed session kept: %q", got)
	}
}

// Session ids are kept after the handler returns, so they must not alias request memory.
func TestCartSessionSurvivesLaterRequests(t *testing.T) {
	app := fiber.New()
	var seen []string
	app.Get("/cart", CartSession(time.Hour, false), func(c *fiber.Ctx) error {
		seen = append(seen, GetCartSession(c))
		return nil
	})

	sent := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	for i, id := range sent {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		if i%2 == 0 {
			req.Header.Set(CartSessionHeader, id)
		} else {
			req.AddCookie(&http.Cookie{Name: CartSessionCookie, Value: id})
		}
		if _, err := app.Test(req); err != nil {
			t.Fatalf("app.Test: %v", err)
		}
	}

	for i := range sent {
		if seen[i] != sent[i] {
			t.Fatalf("session %d = %q after later requests, want %q", i, seen[i], sent[i])
		}
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestIDFromContext(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, _ := app.Test(req)
	if resp.Header.Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("request id = %q", resp.Header.Get(RequestIDHeader))
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Fatal("request id not generated")
	}
}
