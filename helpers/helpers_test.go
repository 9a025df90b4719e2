package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode()
	if len(code) != 8 {
		t.Fatalf("expected 8 chars, got %q", code)
	}
	for _, r := range code {
		if !strings.ContainsRune(referralAlphabet, r) {
			t.Errorf("unexpected rune %q in %q", r, code)
		}
	}
}

func TestAppErrorIs(t *testing.T) {
	base := NewError(400, "INSUFFICIENT_BALANCE")
	wrapped := fmt.Errorf("grab: %w", base.WithDetail("need 10.00"))

	if !errors.Is(wrapped, base) {
		t.Error("detail copy should still match the base error")
	}
	if errors.Is(wrapped, NewError(400, "OTHER")) {
		t.Error("different codes must not match")
	}
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestJSONFail(t *testing.T) {
	app := fiber.New()
	app.Get("/app", func(c *fiber.Ctx) error {
		return JSONFail(c, fmt.Errorf("wrap: %w", NewError(fiber.StatusTooManyRequests, "GRAB_COOLDOWN_ACTIVE")))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return JSONFail(c, errors.New("boom"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/app", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", resp.StatusCode)
	}
	body := decode(t, resp.Body)
	if body["status"] != "error" || body["message"] != "GRAB_COOLDOWN_ACTIVE" {
		t.Errorf("unexpected body %v", body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
	if body := decode(t, resp.Body); body["error"] != "boom" {
		t.Errorf("expected error detail boom, got %v", body["error"])
	}
}

func TestPaginate(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, limit, offset := Paginate(c)
		return c.JSON(fiber.Map{"page": page, "limit": limit, "offset": offset})
	})

	cases := []struct {
		query               string
		page, limit, offset float64
	}{
		{"", 1, 20, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=-1&limit=1000", 1, 100, 0},
		{"?page=x&limit=y", 1, 20, 0},
		{"?page=9223372036854775807&limit=100", 10000, 100, 999900},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		if err != nil {
			t.Fatal(err)
		}
		body := decode(t, resp.Body)
		if body["page"] != tc.page || body["limit"] != tc.limit || body["offset"] != tc.offset {
			t.Errorf("%q: got %v", tc.query, body)
		}
	}
}

func TestValidate(t *testing.T) {
	type req struct {
		Username string `json:"username" validate:"required,min=3,max=32"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := Validate(req{Username: "alice", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err := Validate(req{Username: "al", Password: "secret1"})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
	if appErr.Detail != "username failed on 'min=3'" {
		t.Errorf("unexpected detail %q", appErr.Detail)
	}
}
