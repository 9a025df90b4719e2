package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"ordergrab/config"
	"ordergrab/database"
	"ordergrab/middlewares"
	"ordergrab/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type authData struct {
	Token string `json:"token"`
}

type grabData struct {
	Commission    decimal.Decimal `json:"commission"`
	Balance       decimal.Decimal `json:"balance"`
	FrozenBalance decimal.Decimal `json:"frozen_balance"`
	GrabbedOrders []uint          `json:"grabbed_orders"`
	Frozen        bool            `json:"frozen"`
	Token         string          `json:"token"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedAdmin(db, "admin", "admin-pass"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	prevDB, prevCfg := database.DB, config.Cfg
	t.Cleanup(func() {
		database.DB, config.Cfg = prevDB, prevCfg
	})

	cfg := config.Default()
	cfg.JWTSecret = "test-secret"
	cfg.GrabCooldown = 0
	cfg.GrabFreezeThreshold = 3
	database.DB = db
	config.Cfg = cfg

	app := fiber.New()
	Setup(app, middlewares.NewRateLimiter(100, 100))
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func decode(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, env := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: %d %+v", username, status, env)
	}
	var data authData
	decode(t, env, &data)
	return data.Token
}

func TestAuthGuards(t *testing.T) {
	app := setupApp(t)

	if status, env := call(t, app, http.MethodGet, "/api/auth/me", "", nil); status != http.StatusUnauthorized || env.Status != "error" {
		t.Errorf("expected 401 envelope, got %d %+v", status, env)
	}
	if status, _ := call(t, app, http.MethodGet, "/api/auth/me", "not-a-token", nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", status)
	}

	status, env := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: %d %+v", status, env)
	}
	var reg authData
	decode(t, env, &reg)

	if status, _ := call(t, app, http.MethodGet, "/api/admin/users", reg.Token, nil); status != http.StatusForbidden {
		t.Errorf("expected 403 for player on admin route, got %d", status)
	}

	if status, env := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	}); status != http.StatusBadRequest || env.Message != "USERNAME_TAKEN" {
		t.Errorf("expected USERNAME_TAKEN, got %d %+v", status, env)
	}
	if status, env := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":     "carol",
		"password":     "secret1",
		"sponsor_code": "NOPE1234",
	}); status != http.StatusBadRequest || env.Message != "INVALID_SPONSOR_CODE" {
		t.Errorf("expected INVALID_SPONSOR_CODE, got %d %+v", status, env)
	}
	if status, env := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "dave",
		"password": "123",
	}); status != http.StatusBadRequest || env.Message != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %d %+v", status, env)
	}

	if status, env := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-pass",
	}); status != http.StatusUnauthorized || env.Message != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %d %+v", status, env)
	}

	if status, _ := call(t, app, http.MethodPost, "/api/auth/logout", reg.Token, nil); status != http.StatusOK {
		t.Fatalf("logout: %d", status)
	}
	if status, env := call(t, app, http.MethodGet, "/api/auth/me", reg.Token, nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d %+v", status, env)
	}
}

func TestGrabLifecycle(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin", "admin-pass")

	status, env := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: %d %+v", status, env)
	}
	var reg authData
	decode(t, env, &reg)
	token := reg.Token

	status, env = call(t, app, http.MethodPost, "/api/admin/orders", adminToken, map[string]any{
		"title":              "Wireless Earbuds",
		"price":              "100",
		"commission_percent": "5",
	})
	if status != http.StatusCreated {
		t.Fatalf("create order: %d %+v", status, env)
	}
	var order struct{ ID uint }
	decode(t, env, &order)
	grabPath := fmt.Sprintf("/api/orders/%d/grab", order.ID)

	if status, env := call(t, app, http.MethodPost, grabPath, token, nil); status != http.StatusBadRequest || env.Message != "INSUFFICIENT_BALANCE" {
		t.Fatalf("expected INSUFFICIENT_BALANCE, got %d %+v", status, env)
	}

	status, env = call(t, app, http.MethodPost, "/api/wallet/recharge", token, map[string]any{"amount": "200"})
	if status != http.StatusCreated {
		t.Fatalf("recharge: %d %+v", status, env)
	}
	var trx struct {
		ID     uint
		Status string `json:"status"`
	}
	decode(t, env, &trx)
	if trx.Status != "pending" {
		t.Fatalf("expected pending recharge, got %q", trx.Status)
	}

	status, env = call(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/transactions/%d", trx.ID), adminToken, map[string]string{"status": "approved"})
	if status != http.StatusOK {
		t.Fatalf("approve: %d %+v", status, env)
	}
	if status, env := call(t, app, http.MethodPatch, fmt.Sprintf("/api/admin/transactions/%d", trx.ID), adminToken, map[string]string{"status": "rejected"}); status != http.StatusBadRequest || env.Message != "TRANSACTION_NOT_PENDING" {
		t.Errorf("expected TRANSACTION_NOT_PENDING, got %d %+v", status, env)
	}

	var last grabData
	for i := 1; i <= 4; i++ {
		status, env := call(t, app, http.MethodPost, grabPath, token, nil)
		if status != http.StatusOK {
			t.Fatalf("grab %d: %d %+v", i, status, env)
		}
		decode(t, env, &last)
		if len(last.GrabbedOrders) != i {
			t.Fatalf("grab %d: expected %d grabbed orders, got %v", i, i, last.GrabbedOrders)
		}
		if last.Token == "" {
			t.Fatalf("grab %d: expected a reissued token", i)
		}
	}

	if !last.Frozen {
		t.Fatal("expected the fourth grab to freeze the balance")
	}
	if !last.Balance.IsZero() || !last.FrozenBalance.Equal(decimal.NewFromInt(220)) {
		t.Fatalf("expected balance 0 / frozen 220, got %s / %s", last.Balance, last.FrozenBalance)
	}

	if status, env := call(t, app, http.MethodPost, grabPath, last.Token, nil); status != http.StatusBadRequest || env.Message != "BALANCE_FROZEN" {
		t.Fatalf("expected BALANCE_FROZEN, got %d %+v", status, env)
	}

	var me struct {
		ID      uint            `json:"id"`
		Balance decimal.Decimal `json:"balance"`
		Token   string          `json:"token"`
	}
	status, env = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("me: %d %+v", status, env)
	}
	decode(t, env, &me)

	status, env = call(t, app, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/release", me.ID), adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("release: %d %+v", status, env)
	}

	var commissions struct {
		TotalEarned decimal.Decimal `json:"total_earned"`
	}
	status, env = call(t, app, http.MethodGet, "/api/commissions", token, nil)
	if status != http.StatusOK {
		t.Fatalf("commissions: %d %+v", status, env)
	}
	decode(t, env, &commissions)
	if !commissions.TotalEarned.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected 20 earned, got %s", commissions.TotalEarned)
	}

	status, env = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("me: %d %+v", status, env)
	}
	decode(t, env, &me)
	if !me.Balance.Equal(decimal.NewFromInt(220)) {
		t.Errorf("expected 220 after release, got %s", me.Balance)
	}

	claims, err := services.ParseToken(config.Cfg.JWTSecret, me.Token)
	if err != nil {
		t.Fatalf("refreshed token: %v", err)
	}
	if len(claims.GrabbedOrders) != 0 {
		t.Errorf("expected refreshed token to drop grabbed orders, got %v", claims.GrabbedOrders)
	}
	if status, _ := call(t, app, http.MethodGet, "/api/auth/me", me.Token, nil); status != http.StatusOK {
		t.Errorf("refreshed token rejected: %d", status)
	}
}

func TestWithdrawNeedsBankDetails(t *testing.T) {
	app := setupApp(t)

	_, env := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob",
		"password": "secret1",
	})
	var reg authData
	decode(t, env, &reg)

	if status, env := call(t, app, http.MethodPost, "/api/wallet/withdraw", reg.Token, map[string]any{"amount": "10"}); status != http.StatusBadRequest || env.Message != "BANK_DETAILS_REQUIRED" {
		t.Errorf("expected BANK_DETAILS_REQUIRED, got %d %+v", status, env)
	}

	status, env := call(t, app, http.MethodPut, "/api/profile/bank", reg.Token, map[string]string{
		"bank_name":      "First Bank",
		"account_name":   "Bob",
		"account_number": "1234 5678",
	})
	if status != http.StatusOK {
		t.Fatalf("save bank: %d %+v", status, env)
	}

	if status, env := call(t, app, http.MethodPost, "/api/wallet/withdraw", reg.Token, map[string]any{"amount": "10"}); status != http.StatusBadRequest || env.Message != "INSUFFICIENT_BALANCE" {
		t.Errorf("expected INSUFFICIENT_BALANCE, got %d %+v", status, env)
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	status, env := call(t, app, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || env.Status != "success" {
		t.Errorf("expected healthy, got %d %+v", status, env)
	}
}

type memoryStore struct {
	keys []string
}

func (m *memoryStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	return "https://cdn.test/" + key, nil
}

func TestAdminCreateOrderMultipart(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin", "admin-pass")

	store := &memoryStore{}
	prev := services.Images
	services.Images = store
	t.Cleanup(func() { services.Images = prev })

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", "Smart Watch")
	_ = w.WriteField("price", "250.50")
	_ = w.WriteField("commission_percent", "4")
	_ = w.WriteField("is_active", "false")
	part, err := w.CreateFormFile("image", "watch.JPG")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("fake image bytes"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/orders", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d %+v", resp.StatusCode, env)
	}

	var order struct {
		ID       uint
		Slug     string          `json:"slug"`
		ImageURL string          `json:"image_url"`
		Price    decimal.Decimal `json:"price"`
		IsActive bool            `json:"is_active"`
	}
	decode(t, env, &order)

	if len(store.keys) != 1 || !strings.HasPrefix(store.keys[0], "orders/smart-watch-") || !strings.HasSuffix(store.keys[0], ".jpg") {
		t.Fatalf("unexpected upload keys %v", store.keys)
	}
	if order.ImageURL != "https://cdn.test/"+store.keys[0] {
		t.Errorf("unexpected image url %q", order.ImageURL)
	}
	if order.Slug != "smart-watch" || order.IsActive || !order.Price.Equal(decimal.RequireFromString("250.5")) {
		t.Errorf("unexpected order %+v", order)
	}

	playerStatus, regEnv := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "erin",
		"password": "secret1",
	})
	if playerStatus != http.StatusCreated {
		t.Fatalf("register: %d", playerStatus)
	}
	var reg authData
	decode(t, regEnv, &reg)

	if status, env := call(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), reg.Token, nil); status != http.StatusNotFound || env.Message != "ORDER_NOT_FOUND" {
		t.Errorf("inactive order should be hidden from players, got %d %+v", status, env)
	}
}

func TestAdminCreateOrderRejectsBadInput(t *testing.T) {
	app := setupApp(t)
	adminToken := login(t, app, "admin", "admin-pass")

	status, env := call(t, app, http.MethodPost, "/api/admin/orders", adminToken, map[string]any{
		"title":              "Broken",
		"price":              "10",
		"commission_percent": "150",
	})
	if status != http.StatusBadRequest || env.Message != "INVALID_ORDER" {
		t.Errorf("expected INVALID_ORDER, got %d %+v", status, env)
	}
}

func TestLoginReportsDatabaseFailure(t *testing.T) {
	app := setupApp(t)

	if status, env := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "secret1",
	}); status != http.StatusUnauthorized || env.Message != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS for unknown user, got %d %+v", status, env)
	}

	sqlDB, err := database.DB.DB()
	if err != nil {
		t.Fatal(err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatal(err)
	}

	status, env := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin-pass",
	})
	if status != http.StatusInternalServerError || env.Message == "INVALID_CREDENTIALS" {
		t.Errorf("expected 500 when the database is down, got %d %+v", status, env)
	}
}
