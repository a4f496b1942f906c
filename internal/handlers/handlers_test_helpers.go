package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minibank/internal/config"
	"minibank/internal/logger"
	"minibank/internal/services"
	"minibank/internal/store"
	"minibank/internal/websocket"
)

// newTestRouter wires the real services over a seeded temp JSON repository.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repo, err := store.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if err := repo.SeedIfAbsent(context.Background()); err != nil {
		t.Fatalf("SeedIfAbsent: %v", err)
	}
	cfg := config.Config{
		Port:           "0",
		Storage:        config.StorageJSON,
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		AllowedOrigins: "*",
		LogLevel:       logger.ErrorLevel,
	}
	hub := websocket.NewHub()
	handler := New(
		cfg,
		logger.Get(cfg.LogLevel),
		services.NewSessionService(repo),
		services.NewLedgerService(repo, hub),
		services.NewExportService(repo),
		hub,
	)
	return handler.Routes()
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// loginDemoUser authenticates the seeded demo user and returns the token.
func loginDemoUser(t *testing.T, router http.Handler) string {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "demo_user",
		"password": "password123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Token
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var payload []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}
