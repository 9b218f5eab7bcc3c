package demo_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"profile-backend/internal/bootstrap"
	"profile-backend/internal/shared/config"
)

const testAllowedOrigin = "https://app.example.com"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		AllowedOrigin:   testAllowedOrigin,
		CORSAllowOrigin: []string{testAllowedOrigin},
		ImageStoreType:  "db",
		MaxImageBytes:   5 << 20,
		JWTSecret:       "test-secret",
		Env:             "dev",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func TestDemoMessageRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	payload, _ := json.Marshal(map[string]string{"message": "updated"})
	req := httptest.NewRequest(http.MethodPost, "/api/demo", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/demo", nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "updated" {
		t.Fatalf("expected updated message, got %q", body.Message)
	}
}

func TestDemoLenientTierRejectsForeignOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/demo", nil)
	req.Header.Set("Origin", "https://evil.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestTestEndpointUnrestrictedTier(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set("Origin", "https://evil.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
