package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-user-backend/internal/config"
	"github.com/tbourn/go-user-backend/internal/domain"
	"github.com/tbourn/go-user-backend/internal/repo"
)

func testConfig() config.Config {
	return config.Config{
		Port:              "3000",
		Env:               "test",
		APIVersion:        "1.0.0",
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		GinMode:           "test",
		LogLevel:          "info",
		APIBasePath:       "/api",
		DB:                config.DBConfig{URL: "in-memory", MaxConnections: 10, Timeout: 30 * time.Second},
		RateRPS:           1000,
		RateBurst:         1000,
		OTEL:              config.OTELConfig{ServiceName: "go-user-backend"},
	}
}

func newRouter(t *testing.T) (*gin.Engine, *repo.UserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := repo.NewUserStore()
	RegisterRoutes(r, store, testConfig())
	return r, store
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_HealthUnderBasePath(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["status"] != "ok" || body["environment"] != "test" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRouter_Hello(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, "/api/hello")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"method":"GET"`) {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestRouter_CORSAllowsAllOriginsByDefault(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, "/api/health")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("ACAO=%q", got)
	}

	// Preflight for a mutating verb.
	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent && w.Code != http.StatusOK {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if methods := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "DELETE") {
		t.Fatalf("allow-methods=%q", methods)
	}
}

func TestRouter_NoRouteReturnsEnvelope404(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, "/definitely/not/here")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["success"] != false || body["error"] != "Route not found" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRouter_NoMethodReturns405(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/users", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Method not allowed") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r, _ := newRouter(t)

	// Generate one request so counters exist.
	_ = get(r, "/api/health")

	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("missing counter in metrics output")
	}
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "rid-router-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "rid-router-test" {
		t.Fatalf("X-Request-ID=%q", got)
	}
}

func TestRouter_FullUserLifecycle(t *testing.T) {
	r, store := newRouter(t)
	store.Seed(domain.User{Name: "John Doe", Email: "john@example.com"})

	// Read through the whole stack.
	w := get(r, "/api/users/1")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d body=%s", w.Code, w.Body.String())
	}

	// Domain error path end to end: unknown id → envelope 404.
	w = get(r, "/api/users/99")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User not found") {
		t.Fatalf("body=%s", w.Body.String())
	}

	// Security headers applied on API routes.
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("nosniff header=%q", got)
	}
}
