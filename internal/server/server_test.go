package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ukozi/raspyman/internal/api/handlers"
	"github.com/ukozi/raspyman/internal/config"
	"github.com/ukozi/raspyman/internal/rasclient"
	"github.com/ukozi/raspyman/internal/service"
	"github.com/ukozi/raspyman/internal/ui/auth"
	uihandlers "github.com/ukozi/raspyman/internal/ui/handlers"
	uimiddleware "github.com/ukozi/raspyman/internal/ui/middleware"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newFakeRAS поднимает мок RAS Management API.
func newFakeRAS(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","screen_name":"kimmy"}]`))
	})
	mux.HandleFunc("GET /session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sessions":[]}`))
	})
	mux.HandleFunc("GET /chat/room/public", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"0.17.0","commit":"abc","date":"2026-01-01"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestServer собирает полный сервер поверх мока RAS.
// withAuth включает локальную аутентификацию UI (admin/secret).
func newTestServer(t *testing.T, withAuth bool) http.Handler {
	t.Helper()
	logger := testLogger()
	ras := newFakeRAS(t)

	cfg := &config.Config{
		Port:            8000,
		ShutdownTimeout: time.Second,
	}

	client, err := rasclient.New(ras.URL, rasclient.Options{
		MaxRetries:  1,
		BackoffBase: time.Millisecond,
	}, logger)
	if err != nil {
		t.Fatalf("rasclient.New вернул ошибку: %v", err)
	}

	apiHandler := handlers.NewAPIHandler(
		service.NewUserService(client, logger),
		service.NewSessionService(client, logger),
		service.NewChatRoomService(client, logger),
		service.NewDirectoryService(client, logger),
		service.NewDashboardService(client, logger),
		service.NewMessageService(client, logger),
		client,
		logger,
	)
	healthHandler := handlers.NewHealthHandler(client)

	var authHandler *uihandlers.AuthHandler
	var uiAuth *uimiddleware.UIAuth
	if withAuth {
		sessionMgr, smErr := auth.NewSessionManager("test-secret", false)
		if smErr != nil {
			t.Fatalf("NewSessionManager вернул ошибку: %v", smErr)
		}
		authHandler = uihandlers.NewAuthHandler(sessionMgr, "admin", "secret", logger)
		uiAuth = uimiddleware.NewUIAuth(sessionMgr, logger, false)
	}

	srv := New(cfg, logger, apiHandler, healthHandler, authHandler, uiAuth, nil)
	return srv.Handler()
}

func TestRoutes_OpenAccess(t *testing.T) {
	handler := newTestServer(t, false)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/users", http.StatusOK},
		{http.MethodGet, "/api/v1/sessions", http.StatusOK},
		{http.MethodGet, "/api/v1/chatrooms", http.StatusOK},
		{http.MethodGet, "/api/v1/dashboard", http.StatusOK},
		{http.MethodGet, "/api/v1/settings/backend", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/static/css/app.css", http.StatusOK},
		{http.MethodGet, "/static/js/app.js", http.StatusOK},
		{http.MethodGet, "/nonexistent", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s: статус = %d, ожидается %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestRoutes_RequestIDHeader(t *testing.T) {
	handler := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("ответ без заголовка X-Request-Id")
	}
}

func TestRoutes_AuthRequired(t *testing.T) {
	handler := newTestServer(t, true)

	// API без сессии — 401 JSON
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/v1/users без сессии: статус = %d, ожидается 401", rec.Code)
	}

	// Страница без сессии — redirect на /login
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("GET / без сессии: статус = %d, Location = %q", rec.Code, rec.Header().Get("Location"))
	}

	// Health и статика остаются открытыми
	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health/live: статус = %d, ожидается 200", rec.Code)
	}
}

func TestRoutes_LoginFlow(t *testing.T) {
	handler := newTestServer(t, true)

	// Неверный пароль
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("вход с неверным паролем: статус = %d, ожидается 401", rec.Code)
	}

	// Успешный вход
	req = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"secret"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("вход: статус = %d; тело: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("после входа не установлен session cookie")
	}

	// С cookie API доступен
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/v1/users с сессией: статус = %d, ожидается 200", rec.Code)
	}
}

func TestHealthReady_ReportsRAS(t *testing.T) {
	handler := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			RAS struct {
				Status string `json:"status"`
			} `json:"ras"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("тело не JSON: %v", err)
	}
	if body.Status != "ok" || body.Checks.RAS.Status != "ok" {
		t.Errorf("readiness = %+v, ожидается ok", body)
	}
}

func TestListen_PortFallback(t *testing.T) {
	cfg := &config.Config{Port: 8000, ShutdownTimeout: time.Second}
	s := &Server{httpServer: &http.Server{}, logger: testLogger(), cfg: cfg}

	ln1, err := s.listen()
	if err != nil {
		t.Fatalf("первый listen вернул ошибку: %v", err)
	}
	defer ln1.Close()

	// Настроенный порт занят — второй сервер берёт следующий свободный
	ln2, err := s.listen()
	if err != nil {
		t.Fatalf("второй listen вернул ошибку: %v", err)
	}
	defer ln2.Close()

	if ln1.Addr().String() == ln2.Addr().String() {
		t.Errorf("оба listener на одном адресе %s", ln1.Addr())
	}
}
