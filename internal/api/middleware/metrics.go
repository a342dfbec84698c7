// metrics.go — Prometheus HTTP метрики консоли.
// Регистрирует метрики: rm_http_requests_total, rm_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rm_http_requests_total",
			Help: "Общее количество HTTP-запросов к консоли",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rm_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к консоли в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (заменяем идентификаторы на {id} для предотвращения кардинальности)
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath заменяет динамические сегменты пути на плейсхолдеры
// для предотвращения взрывного роста кардинальности метрик.
// /api/v1/users/alice → /api/v1/users/{screenName}
func normalizePath(path string) string {
	// Статические пути — возвращаем как есть
	switch path {
	case "/", "/health/live", "/health/ready", "/metrics",
		"/login", "/logout", "/whoami",
		"/api/v1/settings/backend",
		"/api/v1/dashboard",
		"/api/v1/users",
		"/api/v1/sessions",
		"/api/v1/chatrooms",
		"/api/v1/directory",
		"/api/v1/directory/categories",
		"/api/v1/directory/keywords",
		"/api/v1/messages":
		return path
	}

	if strings.HasPrefix(path, "/static/") {
		return "/static/*"
	}

	// Динамические пути с идентификатором
	prefixes := []struct {
		prefix string
		result string
	}{
		{"/api/v1/users/", "/api/v1/users/{screenName}"},
		{"/api/v1/sessions/", "/api/v1/sessions/{id}"},
		{"/api/v1/chatrooms/", "/api/v1/chatrooms/{name}"},
		{"/api/v1/directory/categories/", "/api/v1/directory/categories/{id}"},
		{"/api/v1/directory/keywords/", "/api/v1/directory/keywords/{id}"},
	}

	for _, p := range prefixes {
		if strings.HasPrefix(path, p.prefix) {
			rest := path[len(p.prefix):]
			// Суффиксы после идентификатора пользователя
			switch {
			case strings.HasSuffix(rest, "/status"):
				return p.result + "/status"
			case strings.HasSuffix(rest, "/password"):
				return p.result + "/password"
			case strings.HasSuffix(rest, "/sessions"):
				return p.result + "/sessions"
			case strings.HasSuffix(rest, "/keywords"):
				return p.result + "/keywords"
			default:
				return p.result
			}
		}
	}

	return path
}
