// metrics.go — Prometheus HTTP метрики Citizen Lookup.
// Регистрирует метрики: cl_http_requests_total, cl_http_request_duration_seconds.
// Нормализация путей предотвращает взрывной рост кардинальности.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cl_http_requests_total",
			Help: "Общее количество HTTP-запросов к Citizen Lookup",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cl_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Citizen Lookup в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := routeLabel(r)
			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath заменяет идентификаторы в пути шаблонами:
// /api/users/42 → /api/users/{id},
// /api/users/by-citizen-id/0010… → /api/users/by-citizen-id/{citizenId}.
// Неизвестные пути сворачиваются в "other".
func normalizePath(path string) string {
	switch path {
	case "/health/live", "/health/ready", "/metrics",
		"/api/users/search", "/api/search-history",
		"/api/reload-csv", "/api/reload-excel",
		"/api/login", "/api/logout", "/api/auth/status",
		"/api/openapi.json":
		return path
	}

	const citizenPrefix = "/api/users/by-citizen-id/"
	if strings.HasPrefix(path, citizenPrefix) && len(path) > len(citizenPrefix) {
		return citizenPrefix + "{citizenId}"
	}

	const usersPrefix = "/api/users/"
	if rest, ok := strings.CutPrefix(path, usersPrefix); ok && rest != "" && !strings.Contains(rest, "/") {
		return usersPrefix + "{id}"
	}

	return "other"
}
