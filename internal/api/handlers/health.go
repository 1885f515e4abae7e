// health.go — обработчики health endpoints.
// /health/live — liveness probe (процесс жив)
// /health/ready — readiness probe (данные загружены, PostgreSQL доступен)
// /metrics — Prometheus метрики
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/citizen-lookup/internal/api/generated"
	"github.com/bigkaa/citizen-lookup/internal/config"
)

// serviceName — имя сервиса в ответах health endpoints.
const serviceName = "citizen-lookup"

// Константы статусов health check.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
)

// ReadinessChecker — интерфейс проверки готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded", "fail") и сообщение.
	CheckReady() (status, message string)
}

// RecordStoreChecker — состояние хранилища записей. Реализуется *recordstore.Store.
type RecordStoreChecker interface {
	IsReady() bool
	Count() int
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	store RecordStoreChecker
	// pgChecker — nil, если журнал поиска хранится в памяти
	pgChecker   ReadinessChecker
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик health endpoints.
func NewHealthHandler(store RecordStoreChecker, pgChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		store:       store,
		pgChecker:   pgChecker,
		promHandler: promhttp.Handler(),
	}
}

// HealthLive — liveness probe. Возвращает 200 если процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, generated.HealthStatus{
		Status:    generated.HealthStatusStatusOk,
		Timestamp: time.Now().UTC(),
		Version:   config.Version,
		Service:   serviceName,
	})
}

// HealthReady — readiness probe. Возвращает 200 (ok/degraded) или 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	checks := make(map[string]generated.ReadinessCheck, 2)

	var recordsStatus, recordsMsg string
	if h.store.IsReady() {
		recordsStatus, recordsMsg = statusOK, fmt.Sprintf("записей: %d", h.store.Count())
	} else {
		recordsStatus, recordsMsg = statusFail, "данные ещё не загружены"
	}
	checks["records"] = readinessCheck(recordsStatus, recordsMsg)
	statuses := []string{recordsStatus}

	if h.pgChecker != nil {
		pgStatus, pgMsg := h.pgChecker.CheckReady()
		checks["postgresql"] = readinessCheck(pgStatus, pgMsg)
		statuses = append(statuses, pgStatus)
	}

	status := overallStatus(statuses...)
	httpStatus := http.StatusOK
	if status == statusFail {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, generated.ReadinessStatus{
		Status:    generated.ReadinessStatusStatus(status),
		Timestamp: time.Now().UTC(),
		Version:   config.Version,
		Service:   serviceName,
		Checks:    checks,
	})
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

func readinessCheck(status, message string) generated.ReadinessCheck {
	c := generated.ReadinessCheck{Status: generated.ReadinessCheckStatus(status)}
	if message != "" {
		c.Message = &message
	}
	return c
}

// overallStatus определяет итоговый статус из статусов зависимостей.
// Если хотя бы одна зависимость fail — итог fail.
// Если хотя бы одна degraded — итог degraded.
// Иначе — ok.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == statusFail {
			return statusFail
		}
		if s == statusDegraded {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return statusDegraded
	}
	return statusOK
}
