// handler.go — APIHandler реализует generated.ServerInterface,
// делегируя вызовы в отдельные handler'ы по доменам.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bigkaa/citizen-lookup/internal/api/generated"
)

// APIHandler — единая реализация ServerInterface, собирающая
// все доменные handlers в один объект.
type APIHandler struct {
	users   *UsersHandler
	history *HistoryHandler
	reload  *ReloadHandler
	auth    *AuthHandler
	health  *HealthHandler
	spec    *SpecHandler
}

// NewAPIHandler создаёт единый handler для всех endpoints.
func NewAPIHandler(
	users *UsersHandler,
	history *HistoryHandler,
	reload *ReloadHandler,
	auth *AuthHandler,
	health *HealthHandler,
	spec *SpecHandler,
) *APIHandler {
	return &APIHandler{
		users:   users,
		history: history,
		reload:  reload,
		auth:    auth,
		health:  health,
		spec:    spec,
	}
}

// --- Users ---

func (h *APIHandler) SearchUsers(w http.ResponseWriter, r *http.Request, params generated.SearchUsersParams) {
	h.users.SearchUsers(w, r, params)
}

func (h *APIHandler) GetUserById(w http.ResponseWriter, r *http.Request, id generated.UserId) { //nolint:revive // имя задано контрактом
	h.users.GetUserByID(w, r, id)
}

func (h *APIHandler) GetUserByCitizenId(w http.ResponseWriter, r *http.Request, citizenID generated.CitizenId) { //nolint:revive // имя задано контрактом
	h.users.GetUserByCitizenID(w, r, citizenID)
}

// --- Search history ---

func (h *APIHandler) GetSearchHistory(w http.ResponseWriter, r *http.Request) {
	h.history.GetSearchHistory(w, r)
}

func (h *APIHandler) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	h.history.ClearSearchHistory(w, r)
}

// --- Data reload ---

func (h *APIHandler) ReloadCsv(w http.ResponseWriter, r *http.Request) {
	h.reload.ReloadCSV(w, r)
}

func (h *APIHandler) ReloadExcel(w http.ResponseWriter, r *http.Request) {
	h.reload.ReloadExcel(w, r)
}

// --- Auth ---

func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.auth.Login(w, r)
}

func (h *APIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(w, r)
}

func (h *APIHandler) GetAuthStatus(w http.ResponseWriter, r *http.Request) {
	h.auth.GetAuthStatus(w, r)
}

// --- OpenAPI ---

func (h *APIHandler) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	h.spec.ServeHTTP(w, r)
}

// --- Health ---

func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ generated.ServerInterface = (*APIHandler)(nil)

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
