// users.go — поиск записей и получение записи по идентификатору.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/citizen-lookup/internal/api/errors"
	"github.com/bigkaa/citizen-lookup/internal/api/generated"
	"github.com/bigkaa/citizen-lookup/internal/domain/model"
	"github.com/bigkaa/citizen-lookup/internal/service"
)

// UsersHandler — обработчики /api/users/*.
type UsersHandler struct {
	search          *service.SearchService
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// NewUsersHandler создаёт обработчик поиска.
// pageSize вне [1, maxPageSize] приводится к границам диапазона.
func NewUsersHandler(search *service.SearchService, defaultPageSize, maxPageSize int, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		search:          search,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		logger:          logger.With(slog.String("component", "users_handler")),
	}
}

// SearchUsers обрабатывает GET /api/users/search.
// Каждый вызов добавляет ровно одну запись в журнал поиска.
func (h *UsersHandler) SearchUsers(w http.ResponseWriter, r *http.Request, params generated.SearchUsersParams) {
	if params.Query == "" {
		apierrors.ValidationError(w, "Параметр query обязателен")
		return
	}

	filter := model.DefaultFilter
	if params.Filter != nil && *params.Filter != "" {
		filter = *params.Filter
	}

	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}

	pageSize := h.defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = *params.PageSize
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	result := h.search.SearchAndRecord(r.Context(), service.SearchParams{
		Query:    params.Query,
		Filter:   filter,
		Page:     page,
		PageSize: pageSize,
	})

	writeJSON(w, http.StatusOK, result)
}

// GetUserByID обрабатывает GET /api/users/{id}.
func (h *UsersHandler) GetUserByID(w http.ResponseWriter, _ *http.Request, id generated.UserId) {
	rec, err := h.search.GetRecord(id)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetUserByCitizenID обрабатывает GET /api/users/by-citizen-id/{citizenId}.
func (h *UsersHandler) GetUserByCitizenID(w http.ResponseWriter, _ *http.Request, citizenID generated.CitizenId) {
	rec, err := h.search.GetRecordByCitizenID(citizenID)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *UsersHandler) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		apierrors.NotFound(w, "Запись не найдена")
		return
	}
	h.logger.Error("Ошибка получения записи", slog.String("error", err.Error()))
	apierrors.InternalError(w, "Ошибка получения записи")
}
