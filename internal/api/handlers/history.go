// history.go — журнал поиска.
package handlers

import (
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/citizen-lookup/internal/api/errors"
	"github.com/bigkaa/citizen-lookup/internal/api/generated"
	"github.com/bigkaa/citizen-lookup/internal/domain/model"
	"github.com/bigkaa/citizen-lookup/internal/service"
)

// HistoryHandler — обработчики /api/search-history.
type HistoryHandler struct {
	search *service.SearchService
	logger *slog.Logger
}

// NewHistoryHandler создаёт обработчик журнала поиска.
func NewHistoryHandler(search *service.SearchService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		search: search,
		logger: logger.With(slog.String("component", "history_handler")),
	}
}

// searchHistoryResponse — ответ GET /api/search-history.
type searchHistoryResponse struct {
	Data       []*model.SearchHistoryEntry `json:"data"`
	TotalCount int                         `json:"totalCount"`
}

// GetSearchHistory обрабатывает GET /api/search-history (новые первые).
func (h *HistoryHandler) GetSearchHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.search.History(r.Context())
	if err != nil {
		h.logger.Error("Ошибка чтения журнала поиска", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Ошибка чтения журнала поиска")
		return
	}
	if entries == nil {
		entries = []*model.SearchHistoryEntry{}
	}

	writeJSON(w, http.StatusOK, searchHistoryResponse{
		Data:       entries,
		TotalCount: len(entries),
	})
}

// ClearSearchHistory обрабатывает DELETE /api/search-history.
func (h *HistoryHandler) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.search.ClearHistory(r.Context()); err != nil {
		h.logger.Error("Ошибка очистки журнала поиска", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Ошибка очистки журнала поиска")
		return
	}

	writeJSON(w, http.StatusOK, generated.OperationResult{
		Success: true,
		Message: "Журнал поиска очищен",
	})
}
