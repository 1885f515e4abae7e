// reload.go — ручная перезагрузка источников данных.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/citizen-lookup/internal/api/errors"
	"github.com/bigkaa/citizen-lookup/internal/api/generated"
	"github.com/bigkaa/citizen-lookup/internal/ingest"
)

// Reloader — загрузка источников в хранилище. Реализуется *ingest.Loader.
type Reloader interface {
	Load(ctx context.Context, sources ...ingest.Source) (*ingest.LoadResult, error)
}

// ReloadHandler — обработчики /api/reload-csv и /api/reload-excel.
// При ошибке хранилище не меняется.
type ReloadHandler struct {
	loader Reloader
	csv    ingest.Source
	excel  ingest.Source
	logger *slog.Logger
}

// NewReloadHandler создаёт обработчик перезагрузки.
func NewReloadHandler(loader Reloader, csv, excel ingest.Source, logger *slog.Logger) *ReloadHandler {
	return &ReloadHandler{
		loader: loader,
		csv:    csv,
		excel:  excel,
		logger: logger.With(slog.String("component", "reload_handler")),
	}
}

// ReloadCSV обрабатывает POST /api/reload-csv.
func (h *ReloadHandler) ReloadCSV(w http.ResponseWriter, r *http.Request) {
	h.reload(w, r, h.csv, "Данные CSV перезагружены")
}

// ReloadExcel обрабатывает POST /api/reload-excel.
func (h *ReloadHandler) ReloadExcel(w http.ResponseWriter, r *http.Request) {
	h.reload(w, r, h.excel, "Данные Excel перезагружены")
}

func (h *ReloadHandler) reload(w http.ResponseWriter, r *http.Request, src ingest.Source, message string) {
	result, err := h.loader.Load(r.Context(), src)
	if err != nil {
		h.logger.Error("Ошибка перезагрузки данных",
			slog.String("source", src.Name),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Ошибка перезагрузки данных из "+src.Name)
		return
	}

	writeJSON(w, http.StatusOK, generated.ReloadResponse{
		Message: message,
		Count:   result.Loaded,
		Skipped: &result.Skipped,
		Source:  &result.Source,
	})
}
