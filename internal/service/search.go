// Пакет service — бизнес-логика Citizen Lookup.
// search.go — поиск по записям, пагинация и журнал поиска.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
	"github.com/bigkaa/citizen-lookup/internal/repository"
	"github.com/bigkaa/citizen-lookup/internal/storage/recordstore"
)

// Ошибки сервисного слоя.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
)

// Prometheus-метрики поиска.
var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cl_search_total",
		Help: "Общее количество поисковых запросов.",
	}, []string{"filter"})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cl_search_duration_seconds",
		Help:    "Длительность поисковых запросов.",
		Buckets: prometheus.DefBuckets,
	})
	historyErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cl_search_history_errors_total",
		Help: "Количество ошибок записи в журнал поиска.",
	})
)

// RecordReader — доступ на чтение к хранилищу записей.
// Реализуется *recordstore.Store.
type RecordReader interface {
	Get(id int64) (*model.Record, error)
	GetByCitizenID(citizenID string) (*model.Record, error)
	Filter(match func(*model.Record) bool) []*model.Record
}

// SearchParams — параметры поиска.
type SearchParams struct {
	// Query — подстрока для поиска; пустая строка совпадает со всеми записями
	Query string
	// Filter — имя фильтра как его передал клиент
	Filter string
	// Page — номер страницы, с 1
	Page int
	// PageSize — размер страницы
	PageSize int
}

// SearchResult — страница результатов поиска.
type SearchResult struct {
	Data       []*model.Record `json:"data"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
}

// SearchService — поиск по записям и ведение журнала поиска.
type SearchService struct {
	records RecordReader
	history repository.HistoryRepository
	logger  *slog.Logger
}

// NewSearchService создаёт сервис поиска.
func NewSearchService(
	records RecordReader,
	history repository.HistoryRepository,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		records: records,
		history: history,
		logger:  logger.With(slog.String("component", "search_service")),
	}
}

// Search выполняет поиск без побочных эффектов.
// Совпадения сортируются по CreatedAt (новые первые, стабильно),
// затем вырезается страница. Страница за пределами результата — пустой Data.
func (s *SearchService) Search(_ context.Context, params SearchParams) *SearchResult {
	start := time.Now()

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 1
	}

	filter := model.ParseFilter(params.Filter)
	searchTotal.WithLabelValues(string(filter)).Inc()

	matches := s.records.Filter(func(r *model.Record) bool {
		return filter.Matches(r, params.Query)
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	data := paginate(matches, params.Page, params.PageSize)

	duration := time.Since(start)
	searchDuration.Observe(duration.Seconds())

	s.logger.Debug("Поиск выполнен",
		slog.String("filter", string(filter)),
		slog.Int("total", total),
		slog.Int("returned", len(data)),
		slog.Duration("duration", duration),
	)

	return &SearchResult{
		Data:       data,
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}
}

// SearchAndRecord выполняет поиск и добавляет ровно одну запись в журнал,
// в том числе при пустом результате. Ошибка журнала логируется
// и не влияет на результат поиска.
func (s *SearchService) SearchAndRecord(ctx context.Context, params SearchParams) *SearchResult {
	result := s.Search(ctx, params)

	var top *model.Record
	if len(result.Data) > 0 {
		top = result.Data[0]
	}

	if _, err := s.history.Append(ctx, params.Query, params.Filter, top); err != nil {
		historyErrorsTotal.Inc()
		s.logger.Error("Не удалось сохранить запись журнала поиска",
			slog.String("query", params.Query),
			slog.String("error", err.Error()),
		)
	}

	return result
}

// GetRecord возвращает запись по ID.
func (s *SearchService) GetRecord(id int64) (*model.Record, error) {
	rec, err := s.records.Get(id)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}
	return rec, nil
}

// GetRecordByCitizenID возвращает первую запись с указанным CCCD.
func (s *SearchService) GetRecordByCitizenID(citizenID string) (*model.Record, error) {
	rec, err := s.records.GetByCitizenID(citizenID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение записи по CCCD: %w", err)
	}
	return rec, nil
}

// History возвращает журнал поиска (новые первые).
func (s *SearchService) History(ctx context.Context) ([]*model.SearchHistoryEntry, error) {
	entries, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("чтение журнала поиска: %w", err)
	}
	return entries, nil
}

// ClearHistory очищает журнал поиска.
func (s *SearchService) ClearHistory(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		return fmt.Errorf("очистка журнала поиска: %w", err)
	}
	s.logger.Info("Журнал поиска очищен")
	return nil
}

// paginate возвращает окно [(page-1)*size, (page-1)*size+size), ограниченное
// длиной среза. Всегда возвращает не-nil срез.
func paginate(items []*model.Record, page, size int) []*model.Record {
	if page-1 >= len(items) {
		return []*model.Record{}
	}
	// Окно шире набора эквивалентно окну размером с набор; защищает от переполнения.
	if size > len(items) {
		size = len(items)
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []*model.Record{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
