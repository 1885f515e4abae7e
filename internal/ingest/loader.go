// Пакет ingest — загрузка записей из CSV/Excel-выгрузок в хранилище.
// Источник сначала разбирается целиком, затем атомарно подменяет
// содержимое хранилища. Ошибка чтения файла не затрагивает
// ранее загруженные данные.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

var (
	// ErrEmptySource — в источнике нет заголовка или листов.
	ErrEmptySource = errors.New("источник пуст")
	// ErrNoSource — ни один источник не удалось загрузить.
	ErrNoSource = errors.New("нет доступного источника данных")
)

// Prometheus-метрики загрузки.
var (
	ingestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cl_ingest_total",
		Help: "Количество попыток загрузки по источникам.",
	}, []string{"source", "result"})
	recordsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cl_records_total",
		Help: "Количество записей в хранилище.",
	})
)

// Format — формат файла-источника.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// DetectFormat определяет формат по расширению файла.
// Всё, что не похоже на книгу Excel, читается как CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatExcel
	default:
		return FormatCSV
	}
}

// Source — файл-источник записей.
type Source struct {
	// Name — короткое имя для логов и метрик (primary, secondary, excel)
	Name string
	// Path — путь к файлу
	Path string
	// Format — формат файла
	Format Format
}

// Batch — результат разбора источника.
type Batch struct {
	// Rows — строки, приведённые к каноническим полям
	Rows []model.Fields
	// Skipped — пропущенные строки (пустые или с ошибкой разбора)
	Skipped int
}

// LoadResult — итог загрузки.
type LoadResult struct {
	Source  string `json:"source"`
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
}

// RecordSink — приёмник записей. Реализуется *recordstore.Store.
type RecordSink interface {
	Replace(batch []model.Fields) int
}

// ReadSource разбирает источник, не трогая хранилище.
func ReadSource(src Source, logger *slog.Logger) (*Batch, error) {
	switch src.Format {
	case FormatExcel:
		return ReadExcel(src.Path, logger)
	case FormatCSV, "":
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, fmt.Errorf("открытие CSV: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, logger)
	default:
		return nil, fmt.Errorf("неизвестный формат источника %q", src.Format)
	}
}

// Loader загружает записи из источников в хранилище.
type Loader struct {
	sink   RecordSink
	logger *slog.Logger
}

// NewLoader создаёт загрузчик.
func NewLoader(sink RecordSink, logger *slog.Logger) *Loader {
	return &Loader{
		sink:   sink,
		logger: logger.With(slog.String("component", "ingest")),
	}
}

// Load перебирает источники по порядку и загружает первый успешно
// прочитанный. Источники с пустым путём пропускаются. Если ни один
// источник не прочитан, возвращается ErrNoSource с последней ошибкой,
// хранилище остаётся прежним.
func (l *Loader) Load(ctx context.Context, sources ...Source) (*LoadResult, error) {
	var lastErr error

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if src.Path == "" {
			continue
		}

		batch, err := ReadSource(src, l.logger)
		if err != nil {
			ingestTotal.WithLabelValues(src.Name, "error").Inc()
			l.logger.Warn("Не удалось прочитать источник",
				slog.String("source", src.Name),
				slog.String("path", src.Path),
				slog.String("error", err.Error()),
			)
			lastErr = fmt.Errorf("%s (%s): %w", src.Name, src.Path, err)
			continue
		}

		loaded := l.sink.Replace(batch.Rows)
		ingestTotal.WithLabelValues(src.Name, "success").Inc()
		recordsTotal.Set(float64(loaded))

		l.logger.Info("Данные загружены",
			slog.String("source", src.Name),
			slog.String("path", src.Path),
			slog.Int("loaded", loaded),
			slog.Int("skipped", batch.Skipped),
		)

		return &LoadResult{
			Source:  src.Name,
			Loaded:  loaded,
			Skipped: batch.Skipped,
		}, nil
	}

	if lastErr == nil {
		return nil, ErrNoSource
	}
	return nil, fmt.Errorf("%w: %w", ErrNoSource, lastErr)
}
