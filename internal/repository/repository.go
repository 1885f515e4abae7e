// Пакет repository — слой хранения журнала поисковых запросов.
// Две реализации HistoryRepository: in-memory (по умолчанию)
// и PostgreSQL через pgx (чистый SQL, без ORM).
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HistoryRepository — журнал поисковых запросов.
type HistoryRepository interface {
	// Append добавляет запись журнала. top — первый результат поиска (может быть nil).
	Append(ctx context.Context, query, filter string, top *model.Record) (*model.SearchHistoryEntry, error)
	// List возвращает все записи, новые первые.
	List(ctx context.Context) ([]*model.SearchHistoryEntry, error)
	// Clear удаляет все записи и сбрасывает счётчик ID на 1.
	Clear(ctx context.Context) error
}
