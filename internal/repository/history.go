package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

// historyColumns — список столбцов таблицы search_history для SELECT/RETURNING.
const historyColumns = `id, search_time, search_query, search_filter,
	citizen_id, full_name, date_of_birth, district, phone_number`

// historyRepo — реализация HistoryRepository через pgx.
type historyRepo struct {
	db DBTX
}

// NewHistoryRepository создаёт журнал поиска в PostgreSQL.
func NewHistoryRepository(db DBTX) HistoryRepository {
	return &historyRepo{db: db}
}

// Append вставляет запись. ID и search_time назначает БД.
func (r *historyRepo) Append(ctx context.Context, query, filter string, top *model.Record) (*model.SearchHistoryEntry, error) {
	entry := model.NewSearchHistoryEntry(query, filter, top)

	q := fmt.Sprintf(`INSERT INTO search_history
		(search_query, search_filter, citizen_id, full_name, date_of_birth, district, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, historyColumns)

	e := &model.SearchHistoryEntry{}
	err := r.db.QueryRow(ctx, q,
		entry.SearchQuery, entry.SearchFilter, entry.CitizenID, entry.FullName,
		entry.DateOfBirth, entry.District, entry.PhoneNumber,
	).Scan(
		&e.ID, &e.SearchTime, &e.SearchQuery, &e.SearchFilter,
		&e.CitizenID, &e.FullName, &e.DateOfBirth, &e.District, &e.PhoneNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи в журнал поиска: %w", err)
	}
	return e, nil
}

// List возвращает все записи, новые первые. При равном времени — больший ID первым.
func (r *historyRepo) List(ctx context.Context) ([]*model.SearchHistoryEntry, error) {
	q := fmt.Sprintf(`SELECT %s FROM search_history ORDER BY search_time DESC, id DESC`, historyColumns)

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала поиска: %w", err)
	}
	defer rows.Close()

	result := make([]*model.SearchHistoryEntry, 0)
	for rows.Next() {
		e := &model.SearchHistoryEntry{}
		if err := rows.Scan(
			&e.ID, &e.SearchTime, &e.SearchQuery, &e.SearchFilter,
			&e.CitizenID, &e.FullName, &e.DateOfBirth, &e.District, &e.PhoneNumber,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи журнала: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации журнала: %w", err)
	}
	return result, nil
}

// Clear очищает таблицу и сбрасывает sequence, следующий ID будет 1.
func (r *historyRepo) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE search_history RESTART IDENTITY`); err != nil {
		return fmt.Errorf("ошибка очистки журнала поиска: %w", err)
	}
	return nil
}
