// Пакет recordstore — потокобезопасное in-memory хранилище записей граждан.
//
// Хранилище заполняется импортом (Replace) и не изменяет записи на месте.
// Идентификаторы назначаются последовательно с 1 и сбрасываются при Clear.
// Порядок итерации (Filter, All) совпадает с порядком вставки.
//
// Не персистентное: при рестарте данные загружаются из файлов заново.
package recordstore

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

// ErrNotFound — запись не найдена.
var ErrNotFound = errors.New("запись не найдена")

// Store — in-memory хранилище записей.
// sync.RWMutex: вставка и очистка эксклюзивны, чтение конкурентно.
type Store struct {
	mu      sync.RWMutex
	records []*model.Record         // в порядке вставки
	byID    map[int64]*model.Record // id → запись
	nextID  int64
	lastAt  time.Time // время последней вставки, для строгого порядка CreatedAt
	ready   bool      // хотя бы один импорт завершён успешно
	now     func() time.Time
	logger  *slog.Logger
}

// New создаёт пустое хранилище.
func New(logger *slog.Logger) *Store {
	return &Store{
		byID:   make(map[int64]*model.Record),
		nextID: 1,
		now:    time.Now,
		logger: logger.With(slog.String("component", "record_store")),
	}
}

// Insert назначает записи следующий ID и текущее время и сохраняет её.
// Не возвращает ошибок: отсутствующие поля становятся пустыми строками.
func (s *Store) Insert(fields model.Fields) *model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *s.insertLocked(fields)
	return &copied
}

// insertLocked выполняет вставку. Вызывающий держит s.mu на запись.
func (s *Store) insertLocked(fields model.Fields) *model.Record {
	rec := model.NewRecord(fields)
	rec.ID = s.nextID
	s.nextID++

	// CreatedAt строго возрастает в пределах хранилища,
	// иначе при совпадении времени порядок "новые первые" не определён.
	at := s.now()
	if !at.After(s.lastAt) {
		at = s.lastAt.Add(time.Nanosecond)
	}
	rec.CreatedAt = at
	s.lastAt = at

	s.records = append(s.records, &rec)
	s.byID[rec.ID] = &rec
	return &rec
}

// Replace атомарно заменяет содержимое хранилища: очистка и вставка
// всех записей выполняются под одной блокировкой, читатели не видят
// частично загруженный набор. Возвращает количество вставленных записей.
func (s *Store) Replace(batch []model.Fields) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	for _, fields := range batch {
		s.insertLocked(fields)
	}
	s.ready = true

	s.logger.Info("Набор записей заменён",
		slog.Int("records", len(s.records)),
	)
	return len(s.records)
}

// Clear удаляет все записи и сбрасывает счётчик ID на 1.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.records = nil
	s.byID = make(map[int64]*model.Record)
	s.nextID = 1
	s.lastAt = time.Time{}
}

// Get возвращает копию записи по ID или ErrNotFound.
func (s *Store) Get(id int64) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

// GetByCitizenID возвращает первую (в порядке вставки) запись
// с точно совпадающим CCCD или ErrNotFound.
func (s *Store) GetByCitizenID(citizenID string) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.CitizenID == citizenID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// All возвращает копии всех записей в порядке вставки.
func (s *Store) All() []*model.Record {
	return s.Filter(nil)
}

// Filter возвращает копии записей, для которых match вернул true,
// в порядке вставки. match == nil — все записи.
func (s *Store) Filter(match func(*model.Record) bool) []*model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Record, 0, len(s.records))
	for _, rec := range s.records {
		if match != nil && !match(rec) {
			continue
		}
		copied := *rec
		result = append(result, &copied)
	}
	return result
}

// Count возвращает количество записей.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// CountByStatus возвращает количество записей с указанным статусом.
func (s *Store) CountByStatus(status string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.records {
		if rec.Status == status {
			count++
		}
	}
	return count
}

// IsReady возвращает true, если хотя бы один импорт завершён успешно.
func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}
