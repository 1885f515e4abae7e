package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

// memoryHistoryRepo — in-memory реализация HistoryRepository.
type memoryHistoryRepo struct {
	mu      sync.RWMutex
	entries []*model.SearchHistoryEntry
	nextID  int64
	lastAt  time.Time
	now     func() time.Time
}

// NewMemoryHistoryRepository создаёт пустой in-memory журнал.
func NewMemoryHistoryRepository() HistoryRepository {
	return newMemoryHistoryRepo(time.Now)
}

func newMemoryHistoryRepo(now func() time.Time) *memoryHistoryRepo {
	return &memoryHistoryRepo{nextID: 1, now: now}
}

// Append добавляет запись со следующим ID и текущим временем.
func (r *memoryHistoryRepo) Append(_ context.Context, query, filter string, top *model.Record) (*model.SearchHistoryEntry, error) {
	entry := model.NewSearchHistoryEntry(query, filter, top)

	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++

	at := r.now()
	if !at.After(r.lastAt) {
		at = r.lastAt.Add(time.Nanosecond)
	}
	entry.SearchTime = at
	r.lastAt = at

	r.entries = append(r.entries, &entry)

	copied := entry
	return &copied, nil
}

// List возвращает копии записей, отсортированные по времени поиска (новые первые).
func (r *memoryHistoryRepo) List(_ context.Context) ([]*model.SearchHistoryEntry, error) {
	r.mu.RLock()
	result := make([]*model.SearchHistoryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		copied := *e
		result = append(result, &copied)
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SearchTime.After(result[j].SearchTime)
	})
	return result, nil
}

// Clear очищает журнал и сбрасывает счётчик.
func (r *memoryHistoryRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.nextID = 1
	r.lastAt = time.Time{}
	return nil
}
