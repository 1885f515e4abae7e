package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
)

// TestMemoryHistory_AppendSnapshot проверяет снимок полей первого результата.
func TestMemoryHistory_AppendSnapshot(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()

	top := &model.Record{
		CitizenID:    "079123456789",
		FullName:     "Trần Thị B",
		DateOfBirth:  "01/02/1990",
		DistrictCode: "Quận 1",
		PhoneNumber:  "0901234567",
	}

	entry, err := repo.Append(ctx, "trần", "name", top)
	if err != nil {
		t.Fatalf("Append ошибка: %v", err)
	}

	if entry.ID != 1 {
		t.Errorf("ID = %d, ожидался 1", entry.ID)
	}
	if entry.District != "Quận 1" {
		t.Errorf("District = %q, ожидался DistrictCode записи", entry.District)
	}
	if entry.CitizenID != top.CitizenID || entry.FullName != top.FullName ||
		entry.DateOfBirth != top.DateOfBirth || entry.PhoneNumber != top.PhoneNumber {
		t.Errorf("снимок не совпадает с первым результатом: %+v", entry)
	}
	if entry.SearchTime.IsZero() {
		t.Error("SearchTime не установлен")
	}
}

// TestMemoryHistory_AppendEmpty проверяет запись без результатов и фильтр по умолчанию.
func TestMemoryHistory_AppendEmpty(t *testing.T) {
	repo := NewMemoryHistoryRepository()

	entry, err := repo.Append(context.Background(), "nonexistent", "", nil)
	if err != nil {
		t.Fatalf("Append ошибка: %v", err)
	}
	if entry.SearchFilter != model.DefaultFilter {
		t.Errorf("SearchFilter = %q, ожидался %q", entry.SearchFilter, model.DefaultFilter)
	}
	if entry.CitizenID != "" || entry.FullName != "" || entry.DateOfBirth != "" || entry.District != "" {
		t.Errorf("поля снимка должны быть пустыми: %+v", entry)
	}
}

// TestMemoryHistory_ListNewestFirst проверяет сортировку (новые первые).
func TestMemoryHistory_ListNewestFirst(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newMemoryHistoryRepo(func() time.Time { return fixed })
	ctx := context.Background()

	for _, q := range []string{"a", "b", "c"} {
		if _, err := repo.Append(ctx, q, "all", nil); err != nil {
			t.Fatalf("Append ошибка: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ожидалось 3 записи, получено %d", len(list))
	}
	if list[0].SearchQuery != "c" || list[2].SearchQuery != "a" {
		t.Errorf("ожидался порядок c,b,a, получено %q,%q,%q",
			list[0].SearchQuery, list[1].SearchQuery, list[2].SearchQuery)
	}
}

// TestMemoryHistory_Clear проверяет очистку и сброс счётчика.
func TestMemoryHistory_Clear(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()

	_, _ = repo.Append(ctx, "a", "all", nil)
	_, _ = repo.Append(ctx, "b", "all", nil)

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear ошибка: %v", err)
	}

	list, _ := repo.List(ctx)
	if len(list) != 0 {
		t.Errorf("после Clear ожидалось 0 записей, получено %d", len(list))
	}

	entry, _ := repo.Append(ctx, "c", "all", nil)
	if entry.ID != 1 {
		t.Errorf("после Clear ожидался ID 1, получен %d", entry.ID)
	}
}

// TestMemoryHistory_ListReturnsCopies проверяет изоляцию возвращаемых записей.
func TestMemoryHistory_ListReturnsCopies(t *testing.T) {
	repo := NewMemoryHistoryRepository()
	ctx := context.Background()
	_, _ = repo.Append(ctx, "a", "all", nil)

	list, _ := repo.List(ctx)
	list[0].SearchQuery = "изменено"

	list2, _ := repo.List(ctx)
	if list2[0].SearchQuery != "a" {
		t.Error("List должен возвращать копии")
	}
}
