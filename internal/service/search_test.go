package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/bigkaa/citizen-lookup/internal/domain/model"
	"github.com/bigkaa/citizen-lookup/internal/repository"
	"github.com/bigkaa/citizen-lookup/internal/storage/recordstore"
)

// testLogger возвращает логгер для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// --- Mock repository ---

// mockHistoryRepo — мок HistoryRepository для unit-тестов.
type mockHistoryRepo struct {
	appendFn func(ctx context.Context, query, filter string, top *model.Record) (*model.SearchHistoryEntry, error)
	calls    int
}

func (m *mockHistoryRepo) Append(ctx context.Context, query, filter string, top *model.Record) (*model.SearchHistoryEntry, error) {
	m.calls++
	if m.appendFn != nil {
		return m.appendFn(ctx, query, filter, top)
	}
	return &model.SearchHistoryEntry{}, nil
}

func (m *mockHistoryRepo) List(context.Context) ([]*model.SearchHistoryEntry, error) {
	return nil, nil
}

func (m *mockHistoryRepo) Clear(context.Context) error {
	return nil
}

// newTestService создаёт хранилище с записями и сервис поиска поверх него.
func newTestService(t *testing.T, batch ...model.Fields) (*SearchService, *recordstore.Store, repository.HistoryRepository) {
	t.Helper()
	store := recordstore.New(testLogger())
	for _, f := range batch {
		store.Insert(f)
	}
	history := repository.NewMemoryHistoryRepository()
	return NewSearchService(store, history, testLogger()), store, history
}

func cccd(id string) model.Fields {
	return model.Fields{model.FieldCitizenID: id}
}

// --- Тесты SearchService ---

// TestSearch_CCCDPagination проверяет пример: три CCCD, страница из двух новейших.
func TestSearch_CCCDPagination(t *testing.T) {
	svc, _, _ := newTestService(t, cccd("001"), cccd("002"), cccd("003"))

	result := svc.Search(context.Background(), SearchParams{Query: "00", Filter: "cccd", Page: 1, PageSize: 2})

	if result.TotalCount != 3 {
		t.Errorf("TotalCount = %d, ожидался 3", result.TotalCount)
	}
	if len(result.Data) != 2 {
		t.Fatalf("len(Data) = %d, ожидалось 2", len(result.Data))
	}
	if result.Data[0].CitizenID != "003" || result.Data[1].CitizenID != "002" {
		t.Errorf("ожидались 003, 002, получено %q, %q", result.Data[0].CitizenID, result.Data[1].CitizenID)
	}
}

// TestSearch_EmptyQueryReturnsAll проверяет, что пустой запрос совпадает со всеми записями.
func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	svc, _, _ := newTestService(t, cccd("a"), cccd("b"), cccd("c"))

	result := svc.Search(context.Background(), SearchParams{Query: "", Filter: "phone", Page: 1, PageSize: 10})

	if result.TotalCount != 3 || len(result.Data) != 3 {
		t.Fatalf("ожидалось 3 записи, получено total=%d len=%d", result.TotalCount, len(result.Data))
	}
	for i := 1; i < len(result.Data); i++ {
		if result.Data[i-1].CreatedAt.Before(result.Data[i].CreatedAt) {
			t.Error("записи должны быть отсортированы по CreatedAt (новые первые)")
		}
	}
}

// TestSearch_CaseInsensitive проверяет поиск без учёта регистра.
func TestSearch_CaseInsensitive(t *testing.T) {
	svc, _, _ := newTestService(t,
		model.Fields{model.FieldFullName: "Nguyễn Văn An"},
		model.Fields{model.FieldFullName: "Trần Thị Bình"},
	)

	result := svc.Search(context.Background(), SearchParams{Query: "NGUYỄN", Filter: "name", Page: 1, PageSize: 5})
	if result.TotalCount != 1 || result.Data[0].FullName != "Nguyễn Văn An" {
		t.Errorf("ожидалось 1 совпадение 'Nguyễn Văn An', получено %d", result.TotalCount)
	}
}

// TestSearch_FilterRestrictsFields проверяет, что фильтр cccd игнорирует другие поля.
func TestSearch_FilterRestrictsFields(t *testing.T) {
	svc, _, _ := newTestService(t,
		model.Fields{model.FieldCitizenID: "111", model.FieldFullName: "needle"},
		model.Fields{model.FieldCitizenID: "needle-222"},
	)

	result := svc.Search(context.Background(), SearchParams{Query: "needle", Filter: "cccd", Page: 1, PageSize: 5})
	if result.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, ожидался 1", result.TotalCount)
	}
	if result.Data[0].CitizenID != "needle-222" {
		t.Errorf("ожидалась запись 'needle-222', получено %q", result.Data[0].CitizenID)
	}

	all := svc.Search(context.Background(), SearchParams{Query: "needle", Filter: "unknown", Page: 1, PageSize: 5})
	if all.TotalCount != 2 {
		t.Errorf("неизвестный фильтр должен работать как all, TotalCount = %d", all.TotalCount)
	}
}

// TestSearch_PageBeyondLast проверяет пустую страницу за пределами результата.
func TestSearch_PageBeyondLast(t *testing.T) {
	svc, _, _ := newTestService(t, cccd("001"), cccd("002"), cccd("003"))

	result := svc.Search(context.Background(), SearchParams{Query: "0", Filter: "cccd", Page: 3, PageSize: 2})

	if result.TotalCount != 3 {
		t.Errorf("TotalCount = %d, ожидался 3", result.TotalCount)
	}
	if result.Data == nil || len(result.Data) != 0 {
		t.Errorf("ожидался пустой (не nil) Data, получено %v", result.Data)
	}
	if result.Page != 3 || result.PageSize != 2 {
		t.Errorf("Page/PageSize = %d/%d, ожидалось 3/2", result.Page, result.PageSize)
	}
}

// TestSearch_TotalCountInvariant проверяет независимость TotalCount от пагинации.
func TestSearch_TotalCountInvariant(t *testing.T) {
	svc, _, _ := newTestService(t, cccd("1"), cccd("2"), cccd("3"), cccd("4"), cccd("5"))

	for _, p := range []SearchParams{
		{Page: 1, PageSize: 1}, {Page: 2, PageSize: 2}, {Page: 1, PageSize: 100}, {Page: 9, PageSize: 3},
	} {
		result := svc.Search(context.Background(), p)
		if result.TotalCount != 5 {
			t.Errorf("page=%d size=%d: TotalCount = %d, ожидался 5", p.Page, p.PageSize, result.TotalCount)
		}
		if len(result.Data) > p.PageSize {
			t.Errorf("page=%d size=%d: len(Data) = %d больше размера страницы", p.Page, p.PageSize, len(result.Data))
		}
	}
}

// TestSearch_HugePageDoesNotPanic проверяет защиту от переполнения смещения.
func TestSearch_HugePageDoesNotPanic(t *testing.T) {
	svc, _, _ := newTestService(t, cccd("1"))

	result := svc.Search(context.Background(), SearchParams{Page: 1 << 40, PageSize: 1 << 40})
	if len(result.Data) != 0 {
		t.Errorf("ожидалась пустая страница, получено %d", len(result.Data))
	}
}

// TestSearchAndRecord_NoResults проверяет запись в журнал при пустом результате.
func TestSearchAndRecord_NoResults(t *testing.T) {
	svc, _, history := newTestService(t, cccd("001"))
	ctx := context.Background()

	result := svc.SearchAndRecord(ctx, SearchParams{Query: "nonexistent", Filter: "all", Page: 1, PageSize: 5})
	if result.TotalCount != 0 || len(result.Data) != 0 {
		t.Errorf("ожидался пустой результат, получено %d", result.TotalCount)
	}

	entries, _ := history.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("ожидалась 1 запись журнала, получено %d", len(entries))
	}
	e := entries[0]
	if e.SearchQuery != "nonexistent" || e.SearchFilter != "all" {
		t.Errorf("неверная запись журнала: %+v", e)
	}
	if e.CitizenID != "" || e.FullName != "" || e.DateOfBirth != "" || e.District != "" {
		t.Errorf("поля снимка должны быть пустыми: %+v", e)
	}
}

// TestSearchAndRecord_SnapshotTopResult проверяет снимок первого результата.
func TestSearchAndRecord_SnapshotTopResult(t *testing.T) {
	svc, _, history := newTestService(t,
		model.Fields{model.FieldCitizenID: "001", model.FieldDistrictCode: "Cầu Giấy"},
		model.Fields{model.FieldCitizenID: "002", model.FieldDistrictCode: "Đống Đa"},
	)
	ctx := context.Background()

	svc.SearchAndRecord(ctx, SearchParams{Query: "00", Filter: "cccd", Page: 1, PageSize: 5})

	entries, _ := history.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("ожидалась 1 запись журнала, получено %d", len(entries))
	}
	if entries[0].CitizenID != "002" || entries[0].District != "Đống Đa" {
		t.Errorf("снимок должен соответствовать новейшей записи: %+v", entries[0])
	}
}

// TestSearchAndRecord_HistoryFailure проверяет, что ошибка журнала не ломает поиск.
func TestSearchAndRecord_HistoryFailure(t *testing.T) {
	store := recordstore.New(testLogger())
	store.Insert(cccd("001"))

	repo := &mockHistoryRepo{
		appendFn: func(context.Context, string, string, *model.Record) (*model.SearchHistoryEntry, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewSearchService(store, repo, testLogger())

	result := svc.SearchAndRecord(context.Background(), SearchParams{Query: "001", Filter: "cccd", Page: 1, PageSize: 5})
	if result.TotalCount != 1 {
		t.Errorf("TotalCount = %d, ожидался 1", result.TotalCount)
	}
	if repo.calls != 1 {
		t.Errorf("Append вызван %d раз, ожидался 1", repo.calls)
	}
}

// TestGetRecord_NotFound проверяет ErrNotFound.
func TestGetRecord_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetRecord(1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ошибка = %v, ожидалась ErrNotFound", err)
	}

	_, err = svc.GetRecordByCitizenID("x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ошибка = %v, ожидалась ErrNotFound", err)
	}
}

// TestClearHistory проверяет очистку журнала через сервис.
func TestClearHistory(t *testing.T) {
	svc, _, _ := newTestService(t, cccd("001"))
	ctx := context.Background()

	svc.SearchAndRecord(ctx, SearchParams{Query: "1", Page: 1, PageSize: 5})
	if err := svc.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory ошибка: %v", err)
	}

	entries, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History ошибка: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ожидался пустой журнал, получено %d", len(entries))
	}
}
