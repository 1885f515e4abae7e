package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/bigkaa/citizen-lookup/internal/api/generated"
	"github.com/bigkaa/citizen-lookup/internal/ingest"
)

// TestReloadCSV проверяет перезагрузку CSV через API.
func TestReloadCSV(t *testing.T) {
	api := newTestAPI(t)

	content := "CCCD,Họ tên\n001,Nguyễn Văn An\n002,Trần Thị Bình\n"
	if err := os.WriteFile(api.csvPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rec := api.do(t, http.MethodPost, "/api/reload-csv", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[generated.ReloadResponse](t, rec)
	if resp.Count != 2 {
		t.Errorf("ожидалось count=2, получено %d", resp.Count)
	}
	if api.store.Count() != 2 {
		t.Errorf("в хранилище ожидалось 2 записи, получено %d", api.store.Count())
	}
}

// TestReloadExcelMissingFileKeepsData проверяет, что ошибка загрузки не меняет данные.
func TestReloadExcelMissingFileKeepsData(t *testing.T) {
	api := newTestAPI(t)
	api.seed("001")

	rec := api.do(t, http.MethodPost, "/api/reload-excel", "", true)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("ожидался статус 500, получен %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INTERNAL_ERROR" {
		t.Errorf("ожидался код INTERNAL_ERROR, получен %s", code)
	}
	if api.store.Count() != 1 {
		t.Errorf("ожидалось сохранение 1 записи, получено %d", api.store.Count())
	}
}

// fakeReloader — Reloader с заданным результатом.
type fakeReloader struct {
	result *ingest.LoadResult
	err    error
	got    []ingest.Source
}

func (f *fakeReloader) Load(_ context.Context, sources ...ingest.Source) (*ingest.LoadResult, error) {
	f.got = sources
	return f.result, f.err
}

// TestReloadHandlerSources проверяет, что каждый endpoint загружает свой источник.
func TestReloadHandlerSources(t *testing.T) {
	csvSrc := ingest.Source{Name: "primary", Path: "a.csv", Format: ingest.FormatCSV}
	excelSrc := ingest.Source{Name: "excel", Path: "b.xlsx", Format: ingest.FormatExcel}

	fake := &fakeReloader{result: &ingest.LoadResult{Source: "excel", Loaded: 7, Skipped: 1}}
	h := NewReloadHandler(fake, csvSrc, excelSrc, testLogger())

	rec := httptest.NewRecorder()
	h.ReloadExcel(rec, httptest.NewRequest(http.MethodPost, "/api/reload-excel", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d", rec.Code)
	}
	if len(fake.got) != 1 || fake.got[0] != excelSrc {
		t.Errorf("ожидалась загрузка источника excel, получено %+v", fake.got)
	}
	resp := decode[generated.ReloadResponse](t, rec)
	if resp.Count != 7 || resp.Skipped == nil || *resp.Skipped != 1 {
		t.Errorf("неверный ответ: %+v", resp)
	}

	fake.err = errors.New("boom")
	rec = httptest.NewRecorder()
	h.ReloadCSV(rec, httptest.NewRequest(http.MethodPost, "/api/reload-csv", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("ожидался статус 500, получен %d", rec.Code)
	}
	if fake.got[0] != csvSrc {
		t.Errorf("ожидалась загрузка источника primary, получено %+v", fake.got[0])
	}
}
