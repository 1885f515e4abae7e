package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigkaa/citizen-lookup/internal/api/generated"
)

// stubHandler — ServerInterface, отвечающий 204 на все запросы.
type stubHandler struct {
	generated.Unimplemented
}

func (stubHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body generated.Error
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Ошибка декодирования ответа: %v", err)
	}
	return body.Error.Code
}

func TestRouterNotFound(t *testing.T) {
	router := NewRouter(stubHandler{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался статус 404, получен %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("ожидался код NOT_FOUND, получен %s", code)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := NewRouter(stubHandler{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/health/live", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("ожидался статус 405, получен %d", rec.Code)
	}
}

// TestRouterMiddlewareOrder проверяет применение middleware к маршрутам.
func TestRouterMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	router := NewRouter(stubHandler{}, mark("first"), mark("second"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("ожидался статус 204, получен %d", rec.Code)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("неверный порядок middleware: %v", order)
	}
}

func TestParamErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"обязательный параметр", &generated.RequiredParamError{ParamName: "query"}},
		{"неверный формат", &generated.InvalidParamFormatError{ParamName: "page", Err: errors.New("bad")}},
		{"прочая ошибка", errors.New("bad request")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			paramErrorHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("ожидался статус 400, получен %d", rec.Code)
			}
			if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
				t.Errorf("ожидался код VALIDATION_ERROR, получен %s", code)
			}
		})
	}
}
