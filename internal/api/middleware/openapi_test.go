package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bigkaa/citizen-lookup/internal/api/generated"
)

// newTestValidator создаёт validator поверх встроенного контракта.
func newTestValidator(t *testing.T) http.Handler {
	t.Helper()

	doc, err := generated.GetSwagger()
	if err != nil {
		t.Fatalf("GetSwagger: %v", err)
	}
	mw, err := OpenAPIValidator(doc, testLogger())
	if err != nil {
		t.Fatalf("OpenAPIValidator: %v", err)
	}

	return mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

// TestOpenAPIValidator проверяет отклонение запросов вне контракта.
func TestOpenAPIValidator(t *testing.T) {
	handler := newTestValidator(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"валидный поиск", http.MethodGet, "/api/users/search?query=an&filter=name&page=2&pageSize=10", "", http.StatusOK},
		{"без query", http.MethodGet, "/api/users/search", "", http.StatusBadRequest},
		{"пустой query", http.MethodGet, "/api/users/search?query=", "", http.StatusBadRequest},
		{"page не число", http.MethodGet, "/api/users/search?query=a&page=abc", "", http.StatusBadRequest},
		{"id не число", http.MethodGet, "/api/users/abc", "", http.StatusBadRequest},
		{"валидный id", http.MethodGet, "/api/users/7", "", http.StatusOK},
		{"login JSON", http.MethodPost, "/api/login", `{"username":"admin","password":"x"}`, http.StatusOK},
		{"login не JSON-объект", http.MethodPost, "/api/login", `[1,2]`, http.StatusBadRequest},
		{"путь вне контракта", http.MethodGet, "/unknown", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("ожидался статус %d, получен %d, тело: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
