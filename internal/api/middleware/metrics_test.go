package middleware

import "testing"

// TestNormalizePath проверяет нормализацию путей для лейблов метрик.
func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/health/live":                          "/health/live",
		"/api/users/search":                     "/api/users/search",
		"/api/users/42":                         "/api/users/{id}",
		"/api/users/abc":                        "/api/users/{id}",
		"/api/users/by-citizen-id/001099012345": "/api/users/by-citizen-id/{citizenId}",
		"/api/users/":                           "other",
		"/api/users/1/extra":                    "other",
		"/random/path":                          "other",
		"/api/search-history":                   "/api/search-history",
	}
	for in, want := range tests {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, ожидался %q", in, got, want)
		}
	}
}
