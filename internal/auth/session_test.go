package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestSessionManager создаёт менеджер с фиксированным секретом.
func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager("test-secret", time.Hour, false, nil)
	if err != nil {
		t.Fatalf("Ошибка создания SessionManager: %v", err)
	}
	return sm
}

// TestSessionIssueParseRoundTrip проверяет выпуск и проверку токена.
func TestSessionIssueParseRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	token, issued, err := sm.Issue(&Principal{Username: "admin"})
	if err != nil {
		t.Fatalf("Ошибка выпуска токена: %v", err)
	}

	parsed, err := sm.Parse(token)
	if err != nil {
		t.Fatalf("Ошибка проверки токена: %v", err)
	}
	if parsed.Username != "admin" {
		t.Errorf("Username: want admin, got %q", parsed.Username)
	}
	if parsed.ID != issued.ID || parsed.ID == "" {
		t.Errorf("ID: want %q, got %q", issued.ID, parsed.ID)
	}
}

// TestSessionParse_OtherKey проверяет отказ для токена, подписанного другим ключом.
func TestSessionParse_OtherKey(t *testing.T) {
	sm := newTestSessionManager(t)
	other, err := NewSessionManager("other-secret", time.Hour, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	token, _, err := other.Issue(&Principal{Username: "admin"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := sm.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("want ErrInvalidSession, got %v", err)
	}
}

// TestSessionParse_Expired проверяет отказ для просроченного токена.
func TestSessionParse_Expired(t *testing.T) {
	sm := newTestSessionManager(t)
	base := time.Now()
	sm.now = func() time.Time { return base }

	token, _, err := sm.Issue(&Principal{Username: "admin"})
	if err != nil {
		t.Fatal(err)
	}

	sm.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, err := sm.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("want ErrInvalidSession, got %v", err)
	}
}

// TestSessionParse_Garbage проверяет отказ для произвольной строки.
func TestSessionParse_Garbage(t *testing.T) {
	sm := newTestSessionManager(t)
	if _, err := sm.Parse("not-a-jwt"); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("want ErrInvalidSession, got %v", err)
	}
}

// TestSessionRevoke проверяет отзыв сессии.
func TestSessionRevoke(t *testing.T) {
	sm := newTestSessionManager(t)

	token, session, err := sm.Issue(&Principal{Username: "admin"})
	if err != nil {
		t.Fatal(err)
	}
	sm.Revoke(session)

	if _, err := sm.Parse(token); !errors.Is(err, ErrSessionRevoked) {
		t.Errorf("want ErrSessionRevoked, got %v", err)
	}

	// Новая сессия того же пользователя не затронута.
	token2, _, err := sm.Issue(&Principal{Username: "admin"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sm.Parse(token2); err != nil {
		t.Errorf("Новая сессия не должна быть отозвана: %v", err)
	}
}

// TestSessionCookieRoundTrip проверяет установку и чтение session cookie.
func TestSessionCookieRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	if _, err := sm.SetSessionCookie(rec, &Principal{Username: "admin"}); err != nil {
		t.Fatalf("Ошибка установки cookie: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Ожидался 1 cookie, получено %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || !c.HttpOnly || c.Path != "/" {
		t.Errorf("Неверные атрибуты cookie: %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/search", nil)
	req.AddCookie(c)

	session, err := sm.GetSessionFromRequest(req)
	if err != nil {
		t.Fatalf("Ошибка чтения сессии: %v", err)
	}
	if session == nil || session.Username != "admin" {
		t.Fatalf("Неверная сессия: %+v", session)
	}
}

// TestGetSessionFromRequest_NoCookie проверяет отсутствие cookie.
func TestGetSessionFromRequest_NoCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	session, err := sm.GetSessionFromRequest(req)
	if err != nil || session != nil {
		t.Errorf("want nil, nil; got %+v, %v", session, err)
	}
}

// TestClearSessionCookie проверяет удаление cookie.
func TestClearSessionCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	sm.ClearSessionCookie(rec)

	header := rec.Header().Get("Set-Cookie")
	if !strings.Contains(header, SessionCookieName+"=") || !strings.Contains(header, "Max-Age=0") {
		t.Errorf("Неверный Set-Cookie: %q", header)
	}
}
