package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName — имя cookie с session JWT.
const SessionCookieName = "citizen_lookup_session"

// sessionIssuer — iss в session JWT.
const sessionIssuer = "citizen-lookup"

var (
	// ErrSessionRevoked — сессия отозвана через logout.
	ErrSessionRevoked = errors.New("сессия отозвана")
	// ErrInvalidSession — подпись, срок или формат токена некорректны.
	ErrInvalidSession = errors.New("недействительная сессия")
)

// Session — данные сессии из проверенного токена.
type Session struct {
	// ID — jti токена
	ID        string
	Username  string
	ExpiresAt time.Time
}

// Principal возвращает пользователя сессии.
func (s *Session) Principal() *Principal {
	return &Principal{Username: s.Username}
}

// SessionManager выпускает и проверяет session JWT (HS256)
// и управляет session cookie.
type SessionManager struct {
	key     []byte
	ttl     time.Duration
	secure  bool
	revoked *RevocationList
	now     func() time.Time
}

// NewSessionManager создаёт менеджер сессий.
// Пустой secret — случайный ключ (сессии не переживают рестарт).
func NewSessionManager(secret string, ttl time.Duration, secure bool, revoked *RevocationList) (*SessionManager, error) {
	var key []byte
	if secret == "" {
		key = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, key); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа сессии: %w", err)
		}
	} else {
		h := sha256.Sum256([]byte(secret))
		key = h[:]
	}

	if revoked == nil {
		revoked = NewRevocationList(0, ttl)
	}

	return &SessionManager{
		key:     key,
		ttl:     ttl,
		secure:  secure,
		revoked: revoked,
		now:     time.Now,
	}, nil
}

// Issue выпускает подписанный токен для пользователя.
func (sm *SessionManager) Issue(p *Principal) (string, *Session, error) {
	now := sm.now()
	session := &Session{
		ID:        uuid.NewString(),
		Username:  p.Username,
		ExpiresAt: now.Add(sm.ttl),
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   p.Username,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sm.key)
	if err != nil {
		return "", nil, fmt.Errorf("подпись session JWT: %w", err)
	}
	return token, session, nil
}

// Parse проверяет токен: подпись, срок действия, issuer и отзыв.
func (sm *SessionManager) Parse(token string) (*Session, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return sm.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(sm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("%w: нет sub или jti", ErrInvalidSession)
	}
	if sm.revoked.IsRevoked(claims.ID) {
		return nil, ErrSessionRevoked
	}

	return &Session{
		ID:        claims.ID,
		Username:  claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke отзывает сессию до истечения её срока.
func (sm *SessionManager) Revoke(s *Session) {
	if s != nil {
		sm.revoked.Revoke(s.ID)
	}
}

// SetSessionCookie выпускает токен и устанавливает session cookie.
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, p *Principal) (*Session, error) {
	token, session, err := sm.Issue(p)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(sm.ttl.Seconds()),
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// GetSessionFromRequest извлекает и проверяет сессию из cookie запроса.
// Возвращает nil, nil если cookie отсутствует.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}
	return sm.Parse(cookie.Value)
}

// ClearSessionCookie удаляет session cookie из ответа (logout).
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
