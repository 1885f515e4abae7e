// auth.go — аутентификация запросов к /api/*.
// Принимается session cookie администратора или, если настроен JWKS,
// Bearer-токен (RS256) сервисного клиента.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/bigkaa/citizen-lookup/internal/api/errors"
	"github.com/bigkaa/citizen-lookup/internal/auth"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// ContextKeyPrincipal — аутентифицированный пользователь в контексте запроса.
	ContextKeyPrincipal contextKey = "principal"
	// ContextKeySession — session администратора (нет для Bearer-токенов).
	ContextKeySession contextKey = "session"
)

// BearerAuth — проверка Bearer-токенов через JWKS.
type BearerAuth struct {
	jwks      keyfunc.Keyfunc
	jwtLeeway time.Duration
	logger    *slog.Logger
}

// NewBearerAuth создаёт проверку Bearer-токенов с JWKS из указанного URL.
// NoErrorReturnFirstHTTPReq позволяет стартовать, даже если JWKS endpoint
// ещё недоступен.
func NewBearerAuth(jwksURL string, refreshInterval, jwtLeeway time.Duration, logger *slog.Logger) (*BearerAuth, error) {
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: 10 * time.Second},
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           refreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("Ошибка обновления JWKS",
				slog.String("error", err.Error()),
				slog.String("url", jwksURL),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("создание JWKS storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{
		Storage: storage,
	})
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}

	return NewBearerAuthWithKeyfunc(k, jwtLeeway, logger), nil
}

// NewBearerAuthWithKeyfunc создаёт проверку с предоставленной keyfunc.
// Используется в тестах для подстановки mock JWKS.
func NewBearerAuthWithKeyfunc(kf keyfunc.Keyfunc, jwtLeeway time.Duration, logger *slog.Logger) *BearerAuth {
	return &BearerAuth{
		jwks:      kf,
		jwtLeeway: jwtLeeway,
		logger:    logger.With(slog.String("component", "bearer_auth")),
	}
}

// errNoBearer — в запросе нет заголовка Authorization.
var errNoBearer = errors.New("нет Bearer-токена")

// authenticate проверяет Bearer-токен запроса и возвращает пользователя (sub).
func (b *BearerAuth) authenticate(r *http.Request) (*auth.Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errNoBearer
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, errors.New("неверный формат Authorization: ожидается Bearer <token>")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, b.jwks.KeyfuncCtx(r.Context()),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(b.jwtLeeway),
	)
	if err != nil {
		return nil, fmt.Errorf("невалидный или просроченный токен: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("невалидный токен")
	}
	if claims.Subject == "" {
		return nil, errors.New("отсутствует sub в токене")
	}

	return &auth.Principal{Username: claims.Subject}, nil
}

// Authenticator — middleware проверки session cookie и Bearer-токенов.
type Authenticator struct {
	sessions *auth.SessionManager
	// bearer — nil, если JWKS не настроен
	bearer *BearerAuth
	logger *slog.Logger
}

// NewAuthenticator создаёт middleware аутентификации.
// bearer может быть nil.
func NewAuthenticator(sessions *auth.SessionManager, bearer *BearerAuth, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		sessions: sessions,
		bearer:   bearer,
		logger:   logger.With(slog.String("component", "auth_middleware")),
	}
}

// Middleware возвращает HTTP middleware: без действующей сессии
// или Bearer-токена запрос отклоняется с 401.
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Session cookie администратора
			session, err := a.sessions.GetSessionFromRequest(r)
			if err != nil {
				a.logger.Debug("Сессия отклонена",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
			}
			if session != nil {
				ctx := context.WithValue(r.Context(), ContextKeyPrincipal, session.Principal())
				ctx = context.WithValue(ctx, ContextKeySession, session)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// 2. Bearer-токен сервисного клиента
			if a.bearer != nil {
				principal, bErr := a.bearer.authenticate(r)
				if bErr == nil {
					ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				if !errors.Is(bErr, errNoBearer) {
					a.logger.Debug("JWT валидация не пройдена",
						slog.String("error", bErr.Error()),
						slog.String("remote_addr", r.RemoteAddr),
					)
					apierrors.Unauthorized(w, "Невалидный или просроченный токен")
					return
				}
			}

			apierrors.Unauthorized(w, "Требуется вход в систему")
		})
	}
}

// WithExclusions оборачивает middleware, пропуская указанные пути.
// Путь исключается, если совпадает с элементом exact или не начинается
// ни с одного из protectedPrefixes.
func WithExclusions(mw func(http.Handler) http.Handler, protectedPrefixes []string, exact ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		protected := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range exact {
				if r.URL.Path == p {
					next.ServeHTTP(w, r)
					return
				}
			}
			for _, prefix := range protectedPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					protected.ServeHTTP(w, r)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --- Context helpers ---

// PrincipalFromContext извлекает пользователя из контекста запроса.
// Возвращает nil, если запрос не прошёл через Authenticator.
func PrincipalFromContext(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(ContextKeyPrincipal).(*auth.Principal)
	return p
}

// SessionFromContext извлекает сессию администратора из контекста запроса.
func SessionFromContext(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(ContextKeySession).(*auth.Session)
	return s
}
