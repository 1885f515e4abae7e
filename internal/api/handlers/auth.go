// auth.go — вход, выход и статус аутентификации администратора.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/citizen-lookup/internal/api/errors"
	"github.com/bigkaa/citizen-lookup/internal/api/generated"
	"github.com/bigkaa/citizen-lookup/internal/api/middleware"
	"github.com/bigkaa/citizen-lookup/internal/auth"
)

// maxLoginBodySize — ограничение тела запроса входа.
const maxLoginBodySize = 4 << 10

// AuthHandler — обработчики /api/login, /api/logout, /api/auth/status.
type AuthHandler struct {
	verifier auth.CredentialVerifier
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthHandler создаёт обработчик аутентификации.
func NewAuthHandler(verifier auth.CredentialVerifier, sessions *auth.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "auth_handler")),
	}
}

// Login обрабатывает POST /api/login.
// При успехе устанавливает session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req generated.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodySize)).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректное тело запроса")
		return
	}

	username, password := deref(req.Username), deref(req.Password)
	if username == "" || password == "" {
		apierrors.ValidationError(w, "Имя пользователя и пароль обязательны")
		return
	}

	principal, err := h.verifier.Verify(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("Неудачная попытка входа",
				slog.String("username", username),
				slog.String("remote_addr", r.RemoteAddr),
			)
			apierrors.Unauthorized(w, "Неверное имя пользователя или пароль")
			return
		}
		h.logger.Error("Ошибка проверки учётных данных", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Ошибка проверки учётных данных")
		return
	}

	if _, err := h.sessions.SetSessionCookie(w, principal); err != nil {
		h.logger.Error("Ошибка создания сессии", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Ошибка создания сессии")
		return
	}

	h.logger.Info("Вход выполнен", slog.String("username", principal.Username))
	writeJSON(w, http.StatusOK, generated.LoginResponse{
		Success: true,
		Message: "Вход выполнен",
		User:    &generated.AuthUser{Username: principal.Username},
	})
}

// Logout обрабатывает POST /api/logout: отзывает сессию и удаляет cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeJSON(w, http.StatusOK, generated.OperationResult{
			Success: true,
			Message: "Сессия не использовалась",
		})
		return
	}

	h.sessions.Revoke(session)
	h.sessions.ClearSessionCookie(w)

	h.logger.Info("Выход выполнен", slog.String("username", session.Username))
	writeJSON(w, http.StatusOK, generated.OperationResult{
		Success: true,
		Message: "Выход выполнен",
	})
}

// GetAuthStatus обрабатывает GET /api/auth/status.
// Недействительная сессия не является ошибкой: authenticated=false.
func (h *AuthHandler) GetAuthStatus(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.GetSessionFromRequest(r)
	if err != nil || session == nil {
		writeJSON(w, http.StatusOK, generated.AuthStatus{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, generated.AuthStatus{
		Authenticated: true,
		User:          &generated.AuthUser{Username: session.Username},
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
