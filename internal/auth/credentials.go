// Пакет auth — аутентификация администратора Citizen Lookup.
// Проверка учётных данных (bcrypt), session JWT в HttpOnly cookie,
// отзыв сессий при logout.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Учётные данные по умолчанию, если в окружении ничего не задано.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// ErrInvalidCredentials — неверное имя пользователя или пароль.
var ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")

// Principal — аутентифицированный пользователь.
type Principal struct {
	Username string `json:"username"`
}

// CredentialVerifier проверяет пару логин/пароль.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*Principal, error)
}

// StaticVerifier — единственная учётная запись администратора с bcrypt-хешем пароля.
type StaticVerifier struct {
	username string
	hash     []byte
}

// NewStaticVerifier создаёт verifier.
// passwordHash имеет приоритет над password. Если не задано ни то ни другое,
// используется DefaultAdminPassword и в лог пишется предупреждение.
func NewStaticVerifier(username, password, passwordHash string, logger *slog.Logger) (*StaticVerifier, error) {
	if username == "" {
		username = DefaultAdminUsername
	}

	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("некорректный bcrypt-хеш пароля: %w", err)
		}
		return &StaticVerifier{username: username, hash: []byte(passwordHash)}, nil
	}

	if password == "" {
		password = DefaultAdminPassword
		logger.Warn("Пароль администратора не задан, используется пароль по умолчанию",
			slog.String("username", username),
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля: %w", err)
	}
	return &StaticVerifier{username: username, hash: hash}, nil
}

// Verify проверяет учётные данные. Хеш сравнивается всегда,
// чтобы время ответа не зависело от имени пользователя.
func (v *StaticVerifier) Verify(_ context.Context, username, password string) (*Principal, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(v.hash, []byte(password))

	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}
	return &Principal{Username: v.username}, nil
}
