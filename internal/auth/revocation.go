package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sessionsRevokedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cl_sessions_revoked_total",
	Help: "Количество отозванных сессий (logout).",
})

// defaultRevocationSize — максимум одновременно хранимых отозванных сессий.
const defaultRevocationSize = 10000

// RevocationList — LRU-список отозванных идентификаторов сессий (jti) с TTL.
// TTL равен времени жизни сессии: после него токен истекает сам.
type RevocationList struct {
	cache *expirable.LRU[string, struct{}]
}

// NewRevocationList создаёт список отзыва.
// maxSize <= 0 — размер по умолчанию.
func NewRevocationList(maxSize int, ttl time.Duration) *RevocationList {
	if maxSize <= 0 {
		maxSize = defaultRevocationSize
	}
	return &RevocationList{
		cache: expirable.NewLRU[string, struct{}](maxSize, nil, ttl),
	}
}

// Revoke отзывает сессию.
func (l *RevocationList) Revoke(id string) {
	if id == "" {
		return
	}
	l.cache.Add(id, struct{}{})
	sessionsRevokedTotal.Inc()
}

// IsRevoked проверяет, отозвана ли сессия.
func (l *RevocationList) IsRevoked(id string) bool {
	return l.cache.Contains(id)
}
