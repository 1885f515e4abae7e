// Пакет config — загрузка и валидация конфигурации Citizen Lookup
// из переменных окружения (префикс CL_).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Допустимые бэкенды журнала поиска.
const (
	HistoryBackendMemory   = "memory"
	HistoryBackendPostgres = "postgres"
)

// Config содержит все параметры конфигурации Citizen Lookup.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Таймаут graceful shutdown
	ShutdownTimeout time.Duration

	// --- Источники данных ---

	// Основной CSV-файл
	DataPrimaryCSV string
	// Резервный CSV-файл (используется, если основной не прочитан)
	DataSecondaryCSV string
	// Excel-файл (последний уровень fallback)
	DataExcel string
	// Перезагружать данные при изменении основного CSV
	DataWatch bool
	// Задержка перед перезагрузкой после изменения файла
	DataWatchDebounce time.Duration

	// --- Поиск ---

	// Размер страницы по умолчанию
	DefaultPageSize int
	// Максимальный размер страницы
	MaxPageSize int

	// --- Аутентификация ---

	AdminUsername string
	// Пароль администратора открытым текстом (хешируется bcrypt при старте)
	AdminPassword string
	// bcrypt-хеш пароля, имеет приоритет над AdminPassword
	AdminPasswordHash string
	// Секрет подписи session JWT (пусто — случайный при каждом старте)
	SessionSecret string
	// Время жизни сессии
	SessionTTL time.Duration
	// Secure-флаг session cookie
	CookieSecure bool
	// URL JWKS для Bearer-токенов сервисных клиентов (пусто — отключено)
	JWKSUrl string
	// Интервал обновления JWKS
	JWKSRefreshInterval time.Duration
	// Допустимое отклонение времени при проверке JWT
	JWTLeeway time.Duration
	// Проверять запросы по OpenAPI-контракту
	OpenAPIValidation bool

	// --- Журнал поиска ---

	// memory или postgres
	HistoryBackend string
	DBHost         string
	DBPort         int
	DBName         string
	DBUser         string
	DBPassword     string
	DBSSLMode      string
	// Максимум соединений пула (0 — значение pgxpool по умолчанию)
	DBMaxConns int32

	// --- topologymetrics ---

	DephealthCheckInterval time.Duration
	DephealthGroup         string
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	cfg.Port, err = getEnvInt("CL_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("CL_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("CL_PORT: порт вне диапазона: %d", cfg.Port)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("CL_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("CL_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("CL_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("CL_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("CL_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CL_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("CL_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CL_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("CL_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CL_HTTP_IDLE_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout, err = getEnvDuration("CL_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CL_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Источники данных ---

	cfg.DataPrimaryCSV = getEnvDefault("CL_DATA_PRIMARY_CSV", "cleaned_data.csv")
	cfg.DataSecondaryCSV = getEnvDefault("CL_DATA_SECONDARY_CSV", "cleaned_data_final_v2.csv")
	cfg.DataExcel = getEnvDefault("CL_DATA_EXCEL", "1000xlsx.xlsx")
	cfg.DataWatch, err = getEnvBool("CL_DATA_WATCH", false)
	if err != nil {
		return nil, fmt.Errorf("CL_DATA_WATCH: %w", err)
	}
	cfg.DataWatchDebounce, err = getEnvDurationPositive("CL_DATA_WATCH_DEBOUNCE", 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("CL_DATA_WATCH_DEBOUNCE: %w", err)
	}

	// --- Поиск ---

	cfg.DefaultPageSize, err = getEnvInt("CL_DEFAULT_PAGE_SIZE", 5)
	if err != nil {
		return nil, fmt.Errorf("CL_DEFAULT_PAGE_SIZE: %w", err)
	}
	cfg.MaxPageSize, err = getEnvInt("CL_MAX_PAGE_SIZE", 100)
	if err != nil {
		return nil, fmt.Errorf("CL_MAX_PAGE_SIZE: %w", err)
	}
	if cfg.DefaultPageSize < 1 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, fmt.Errorf("CL_DEFAULT_PAGE_SIZE/CL_MAX_PAGE_SIZE: требуется 1 <= default (%d) <= max (%d)",
			cfg.DefaultPageSize, cfg.MaxPageSize)
	}

	// --- Аутентификация ---

	cfg.AdminUsername = getEnvDefault("CL_ADMIN_USERNAME", "admin")
	cfg.AdminPassword = os.Getenv("CL_ADMIN_PASSWORD")
	cfg.AdminPasswordHash = os.Getenv("CL_ADMIN_PASSWORD_HASH")
	cfg.SessionSecret = os.Getenv("CL_SESSION_SECRET")
	cfg.SessionTTL, err = getEnvDurationPositive("CL_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("CL_SESSION_TTL: %w", err)
	}
	cfg.CookieSecure, err = getEnvBool("CL_COOKIE_SECURE", false)
	if err != nil {
		return nil, fmt.Errorf("CL_COOKIE_SECURE: %w", err)
	}
	cfg.JWKSUrl = os.Getenv("CL_JWKS_URL")
	cfg.JWKSRefreshInterval, err = getEnvDurationPositive("CL_JWKS_REFRESH_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CL_JWKS_REFRESH_INTERVAL: %w", err)
	}
	cfg.JWTLeeway, err = getEnvDuration("CL_JWT_LEEWAY", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CL_JWT_LEEWAY: %w", err)
	}
	cfg.OpenAPIValidation, err = getEnvBool("CL_OPENAPI_VALIDATION", true)
	if err != nil {
		return nil, fmt.Errorf("CL_OPENAPI_VALIDATION: %w", err)
	}

	// --- Журнал поиска ---

	cfg.HistoryBackend = getEnvDefault("CL_HISTORY_BACKEND", HistoryBackendMemory)
	switch cfg.HistoryBackend {
	case HistoryBackendMemory:
	case HistoryBackendPostgres:
		if err := loadDatabase(cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("CL_HISTORY_BACKEND: недопустимое значение %q, допустимые: memory, postgres", cfg.HistoryBackend)
	}

	// --- topologymetrics ---

	cfg.DephealthCheckInterval, err = getEnvDurationPositive("CL_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CL_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}
	cfg.DephealthGroup = getEnvDefault("CL_DEPHEALTH_GROUP", "citizen-lookup")

	return cfg, nil
}

// loadDatabase читает параметры PostgreSQL (обязательны для backend=postgres).
func loadDatabase(cfg *Config) error {
	var err error

	if cfg.DBHost, err = getEnvRequired("CL_DB_HOST"); err != nil {
		return err
	}
	cfg.DBPort, err = getEnvInt("CL_DB_PORT", 5432)
	if err != nil {
		return fmt.Errorf("CL_DB_PORT: %w", err)
	}
	cfg.DBName = getEnvDefault("CL_DB_NAME", "citizen_lookup")
	if cfg.DBUser, err = getEnvRequired("CL_DB_USER"); err != nil {
		return err
	}
	if cfg.DBPassword, err = getEnvRequired("CL_DB_PASSWORD"); err != nil {
		return err
	}
	cfg.DBSSLMode = getEnvDefault("CL_DB_SSL_MODE", "disable")
	maxConns, err := getEnvInt("CL_DB_MAX_CONNS", 4)
	if err != nil {
		return fmt.Errorf("CL_DB_MAX_CONNS: %w", err)
	}
	if maxConns < 1 || maxConns > 1000 {
		return fmt.Errorf("CL_DB_MAX_CONNS: значение вне диапазона [1, 1000]: %d", maxConns)
	}
	cfg.DBMaxConns = int32(maxConns)
	return nil
}

// UsesPostgres возвращает true, если журнал поиска хранится в PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.HistoryBackend == HistoryBackendPostgres
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL PostgreSQL (для golang-migrate и лейблов topologymetrics).
func (c *Config) DatabaseURL(scheme string) string {
	return fmt.Sprintf(
		"%s://%s:%s@%s:%d/%s?sslmode=%s",
		scheme, c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvDurationPositive — как getEnvDuration, но значение должно быть > 0.
func getEnvDurationPositive(key string, defaultVal time.Duration) (time.Duration, error) {
	d, err := getEnvDuration(key, defaultVal)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
