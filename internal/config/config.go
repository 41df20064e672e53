// Пакет config — загрузка и валидация конфигурации CMS Admin
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Режимы проверки ответов CMS API по OpenAPI-контракту.
const (
	ContractOff     = "off"
	ContractWarn    = "warn"
	ContractEnforce = "enforce"
)

// Config содержит все параметры конфигурации CMS Admin.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- CMS API ---

	// Базовый URL CMS API (origin, без завершающего слэша)
	APIURL string
	// Таймаут HTTP-запросов к CMS API
	APITimeout time.Duration
	// Путь к CA-сертификату для TLS-соединений с CMS API (опционально)
	APICACertPath string
	// Путь health endpoint CMS API (для dephealth и readiness)
	APIHealthPath string
	// Режим проверки ответов по контракту: off, warn, enforce
	APIContract string

	// --- UI ---

	// Секрет для шифрования cookie сессии
	SessionSecret string
	// Флаг Secure у cookie (включать за TLS)
	SecureCookie bool
	// Размер страницы списков по умолчанию
	DefaultPageSize int
	// Время показа баннера об успехе
	FlashDismiss time.Duration
	// Максимальное число состояний списков и черновиков в памяти
	StateCacheSize int
	// Время жизни состояния списка или черновика
	StateTTL time.Duration
	// Максимальный размер загружаемого файла в байтах
	UploadMaxBytes int64

	// --- PostgreSQL (журнал действий, опционально) ---

	// Хост PostgreSQL; пустое значение отключает журнал
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string
	// Срок хранения записей журнала
	JournalRetention time.Duration

	// --- Мониторинг зависимостей ---

	// Группа в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// CMS_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("CMS_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("CMS_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("CMS_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// CMS_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("CMS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("CMS_LOG_LEVEL: %w", err)
	}

	// CMS_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("CMS_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("CMS_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- CMS API ---

	// CMS_API_URL — origin CMS API (по умолчанию локальный сервер разработки)
	cfg.APIURL = strings.TrimRight(getEnvDefault("CMS_API_URL", "http://localhost:8080"), "/")
	if u, perr := url.Parse(cfg.APIURL); perr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("CMS_API_URL: некорректный URL %q", cfg.APIURL)
	}

	cfg.APITimeout, err = getEnvDuration("CMS_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CMS_API_TIMEOUT: %w", err)
	}

	cfg.APICACertPath = getEnvDefault("CMS_API_CA_CERT_PATH", "")
	cfg.APIHealthPath = getEnvDefault("CMS_API_HEALTH_PATH", "/actuator/health")
	if !strings.HasPrefix(cfg.APIHealthPath, "/") {
		return nil, fmt.Errorf("CMS_API_HEALTH_PATH: путь должен начинаться с /: %q", cfg.APIHealthPath)
	}

	cfg.APIContract = strings.ToLower(getEnvDefault("CMS_API_CONTRACT", ContractOff))
	switch cfg.APIContract {
	case ContractOff, ContractWarn, ContractEnforce:
	default:
		return nil, fmt.Errorf("CMS_API_CONTRACT: недопустимое значение %q, допустимые: off, warn, enforce", cfg.APIContract)
	}

	// --- UI ---

	// CMS_SESSION_SECRET — обязательный
	cfg.SessionSecret, err = getEnvRequired("CMS_SESSION_SECRET")
	if err != nil {
		return nil, err
	}

	cfg.SecureCookie, err = getEnvBool("CMS_SECURE_COOKIE", false)
	if err != nil {
		return nil, fmt.Errorf("CMS_SECURE_COOKIE: %w", err)
	}

	cfg.DefaultPageSize, err = getEnvInt("CMS_DEFAULT_PAGE_SIZE", 10)
	if err != nil {
		return nil, fmt.Errorf("CMS_DEFAULT_PAGE_SIZE: %w", err)
	}
	if cfg.DefaultPageSize < 1 || cfg.DefaultPageSize > 100 {
		return nil, fmt.Errorf("CMS_DEFAULT_PAGE_SIZE: значение %d вне допустимого диапазона 1-100", cfg.DefaultPageSize)
	}

	cfg.FlashDismiss, err = getEnvDuration("CMS_FLASH_DISMISS", 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CMS_FLASH_DISMISS: %w", err)
	}

	cfg.StateCacheSize, err = getEnvInt("CMS_STATE_CACHE_SIZE", 1024)
	if err != nil {
		return nil, fmt.Errorf("CMS_STATE_CACHE_SIZE: %w", err)
	}
	if cfg.StateCacheSize < 1 {
		return nil, fmt.Errorf("CMS_STATE_CACHE_SIZE: значение должно быть положительным")
	}

	cfg.StateTTL, err = getEnvDuration("CMS_STATE_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CMS_STATE_TTL: %w", err)
	}

	maxBytes, err := getEnvInt("CMS_UPLOAD_MAX_BYTES", 10<<20)
	if err != nil {
		return nil, fmt.Errorf("CMS_UPLOAD_MAX_BYTES: %w", err)
	}
	if maxBytes < 1 {
		return nil, fmt.Errorf("CMS_UPLOAD_MAX_BYTES: значение должно быть положительным")
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	// --- PostgreSQL ---

	// CMS_DB_HOST — если не задан, журнал действий отключён
	cfg.DBHost = getEnvDefault("CMS_DB_HOST", "")
	if cfg.DBHost != "" {
		cfg.DBPort, err = getEnvInt("CMS_DB_PORT", 5432)
		if err != nil {
			return nil, fmt.Errorf("CMS_DB_PORT: %w", err)
		}
		if cfg.DBName, err = getEnvRequired("CMS_DB_NAME"); err != nil {
			return nil, err
		}
		if cfg.DBUser, err = getEnvRequired("CMS_DB_USER"); err != nil {
			return nil, err
		}
		if cfg.DBPassword, err = getEnvRequired("CMS_DB_PASSWORD"); err != nil {
			return nil, err
		}
		cfg.DBSSLMode = getEnvDefault("CMS_DB_SSL_MODE", "disable")
		validSSLModes := map[string]bool{
			"disable": true, "require": true, "verify-ca": true, "verify-full": true,
		}
		if !validSSLModes[cfg.DBSSLMode] {
			return nil, fmt.Errorf("CMS_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
		}
		cfg.JournalRetention, err = getEnvDuration("CMS_JOURNAL_RETENTION", 90*24*time.Hour)
		if err != nil {
			return nil, fmt.Errorf("CMS_JOURNAL_RETENTION: %w", err)
		}
	}

	// --- Мониторинг зависимостей ---

	cfg.DephealthGroup = getEnvDefault("CMS_DEPHEALTH_GROUP", "cms")
	cfg.DephealthCheckInterval, err = getEnvDuration("CMS_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CMS_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("CMS_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CMS_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// JournalEnabled сообщает, настроен ли PostgreSQL для журнала действий.
func (c *Config) JournalEnabled() bool {
	return c.DBHost != ""
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения (для меток dephealth, без пароля).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s@%s:%d/%s", c.DBUser, c.DBHost, c.DBPort, c.DBName)
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

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
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
