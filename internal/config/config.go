// Пакет config — загрузка и валидация конфигурации raspyman
// из переменных окружения.
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

// Config содержит все параметры конфигурации консоли.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8000-8009; занятый порт —
	// берётся следующий свободный из диапазона)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- RAS ---

	// Начальный базовый URL RAS Management API
	RASURL string
	// Таймаут одного запроса к RAS
	RASTimeout time.Duration
	// Число повторов при сетевом сбое
	RASRetries int
	// Начальная задержка backoff между повторами
	RASBackoff time.Duration

	// --- JWT (опционально, для работы за API Gateway) ---

	// URL JWKS endpoint. Пустая строка — JWT-аутентификация отключена
	JWTJWKSURL string
	// Ожидаемый issuer JWT
	JWTIssuer string
	// Claim с ролями (admin, readonly)
	JWTRolesClaim string

	// --- Локальная аутентификация UI (опционально) ---

	// Логин администратора консоли. Пустая строка — вход без авторизации
	AdminUser string
	// Пароль администратора консоли
	AdminPassword string
	// Секрет шифрования cookie сессии UI (base64 или произвольная строка)
	SessionSecret string

	// --- Мониторинг зависимостей ---

	// Имя группы topologymetrics
	DephealthGroup string
	// Интервал проверки доступности RAS
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// RM_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("RM_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("RM_PORT: %w", err)
	}
	if cfg.Port < 8000 || cfg.Port > 8009 {
		return nil, fmt.Errorf("RM_PORT: значение %d вне допустимого диапазона 8000-8009", cfg.Port)
	}

	// RM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("RM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("RM_LOG_LEVEL: %w", err)
	}

	// RM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("RM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("RM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- RAS ---

	// RM_RAS_URL — адрес RAS Management API (по умолчанию http://localhost:5000)
	cfg.RASURL = strings.TrimRight(getEnvDefault("RM_RAS_URL", "http://localhost:5000"), "/")

	// RM_RAS_TIMEOUT — таймаут запроса к RAS (по умолчанию 10s)
	cfg.RASTimeout, err = getEnvDuration("RM_RAS_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RM_RAS_TIMEOUT: %w", err)
	}

	// RM_RAS_RETRIES — число повторов при сетевом сбое (по умолчанию 3)
	cfg.RASRetries, err = getEnvInt("RM_RAS_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("RM_RAS_RETRIES: %w", err)
	}
	if cfg.RASRetries < 0 || cfg.RASRetries > 10 {
		return nil, fmt.Errorf("RM_RAS_RETRIES: значение %d вне допустимого диапазона 0-10", cfg.RASRetries)
	}

	// RM_RAS_BACKOFF — начальная задержка backoff (по умолчанию 200ms)
	cfg.RASBackoff, err = getEnvDuration("RM_RAS_BACKOFF", 200*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("RM_RAS_BACKOFF: %w", err)
	}

	// --- JWT ---

	// RM_JWT_JWKS_URL — JWKS endpoint (пусто — JWT отключён)
	cfg.JWTJWKSURL = getEnvDefault("RM_JWT_JWKS_URL", "")

	// RM_JWT_ISSUER — ожидаемый issuer (обязателен, если задан JWKS URL)
	cfg.JWTIssuer = getEnvDefault("RM_JWT_ISSUER", "")
	if cfg.JWTJWKSURL != "" && cfg.JWTIssuer == "" {
		return nil, fmt.Errorf("RM_JWT_ISSUER: обязателен при заданном RM_JWT_JWKS_URL")
	}

	// RM_JWT_ROLES_CLAIM — claim для ролей (по умолчанию roles)
	cfg.JWTRolesClaim = getEnvDefault("RM_JWT_ROLES_CLAIM", "roles")

	// --- Локальная аутентификация UI ---

	// RM_ADMIN_USER / RM_ADMIN_PASSWORD — учётные данные консоли
	// (пусто — вход без авторизации, как в локальной установке)
	cfg.AdminUser = getEnvDefault("RM_ADMIN_USER", "")
	cfg.AdminPassword = getEnvDefault("RM_ADMIN_PASSWORD", "")
	if cfg.AdminUser != "" && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("RM_ADMIN_PASSWORD: обязателен при заданном RM_ADMIN_USER")
	}

	// RM_SESSION_SECRET — ключ шифрования cookie сессии UI (опционально)
	cfg.SessionSecret = getEnvDefault("RM_SESSION_SECRET", "")

	// --- Мониторинг зависимостей ---

	// RM_DEPHEALTH_GROUP — группа topologymetrics (по умолчанию raspyman)
	cfg.DephealthGroup = getEnvDefault("RM_DEPHEALTH_GROUP", "raspyman")

	// RM_DEPHEALTH_CHECK_INTERVAL — интервал проверки RAS (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("RM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// RM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("RM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// AuthEnabled сообщает, включена ли локальная аутентификация UI.
func (c *Config) AuthEnabled() bool {
	return c.AdminUser != ""
}

// JWTEnabled сообщает, включена ли JWT-аутентификация API.
func (c *Config) JWTEnabled() bool {
	return c.JWTJWKSURL != ""
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
