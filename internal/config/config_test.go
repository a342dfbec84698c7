package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Пустое окружение — все значения по умолчанию
	setEnvs(t, map[string]string{
		"RM_PORT":         "",
		"RM_LOG_LEVEL":    "",
		"RM_LOG_FORMAT":   "",
		"RM_RAS_URL":      "",
		"RM_RAS_TIMEOUT":  "",
		"RM_RAS_RETRIES":  "",
		"RM_RAS_BACKOFF":  "",
		"RM_JWT_JWKS_URL": "",
		"RM_ADMIN_USER":   "",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, ожидается 8000", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.RASURL != "http://localhost:5000" {
		t.Errorf("RASURL = %q, ожидается http://localhost:5000", cfg.RASURL)
	}
	if cfg.RASTimeout != 10*time.Second {
		t.Errorf("RASTimeout = %v, ожидается 10s", cfg.RASTimeout)
	}
	if cfg.RASRetries != 3 {
		t.Errorf("RASRetries = %d, ожидается 3", cfg.RASRetries)
	}
	if cfg.RASBackoff != 200*time.Millisecond {
		t.Errorf("RASBackoff = %v, ожидается 200ms", cfg.RASBackoff)
	}
	if cfg.DephealthGroup != "raspyman" {
		t.Errorf("DephealthGroup = %q, ожидается raspyman", cfg.DephealthGroup)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true без RM_ADMIN_USER")
	}
	if cfg.JWTEnabled() {
		t.Error("JWTEnabled() = true без RM_JWT_JWKS_URL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setEnvs(t, map[string]string{
		"RM_PORT":        "8005",
		"RM_LOG_LEVEL":   "debug",
		"RM_LOG_FORMAT":  "text",
		"RM_RAS_URL":     "http://ras.lan:5000/",
		"RM_RAS_TIMEOUT": "3s",
		"RM_RAS_RETRIES": "5",
		"RM_RAS_BACKOFF": "50ms",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8005 {
		t.Errorf("Port = %d, ожидается 8005", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	// Завершающий слэш убирается
	if cfg.RASURL != "http://ras.lan:5000" {
		t.Errorf("RASURL = %q, ожидается без завершающего слэша", cfg.RASURL)
	}
	if cfg.RASTimeout != 3*time.Second {
		t.Errorf("RASTimeout = %v, ожидается 3s", cfg.RASTimeout)
	}
	if cfg.RASRetries != 5 {
		t.Errorf("RASRetries = %d, ожидается 5", cfg.RASRetries)
	}
	if cfg.RASBackoff != 50*time.Millisecond {
		t.Errorf("RASBackoff = %v, ожидается 50ms", cfg.RASBackoff)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		envs map[string]string
	}{
		{"порт вне диапазона снизу", map[string]string{"RM_PORT": "7999"}},
		{"порт вне диапазона сверху", map[string]string{"RM_PORT": "8010"}},
		{"порт не число", map[string]string{"RM_PORT": "восемь тысяч"}},
		{"недопустимый уровень логов", map[string]string{"RM_LOG_LEVEL": "verbose"}},
		{"недопустимый формат логов", map[string]string{"RM_LOG_FORMAT": "xml"}},
		{"retries вне диапазона", map[string]string{"RM_RAS_RETRIES": "11"}},
		{"отрицательные retries", map[string]string{"RM_RAS_RETRIES": "-1"}},
		{"некорректный таймаут", map[string]string{"RM_RAS_TIMEOUT": "десять секунд"}},
		{"JWKS без issuer", map[string]string{"RM_JWT_JWKS_URL": "https://idp.lan/jwks"}},
		{"admin user без пароля", map[string]string{"RM_ADMIN_USER": "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvs(t, tt.envs)
			if _, err := Load(); err == nil {
				t.Error("Load() не вернул ошибку")
			}
		})
	}
}

func TestLoad_JWTAndAuthEnabled(t *testing.T) {
	setEnvs(t, map[string]string{
		"RM_JWT_JWKS_URL":   "https://idp.lan/realms/ras/jwks",
		"RM_JWT_ISSUER":     "https://idp.lan/realms/ras",
		"RM_ADMIN_USER":     "admin",
		"RM_ADMIN_PASSWORD": "secret",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if !cfg.JWTEnabled() {
		t.Error("JWTEnabled() = false при заданном RM_JWT_JWKS_URL")
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled() = false при заданном RM_ADMIN_USER")
	}
	if cfg.JWTRolesClaim != "roles" {
		t.Errorf("JWTRolesClaim = %q, ожидается roles", cfg.JWTRolesClaim)
	}
}
