// Пакет middleware — HTTP middleware для web-консоли.
// auth.go — проверка UI-сессии (cookie-based).
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
	"github.com/ukozi/raspyman/internal/ui/auth"
)

// contextKey — тип для ключей контекста UI (избегаем коллизий с API middleware).
type contextKey string

const (
	// ContextKeyUISession — данные UI-сессии в контексте запроса.
	ContextKeyUISession contextKey = "ui_session"
)

// UIAuth — middleware для проверки аутентификации пользователей консоли.
// Извлекает сессию из зашифрованного cookie. При отсутствии или истечении
// сессии: JSON 401 для API-запросов, redirect на /login для страниц.
type UIAuth struct {
	sessionManager *auth.SessionManager
	logger         *slog.Logger
	// bearerPassthrough — пропускать запросы с Authorization header
	// дальше по цепочке (их валидирует JWT middleware). Включается
	// только когда JWT-аутентификация настроена.
	bearerPassthrough bool
}

// NewUIAuth создаёт новый UIAuth middleware.
func NewUIAuth(sessionManager *auth.SessionManager, logger *slog.Logger, bearerPassthrough bool) *UIAuth {
	return &UIAuth{
		sessionManager:    sessionManager,
		logger:            logger.With(slog.String("component", "ui_auth_middleware")),
		bearerPassthrough: bearerPassthrough,
	}
}

// Middleware возвращает HTTP middleware для проверки UI-сессии.
// Применяется ко всем маршрутам, кроме /login, /health/*, /metrics, /static/*.
func (ua *UIAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Интеграции с Bearer token валидируются JWT middleware,
			// cookie-сессия им не нужна
			if ua.bearerPassthrough && r.Header.Get("Authorization") != "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := ua.sessionManager.GetSessionFromRequest(r)
			if err != nil {
				ua.logger.Debug("Ошибка чтения UI-сессии",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				// Повреждённый cookie — очищаем
				ua.sessionManager.ClearSessionCookie(w)
				ua.reject(w, r)
				return
			}

			if session == nil || session.IsExpired() {
				ua.reject(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUISession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// reject завершает запрос без сессии: JSON 401 для API, redirect для страниц.
func (ua *UIAuth) reject(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		apierrors.Unauthorized(w, "Требуется вход в консоль")
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// SessionFromContext извлекает UI-сессию из контекста запроса.
// Возвращает nil если сессия отсутствует.
func SessionFromContext(ctx context.Context) *auth.SessionData {
	session, ok := ctx.Value(ContextKeyUISession).(*auth.SessionData)
	if !ok {
		return nil
	}
	return session
}
