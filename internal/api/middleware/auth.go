// auth.go — JWT middleware для аутентификации API консоли.
// Используется при развёртывании за API Gateway: валидирует Bearer token
// по JWKS, извлекает claims и роли (admin, readonly), помещает в контекст.
// Включается конфигурацией RM_JWT_JWKS_URL; без неё API открыт,
// как и Management API самого RAS в локальной установке.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// ContextKeyClaims — извлечённые claims в контексте запроса.
const ContextKeyClaims contextKey = "jwt_claims"

// Роли, которые понимает консоль.
const (
	RoleAdmin    = "admin"
	RoleReadonly = "readonly"
)

// AuthClaims — извлечённые claims из JWT.
// Помещаются в контекст запроса для downstream handlers.
type AuthClaims struct {
	// Subject — sub из JWT.
	Subject string
	// PreferredUsername — preferred_username из JWT.
	PreferredUsername string
	// Roles — роли субъекта.
	Roles []string
}

// HasRole проверяет наличие указанной роли.
func (c *AuthClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanWrite сообщает, разрешены ли субъекту мутирующие операции.
func (c *AuthClaims) CanWrite() bool {
	return c.HasRole(RoleAdmin)
}

// JWTAuth — middleware для JWT-аутентификации через JWKS.
type JWTAuth struct {
	jwks       keyfunc.Keyfunc
	logger     *slog.Logger
	issuer     string
	rolesClaim string
}

// NewJWTAuth создаёт JWT middleware с JWKS.
// jwksURL — URL к JWKS endpoint IdP.
// issuer — ожидаемый issuer JWT.
// rolesClaim — имя claim со списком ролей (RM_JWT_ROLES_CLAIM).
func NewJWTAuth(
	jwksURL string,
	issuer string,
	rolesClaim string,
	logger *slog.Logger,
) (*JWTAuth, error) {
	// JWKS Storage с фоновым обновлением.
	// NoErrorReturnFirstHTTPReq — стартуем даже если IdP ещё недоступен.
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           time.Hour,
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

	return &JWTAuth{
		jwks:       k,
		logger:     logger.With(slog.String("component", "jwt_auth")),
		issuer:     issuer,
		rolesClaim: rolesClaim,
	}, nil
}

// NewJWTAuthWithKeyfunc создаёт JWT middleware с предоставленной keyfunc.
// Используется в тестах для подстановки mock JWKS.
func NewJWTAuthWithKeyfunc(
	kf keyfunc.Keyfunc,
	issuer string,
	rolesClaim string,
	logger *slog.Logger,
) *JWTAuth {
	return &JWTAuth{
		jwks:       kf,
		logger:     logger.With(slog.String("component", "jwt_auth")),
		issuer:     issuer,
		rolesClaim: rolesClaim,
	}
}

// Middleware возвращает HTTP middleware для JWT-аутентификации.
// Извлекает Bearer token, валидирует подпись и issuer, извлекает роли
// и помещает AuthClaims в контекст запроса.
func (j *JWTAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apierrors.Unauthorized(w, "Отсутствует заголовок Authorization")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				apierrors.Unauthorized(w, "Ожидался Bearer token")
				return
			}
			tokenString := parts[1]

			claims, err := j.parseToken(tokenString)
			if err != nil {
				j.logger.Warn("Невалидный JWT",
					slog.String("error", err.Error()),
					slog.String("path", r.URL.Path),
				)
				apierrors.Unauthorized(w, "Невалидный token: "+err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseToken валидирует токен и извлекает AuthClaims.
func (j *JWTAuth) parseToken(tokenString string) (*AuthClaims, error) {
	// Полный разбор в MapClaims: имя claim с ролями конфигурируемо
	raw := jwt.MapClaims{}
	parseOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}),
		jwt.WithLeeway(30 * time.Second),
	}
	if j.issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(j.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, raw, j.jwks.Keyfunc, parseOpts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("токен не прошёл валидацию")
	}

	claims := &AuthClaims{}
	if sub, err := raw.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if username, ok := raw["preferred_username"].(string); ok {
		claims.PreferredUsername = username
	}
	claims.Roles = extractRoles(raw, j.rolesClaim)

	return claims, nil
}

// extractRoles извлекает роли из claim с указанным именем.
// Поддерживает вложенные claims через точку (realm_access.roles).
func extractRoles(raw jwt.MapClaims, claimPath string) []string {
	var current any = map[string]any(raw)
	for _, segment := range strings.Split(claimPath, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[segment]
	}

	items, ok := current.([]any)
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

// ClaimsFromContext возвращает AuthClaims из контекста запроса
// (nil, если JWT middleware не применялся).
func ClaimsFromContext(ctx context.Context) *AuthClaims {
	claims, _ := ctx.Value(ContextKeyClaims).(*AuthClaims)
	return claims
}

// RequireWriter возвращает middleware, пропускающий мутирующие запросы
// (не GET/HEAD) только для субъектов с ролью admin. Применяется после
// Middleware(); без claims в контексте (JWT отключён) доступ открыт.
func RequireWriter() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			claims := ClaimsFromContext(r.Context())
			if claims != nil && !claims.CanWrite() {
				apierrors.Forbidden(w, "Недостаточно прав: требуется роль admin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
