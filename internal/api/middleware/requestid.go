// requestid.go — middleware присвоения request ID входящим запросам.
// ID берётся из заголовка X-Request-Id (от API Gateway) или генерируется,
// попадает в контекст запроса и в заголовок ответа.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey — ключ контекста для request ID.
const requestIDKey contextKey = "request_id"

// HeaderRequestID — имя заголовка request ID.
const HeaderRequestID = "X-Request-Id"

// RequestID возвращает middleware, присваивающий каждому запросу ID.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(HeaderRequestID, id)
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext возвращает request ID из контекста
// (пустая строка, если middleware не применялся).
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
