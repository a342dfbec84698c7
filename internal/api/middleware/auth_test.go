package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// testKeyID — идентификатор ключа для тестов.
const testKeyID = "test-key-rm"

// testIssuer — issuer тестовых токенов.
const testIssuer = "https://idp.test/realms/ras"

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// generateTestKey генерирует RSA ключ для тестов.
func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

// buildJWKSetJSON строит JWKS JSON из RSA публичного ключа.
func buildJWKSetJSON(pub *rsa.PublicKey, kid string) json.RawMessage {
	nB64 := base64.RawURLEncoding.EncodeToString(pub.N.Bytes())
	eB64 := base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes())

	jwks := map[string]any{
		"keys": []map[string]any{
			{
				"kty": "RSA",
				"kid": kid,
				"use": "sig",
				"alg": "RS256",
				"n":   nB64,
				"e":   eB64,
			},
		},
	}

	data, _ := json.Marshal(jwks)
	return data
}

// newTestJWTAuth создаёт JWTAuth для тестов с mock JWKS.
func newTestJWTAuth(t *testing.T, key *rsa.PrivateKey, rolesClaim string) *JWTAuth {
	t.Helper()
	kf, err := keyfunc.NewJWKSetJSON(buildJWKSetJSON(&key.PublicKey, testKeyID))
	if err != nil {
		t.Fatalf("не удалось создать keyfunc: %v", err)
	}
	return NewJWTAuthWithKeyfunc(kf, testIssuer, rolesClaim, testLogger())
}

// generateToken генерирует подписанный JWT с указанными claims.
func generateToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	tokenStr, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return tokenStr
}

// baseClaims возвращает валидный набор claims.
func baseClaims(roles []string) jwt.MapClaims {
	claims := jwt.MapClaims{
		"sub":                "user-1",
		"preferred_username": "admin",
		"iss":                testIssuer,
		"exp":                jwt.NewNumericDate(time.Now().Add(time.Hour)),
		"iat":                jwt.NewNumericDate(time.Now()),
	}
	if roles != nil {
		claims["roles"] = roles
	}
	return claims
}

// runJWT прогоняет запрос через JWT middleware и возвращает ответ
// вместе с claims, увиденными downstream handler'ом.
func runJWT(jwtAuth *JWTAuth, authHeader string) (*httptest.ResponseRecorder, *AuthClaims) {
	var seen *AuthClaims
	handler := jwtAuth.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestJWTAuth_ValidToken(t *testing.T) {
	key := generateTestKey(t)
	jwtAuth := newTestJWTAuth(t, key, "roles")
	token := generateToken(t, key, baseClaims([]string{"admin"}))

	rec, claims := runJWT(jwtAuth, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200; тело: %s", rec.Code, rec.Body.String())
	}
	if claims == nil {
		t.Fatal("claims не попали в контекст")
	}
	if claims.Subject != "user-1" || claims.PreferredUsername != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.HasRole(RoleAdmin) || !claims.CanWrite() {
		t.Errorf("роль admin не извлечена: %+v", claims.Roles)
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	jwtAuth := newTestJWTAuth(t, generateTestKey(t), "roles")

	rec, _ := runJWT(jwtAuth, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидается 401", rec.Code)
	}
}

func TestJWTAuth_NotBearer(t *testing.T) {
	jwtAuth := newTestJWTAuth(t, generateTestKey(t), "roles")

	rec, _ := runJWT(jwtAuth, "Basic YWRtaW46c2VjcmV0")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидается 401", rec.Code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	key := generateTestKey(t)
	jwtAuth := newTestJWTAuth(t, key, "roles")

	claims := baseClaims([]string{"admin"})
	claims["exp"] = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := generateToken(t, key, claims)

	rec, _ := runJWT(jwtAuth, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидается 401 для истёкшего токена", rec.Code)
	}
}

func TestJWTAuth_WrongIssuer(t *testing.T) {
	key := generateTestKey(t)
	jwtAuth := newTestJWTAuth(t, key, "roles")

	claims := baseClaims([]string{"admin"})
	claims["iss"] = "https://evil.test"
	token := generateToken(t, key, claims)

	rec, _ := runJWT(jwtAuth, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидается 401 для чужого issuer", rec.Code)
	}
}

func TestJWTAuth_WrongKey(t *testing.T) {
	jwtAuth := newTestJWTAuth(t, generateTestKey(t), "roles")
	otherKey := generateTestKey(t)
	token := generateToken(t, otherKey, baseClaims([]string{"admin"}))

	rec, _ := runJWT(jwtAuth, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидается 401 для чужой подписи", rec.Code)
	}
}

func TestJWTAuth_NestedRolesClaim(t *testing.T) {
	key := generateTestKey(t)
	// Keycloak-стиль: роли в realm_access.roles
	jwtAuth := newTestJWTAuth(t, key, "realm_access.roles")

	claims := baseClaims(nil)
	claims["realm_access"] = map[string]any{
		"roles": []string{"readonly"},
	}
	token := generateToken(t, key, claims)

	rec, got := runJWT(jwtAuth, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	if got == nil || !got.HasRole(RoleReadonly) {
		t.Errorf("вложенный claim с ролями не извлечён: %+v", got)
	}
	if got.CanWrite() {
		t.Error("readonly не должен иметь право записи")
	}
}

// runRequireWriter прогоняет запрос через RequireWriter с указанными claims.
func runRequireWriter(method string, claims *AuthClaims) *httptest.ResponseRecorder {
	handler := RequireWriter()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/v1/users", nil)
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), ContextKeyClaims, claims))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireWriter(t *testing.T) {
	adminClaims := &AuthClaims{Roles: []string{RoleAdmin}}
	readonlyClaims := &AuthClaims{Roles: []string{RoleReadonly}}

	tests := []struct {
		name   string
		method string
		claims *AuthClaims
		want   int
	}{
		{"GET без claims", http.MethodGet, nil, http.StatusOK},
		{"GET readonly", http.MethodGet, readonlyClaims, http.StatusOK},
		{"POST без claims (JWT отключён)", http.MethodPost, nil, http.StatusOK},
		{"POST admin", http.MethodPost, adminClaims, http.StatusOK},
		{"POST readonly", http.MethodPost, readonlyClaims, http.StatusForbidden},
		{"DELETE readonly", http.MethodDelete, readonlyClaims, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runRequireWriter(tt.method, tt.claims)
			if rec.Code != tt.want {
				t.Errorf("статус = %d, ожидается %d", rec.Code, tt.want)
			}
		})
	}
}
