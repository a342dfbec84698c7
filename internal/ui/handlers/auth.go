// Пакет handlers — HTTP-обработчики web-консоли.
// auth.go — локальный вход по логину/паролю администратора.
package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
	"github.com/ukozi/raspyman/internal/ui/auth"
)

// Время жизни UI-сессии после входа.
const sessionTTL = 24 * time.Hour

// AuthHandler — обработчики аутентификации консоли.
type AuthHandler struct {
	sessionManager *auth.SessionManager
	logger         *slog.Logger
	// adminUser / adminPassword — учётные данные администратора из конфигурации.
	adminUser     string
	adminPassword string
}

// NewAuthHandler создаёт новый AuthHandler.
func NewAuthHandler(
	sessionManager *auth.SessionManager,
	adminUser, adminPassword string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessionManager: sessionManager,
		logger:         logger.With(slog.String("component", "ui_auth")),
		adminUser:      adminUser,
		adminPassword:  adminPassword,
	}
}

// loginRequest — тело POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse — ответ успешного входа.
type loginResponse struct {
	Username string `json:"username"`
}

// HandleLogin — POST /login.
// Проверяет учётные данные и устанавливает зашифрованный session cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if !h.credentialsValid(req.Username, req.Password) {
		h.logger.Warn("Неудачная попытка входа",
			slog.String("username", req.Username),
			slog.String("remote_addr", r.RemoteAddr),
		)
		apierrors.Unauthorized(w, "Неверный логин или пароль")
		return
	}

	session := &auth.SessionData{
		Username:  req.Username,
		ExpiresAt: time.Now().Add(sessionTTL).Unix(),
	}
	if err := h.sessionManager.SetSessionCookie(w, session); err != nil {
		h.logger.Error("Ошибка установки session cookie",
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка консоли")
		return
	}

	h.logger.Info("Администратор вошёл в консоль",
		slog.String("username", req.Username),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(loginResponse{Username: req.Username})
}

// HandleLogout — POST /logout. Удаляет session cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessionManager.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleWhoami — GET /whoami.
// Возвращает имя текущего администратора или 401 при отсутствии сессии.
func (h *AuthHandler) HandleWhoami(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionManager.GetSessionFromRequest(r)
	if err != nil || session == nil || session.IsExpired() {
		apierrors.Unauthorized(w, "Сессия отсутствует или истекла")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(loginResponse{Username: session.Username})
}

// credentialsValid сравнивает учётные данные константным временем.
func (h *AuthHandler) credentialsValid(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPassword)) == 1
	return userOK && passOK
}
