// users.go — обработчики /api/v1/users endpoints.
// Управление учётными записями RAS: список, детали, создание,
// смена статуса, сброс пароля, удаление.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
)

// createUserRequest — тело POST /api/v1/users.
type createUserRequest struct {
	ScreenName string `json:"screen_name"`
	Password   string `json:"password"`
}

// updateStatusRequest — тело PATCH /api/v1/users/{screenName}/status.
// Пустой статус снимает блокировку.
type updateStatusRequest struct {
	SuspendedStatus string `json:"suspended_status"`
}

// resetPasswordRequest — тело PUT /api/v1/users/{screenName}/password.
type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ListUsers — GET /api/v1/users.
func (h *APIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeServiceError(w, "ListUsers", err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetUser — GET /api/v1/users/{screenName}.
func (h *APIHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	screenName := chi.URLParam(r, "screenName")

	user, err := h.users.Get(r.Context(), screenName)
	if err != nil {
		h.writeServiceError(w, "GetUser", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// CreateUser — POST /api/v1/users.
func (h *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.users.Create(r.Context(), req.ScreenName, req.Password); err != nil {
		h.writeServiceError(w, "CreateUser", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// UpdateUserStatus — PATCH /api/v1/users/{screenName}/status.
func (h *APIHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	screenName := chi.URLParam(r, "screenName")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.users.SetStatus(r.Context(), screenName, req.SuspendedStatus); err != nil {
		h.writeServiceError(w, "UpdateUserStatus", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetUserPassword — PUT /api/v1/users/{screenName}/password.
func (h *APIHandler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	screenName := chi.URLParam(r, "screenName")

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.users.ResetPassword(r.Context(), screenName, req.Password); err != nil {
		h.writeServiceError(w, "ResetUserPassword", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser — DELETE /api/v1/users/{screenName}.
// Повторное удаление несуществующей записи — 404.
func (h *APIHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	screenName := chi.URLParam(r, "screenName")

	if err := h.users.Delete(r.Context(), screenName); err != nil {
		h.writeServiceError(w, "DeleteUser", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUserSessions — GET /api/v1/users/{screenName}/sessions.
func (h *APIHandler) ListUserSessions(w http.ResponseWriter, r *http.Request) {
	screenName := chi.URLParam(r, "screenName")

	sessions, err := h.sessions.ListForUser(r.Context(), screenName)
	if err != nil {
		h.writeServiceError(w, "ListUserSessions", err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}
