// sessions.go — обработчики /api/v1/sessions endpoints.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListSessions — GET /api/v1/sessions.
// Сервер без подключённых клиентов — пустой список, не ошибка.
func (h *APIHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		h.writeServiceError(w, "ListSessions", err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// TerminateSession — DELETE /api/v1/sessions/{id}.
// Принудительно отключает AIM/ICQ-клиент.
func (h *APIHandler) TerminateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if err := h.sessions.Terminate(r.Context(), sessionID); err != nil {
		h.writeServiceError(w, "TerminateSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
