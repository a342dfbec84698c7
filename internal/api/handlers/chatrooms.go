// chatrooms.go — обработчики /api/v1/chat/rooms endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
)

// createChatRoomRequest — тело POST /api/v1/chat/rooms.
type createChatRoomRequest struct {
	Name string `json:"name"`
}

// ListChatRooms — GET /api/v1/chat/rooms.
func (h *APIHandler) ListChatRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.chatRooms.List(r.Context())
	if err != nil {
		h.writeServiceError(w, "ListChatRooms", err)
		return
	}

	writeJSON(w, http.StatusOK, rooms)
}

// CreateChatRoom — POST /api/v1/chat/rooms.
func (h *APIHandler) CreateChatRoom(w http.ResponseWriter, r *http.Request) {
	var req createChatRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.chatRooms.Create(r.Context(), req.Name); err != nil {
		h.writeServiceError(w, "CreateChatRoom", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DeleteChatRoom — DELETE /api/v1/chat/rooms/{name}.
func (h *APIHandler) DeleteChatRoom(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.chatRooms.Delete(r.Context(), name); err != nil {
		h.writeServiceError(w, "DeleteChatRoom", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
