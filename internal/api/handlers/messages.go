// messages.go — отправка мгновенных сообщений через консоль.
package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
)

// sendMessageRequest — тело POST /api/v1/messages.
type sendMessageRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// SendMessage — POST /api/v1/messages.
// Отправляет мгновенное сообщение от имени указанного пользователя.
func (h *APIHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.messages.Send(r.Context(), req.From, req.To, req.Text); err != nil {
		h.writeServiceError(w, "SendMessage", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
