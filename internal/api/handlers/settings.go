// settings.go — управление настройками подключения к RAS.
// Адрес Management API можно переключить на лету, без перезапуска
// консоли. Невалидный адрес отклоняется, прежний сохраняется.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
	"github.com/ukozi/raspyman/internal/rasclient"
)

// backendSettings — представление настроек backend'а.
type backendSettings struct {
	BaseURL string `json:"base_url"`
}

// GetBackendSettings — GET /api/v1/settings/backend.
func (h *APIHandler) GetBackendSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, backendSettings{BaseURL: h.ras.BaseURL()})
}

// UpdateBackendSettings — PUT /api/v1/settings/backend.
func (h *APIHandler) UpdateBackendSettings(w http.ResponseWriter, r *http.Request) {
	var req backendSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.ras.SetBaseURL(req.BaseURL); err != nil {
		var rasErr *rasclient.Error
		if errors.As(err, &rasErr) && rasErr.Kind == rasclient.KindConfig {
			apierrors.ValidationError(w, rasErr.Message)
			return
		}
		h.writeServiceError(w, "UpdateBackendSettings", err)
		return
	}

	h.logger.Info("Адрес RAS Management API изменён",
		"base_url", h.ras.BaseURL(),
	)

	writeJSON(w, http.StatusOK, backendSettings{BaseURL: h.ras.BaseURL()})
}
