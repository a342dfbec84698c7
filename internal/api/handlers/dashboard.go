// dashboard.go — сводная статистика для главной страницы консоли.
package handlers

import (
	"net/http"
)

// GetDashboard — GET /api/v1/dashboard.
// Возвращает агрегированную статистику RAS. Недоступность отдельных
// метрик не считается ошибкой: такие значения приходят как -1.
func (h *APIHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats := h.dashboard.Stats(r.Context())
	writeJSON(w, http.StatusOK, stats)
}
