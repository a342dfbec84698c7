// metrics.go — Prometheus-метрики исходящих вызовов к RAS.
package rasclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Итоги вызова для лейбла outcome.
const (
	outcomeOK        = "ok"
	outcomeTransport = "transport"
)

// rasRequestsTotal — счётчик исходящих запросов к RAS Management API.
// outcome: ok, transport, validation, not_found, auth.
var rasRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rm_ras_requests_total",
		Help: "Количество исходящих запросов к RAS Management API",
	},
	[]string{"operation", "outcome"},
)

// observeRequest фиксирует итог одного вызова RAS.
func observeRequest(operation, outcome string) {
	rasRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
