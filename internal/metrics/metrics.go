// Package metrics exposes alertdeck's operational counters in Prometheus
// exposition format via the VictoriaMetrics metrics library.
package metrics

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// IncAlertCreated counts alert creations by severity.
func IncAlertCreated(severity string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`alertdeck_alerts_created_total{severity=%q}`, severity)).Inc()
}

// IncDeliveryAttempt counts delivery fan-out attempts per channel.
func IncDeliveryAttempt(channel string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`alertdeck_delivery_attempts_total{channel=%q}`, channel)).Inc()
}

// IncDeliverySuccess counts delivered (channel, user) pairs per channel.
func IncDeliverySuccess(channel string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`alertdeck_delivery_success_total{channel=%q}`, channel)).Inc()
}

// IncDeliveryFailure counts failed (channel, user) pairs per channel.
func IncDeliveryFailure(channel string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`alertdeck_delivery_failures_total{channel=%q}`, channel)).Inc()
}

// IncUserQuery counts alert-list queries served to end users.
func IncUserQuery() {
	metrics.GetOrCreateCounter(`alertdeck_user_queries_total`).Inc()
}

// WritePrometheus dumps all registered metrics, including process metrics.
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, true)
}
