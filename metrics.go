package slackhook

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// deliveryMetrics instruments a WebhookTransport. A nil *deliveryMetrics is
// valid and turns every method into a no-op, so the transport never has to
// branch on whether metrics were requested.
type deliveryMetrics struct {
	deliveries *prometheus.CounterVec
	inFlight   prometheus.Gauge
}

func newDeliveryMetrics(reg prometheus.Registerer) *deliveryMetrics {
	m := &deliveryMetrics{
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slackhook_deliveries_total",
			Help: "Webhook delivery attempts by outcome.",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slackhook_in_flight_deliveries",
			Help: "Deliveries currently outstanding.",
		}),
	}

	reg.MustRegister(m.deliveries, m.inFlight)

	return m
}

func (m *deliveryMetrics) observe(outcome string) {
	if m == nil {
		return
	}

	m.deliveries.WithLabelValues(outcome).Inc()
}

func (m *deliveryMetrics) trackInFlight(delta float64) {
	if m == nil {
		return
	}

	m.inFlight.Add(delta)
}
