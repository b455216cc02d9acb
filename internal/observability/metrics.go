package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roombot"

// Metrics groups all Prometheus instruments used by the bot.
type Metrics struct {
	registry *prometheus.Registry

	MessagesReceived  *prometheus.CounterVec
	Completions       *prometheus.CounterVec
	CompletionLatency prometheus.Histogram
	Broadcasts        *prometheus.CounterVec
	Participants      prometheus.Gauge
}

// NewMetrics registers the instruments on a private registry so several
// instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		MessagesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Inbound messages by outcome.",
		}, []string{"outcome"}),
		Completions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Completion calls by status.",
		}, []string{"status"}),
		CompletionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_latency_ms",
			Help:      "Completion latency in milliseconds.",
			Buckets:   []float64{250, 500, 1000, 2000, 4000, 8000, 15000, 30000},
		}),
		Broadcasts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Outbound room messages by status.",
		}, []string{"status"}),
		Participants: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "room_participants",
			Help:      "Remote participants in the room.",
		}),
	}
}

func (m *Metrics) ObserveCompletion(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Completions.WithLabelValues(status).Inc()
	m.CompletionLatency.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
