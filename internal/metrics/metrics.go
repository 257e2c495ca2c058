package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	global *Metrics
	once   sync.Once
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CacheEventsTotal    *prometheus.CounterVec
	WSClients           prometheus.Gauge
	ImportsTotal        *prometheus.CounterVec
}

// Default registers the collectors on the default registry the first time it is called.
func Default() *Metrics {
	once.Do(func() {
		global = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "jobtrack_http_requests_total",
					Help: "HTTP requests by method, route template and status code",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "jobtrack_http_request_duration_seconds",
					Help:    "HTTP request latency by method and route template",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			CacheEventsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "jobtrack_cache_events_total",
					Help: "Cache lookups by result",
				},
				[]string{"result"}, // hit, miss, error, bypass
			),
			WSClients: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "jobtrack_ws_clients",
				Help: "Connected websocket clients",
			}),
			ImportsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "jobtrack_imports_total",
					Help: "Job posting imports by outcome",
				},
				[]string{"result"}, // ok, headless, empty, error
			),
		}
	})
	return global
}

func (m *Metrics) CacheEvent(result string) {
	if m == nil {
		return
	}
	m.CacheEventsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Import(result string) {
	if m == nil {
		return
	}
	m.ImportsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) SetWSClients(n int) {
	if m == nil {
		return
	}
	m.WSClients.Set(float64(n))
}
