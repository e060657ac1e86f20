// Package metrics содержит Prometheus-метрики консоли.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aircon_console"

// Metrics хранит все метрики консоли.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	GatewayRequests *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec
	StaleResponses  *prometheus.CounterVec
	ForcedLogouts   prometheus.Counter
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of console HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Console HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GatewayRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_requests_total",
				Help:      "Total number of calls to the remote API",
			},
			[]string{"method", "resource", "code"}, // code=0, ответа не было
		),
		GatewayDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gateway_request_duration_seconds",
				Help:      "Remote API call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "resource"},
		),
		StaleResponses: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_responses_total",
				Help:      "List responses discarded because a newer request was issued",
			},
			[]string{"view"},
		),
		ForcedLogouts: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forced_logouts_total",
				Help:      "Sessions cleared after the remote API rejected the token",
			},
		),
	}
}

// ObserveRequest учитывает один вызов удалённого API. Реализует gateway.Observer.
func (m *Metrics) ObserveRequest(method, resource string, status int, elapsed time.Duration) {
	m.GatewayRequests.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	m.GatewayDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// ObserveHTTP учитывает один запрос к консоли.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// StaleResponse учитывает отброшенный устаревший ответ списка.
func (m *Metrics) StaleResponse(view string) {
	m.StaleResponses.WithLabelValues(view).Inc()
}

// ForcedLogout учитывает принудительный выход после отказа в авторизации.
func (m *Metrics) ForcedLogout() {
	m.ForcedLogouts.Inc()
}
