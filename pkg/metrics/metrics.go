package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the storefront collectors. A nil *Metrics records nothing.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	checkouts       *prometheus.CounterVec
	ordersPlaced    prometheus.Counter
	storeRetries    prometheus.Counter
}

// New registers the storefront metrics on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome code.",
	}, []string{"outcome"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders created by checkout.",
	})
	storeRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "store_retries_total",
		Help: "Read calls retried after a transient store error.",
	})
	reg.MustRegister(requestDuration, checkouts, ordersPlaced, storeRetries)
	return &Metrics{
		requestDuration: requestDuration,
		checkouts:       checkouts,
		ordersPlaced:    ordersPlaced,
		storeRetries:    storeRetries,
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveCheckout counts one checkout attempt; outcome is "ok" or an error code.
func (m *Metrics) ObserveCheckout(outcome string, orders int) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
	if orders > 0 {
		m.ordersPlaced.Add(float64(orders))
	}
}

func (m *Metrics) IncStoreRetry() {
	if m == nil || m.storeRetries == nil {
		return
	}
	m.storeRetries.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
