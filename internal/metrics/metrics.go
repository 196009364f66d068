// Package metrics exposes Prometheus collectors for the order decoding
// pipeline. The gateway initializes them once at startup; the package-level
// recorders are safe to call before Init and do nothing until then.
package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kulaginds/rdp-orders/internal/orders"
)

// Config controls collector registration.
type Config struct {
	// Registry receives the collectors. Nil means the default registerer.
	Registry prometheus.Registerer

	// Namespace prefixes every metric name. Defaults to "rdporders".
	Namespace string
}

type metrics struct {
	ordersDecoded  *prometheus.CounterVec
	decodeErrors   *prometheus.CounterVec
	updatesTotal   prometheus.Counter
	updateBytes    prometheus.Counter
	activeSessions prometheus.Gauge
}

func newMetrics(config Config) *metrics {
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if config.Namespace == "" {
		config.Namespace = "rdporders"
	}

	factory := promauto.With(config.Registry)

	return &metrics{
		ordersDecoded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "orders_decoded_total",
			Help:      "Drawing orders decoded, by order class.",
		}, []string{"class"}),
		decodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "decode_errors_total",
			Help:      "Order decode failures, by reason.",
		}, []string{"reason"}),
		updatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "updates_processed_total",
			Help:      "Graphics updates processed.",
		}),
		updateBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "update_bytes_total",
			Help:      "Bytes of graphics update payload processed.",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "active_sessions",
			Help:      "WebSocket sessions currently decoding.",
		}),
	}
}

var (
	globalMetrics *metrics
	globalMu      sync.Mutex
	initOnce      sync.Once
)

// Init registers the collectors. Only the first call takes effect, so the
// server entry point and tests can both call it without double-register
// panics from the registry.
func Init(config Config) {
	initOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()

		globalMetrics = newMetrics(config)
	})
}

// RecordOrderDecoded counts one decoded order of the given class
// (primary, secondary or altsec).
func RecordOrderDecoded(class string) {
	if globalMetrics == nil {
		return
	}

	globalMetrics.ordersDecoded.WithLabelValues(class).Inc()
}

// RecordDecodeError counts one decode failure under the given reason.
func RecordDecodeError(reason string) {
	if globalMetrics == nil {
		return
	}

	globalMetrics.decodeErrors.WithLabelValues(reason).Inc()
}

// RecordUpdate counts one processed graphics update of size bytes.
func RecordUpdate(size int) {
	if globalMetrics == nil {
		return
	}

	globalMetrics.updatesTotal.Inc()
	globalMetrics.updateBytes.Add(float64(size))
}

// SessionStarted bumps the active session gauge.
func SessionStarted() {
	if globalMetrics == nil {
		return
	}

	globalMetrics.activeSessions.Inc()
}

// SessionEnded drops the active session gauge.
func SessionEnded() {
	if globalMetrics == nil {
		return
	}

	globalMetrics.activeSessions.Dec()
}

// ErrorReason maps a decode error to a low-cardinality label value.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, orders.ErrShortStream):
		return "short_stream"
	case errors.Is(err, orders.ErrInvalidOrderType):
		return "invalid_order_type"
	case errors.Is(err, orders.ErrBoundExceeded):
		return "bound_exceeded"
	case errors.Is(err, orders.ErrInvalidEnumerant):
		return "invalid_enumerant"
	case errors.Is(err, orders.ErrOrderNotNegotiated):
		return "not_negotiated"
	case errors.Is(err, orders.ErrFrameOverrun):
		return "frame_overrun"
	case errors.Is(err, orders.ErrValueOutOfRange):
		return "value_out_of_range"
	default:
		return "other"
	}
}
