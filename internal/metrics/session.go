package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics records storefront session activity.
type SessionMetrics struct {
	itemsAdded   *prometheus.CounterVec
	itemsRemoved prometheus.Counter
	transitions  *prometheus.CounterVec
	dispatches   *prometheus.CounterVec
	orderTotal   prometheus.Histogram
}

// NewSessionMetrics registers the session metrics on the provided registerer.
// A nil registerer yields a recorder that drops everything.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	if reg == nil {
		return &SessionMetrics{}
	}
	itemsAdded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hamper_cart_items_added_total",
		Help: "Cart lines added, by hamper kind.",
	}, []string{"kind"})
	itemsRemoved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hamper_cart_items_removed_total",
		Help: "Cart lines removed.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hamper_step_transitions_total",
		Help: "Accepted step changes, by flow and target step.",
	}, []string{"flow", "step"})
	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hamper_dispatches_total",
		Help: "Messages handed to the chat channel, by message kind.",
	}, []string{"message"})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hamper_order_total_rupees",
		Help:    "Cart total at order submission.",
		Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000, 50000},
	})
	reg.MustRegister(itemsAdded, itemsRemoved, transitions, dispatches, orderTotal)
	return &SessionMetrics{
		itemsAdded:   itemsAdded,
		itemsRemoved: itemsRemoved,
		transitions:  transitions,
		dispatches:   dispatches,
		orderTotal:   orderTotal,
	}
}

func (m *SessionMetrics) IncItemAdded(kind string) {
	if m == nil || m.itemsAdded == nil {
		return
	}
	m.itemsAdded.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *SessionMetrics) IncItemRemoved() {
	if m == nil || m.itemsRemoved == nil {
		return
	}
	m.itemsRemoved.Inc()
}

// IncTransition counts an accepted move of flow to step.
func (m *SessionMetrics) IncTransition(flow, step string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(flow), normalizeLabel(step)).Inc()
}

func (m *SessionMetrics) IncDispatch(message string) {
	if m == nil || m.dispatches == nil {
		return
	}
	m.dispatches.WithLabelValues(normalizeLabel(message)).Inc()
}

func (m *SessionMetrics) ObserveOrderTotal(rupees float64) {
	if m == nil || m.orderTotal == nil {
		return
	}
	m.orderTotal.Observe(rupees)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
