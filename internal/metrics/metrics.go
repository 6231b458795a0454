package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "engagement"

// Toggle outcomes
const (
	OutcomeCreated = "created"
	OutcomeRemoved = "removed"
	OutcomeRace    = "race_lost"
)

type Metrics struct {
	registry             *prometheus.Registry
	notificationsCreated *prometheus.CounterVec
	notificationsSkipped *prometheus.CounterVec
	notificationsFailed  *prometheus.CounterVec
	toggles              *prometheus.CounterVec
}

// New registers the collectors on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		notificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "Notifications persisted, by type.",
		}, []string{"type"}),
		notificationsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_suppressed_total",
			Help:      "Notifications dropped because sender and recipient are the same user.",
		}, []string{"type"}),
		notificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Notification side effects that failed and were swallowed.",
		}, []string{"type"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggles_total",
			Help:      "Toggle operations by store and outcome.",
		}, []string{"store", "outcome"}),
	}
	registry.MustRegister(m.notificationsCreated, m.notificationsSkipped, m.notificationsFailed, m.toggles)
	return m
}

// NewNop returns metrics backed by a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) NotificationCreated(kind string) {
	m.notificationsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) NotificationSuppressed(kind string) {
	m.notificationsSkipped.WithLabelValues(kind).Inc()
}

func (m *Metrics) NotificationFailed(kind string) {
	m.notificationsFailed.WithLabelValues(kind).Inc()
}

func (m *Metrics) Toggle(store, outcome string) {
	m.toggles.WithLabelValues(store, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
