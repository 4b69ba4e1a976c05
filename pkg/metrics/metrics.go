package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jumpa_withdrawal_back/models"
)

type Registry struct {
	registry        *prometheus.Registry
	sessionsTotal   *prometheus.CounterVec
	pinTotal        *prometheus.CounterVec
	payoutsTotal    *prometheus.CounterVec
	dispatchesTotal *prometheus.CounterVec
	undispatched    prometheus.Gauge
}

func New() *Registry {
	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "withdrawal_sessions_total",
		Help: "Withdrawal sessions by how they ended",
	}, []string{"outcome"})

	pins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "withdrawal_pin_attempts_total",
		Help: "PIN submissions by verdict",
	}, []string{"result"})

	payouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "withdrawal_payout_initiations_total",
		Help: "Payment widget initiations",
	}, []string{"status"})

	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "withdrawal_dispatches_total",
		Help: "Chain transfers by route and status",
	}, []string{"chain", "currency", "status"})

	undispatched := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "withdrawal_undispatched",
		Help: "Recorded payouts without a dispatch outcome at last reconcile",
	})

	r := prometheus.NewRegistry()
	r.MustRegister(sessions, pins, payouts, dispatches, undispatched)

	return &Registry{
		registry:        r,
		sessionsTotal:   sessions,
		pinTotal:        pins,
		payoutsTotal:    payouts,
		dispatchesTotal: dispatches,
		undispatched:    undispatched,
	}
}

func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// A nil *Registry is a no-op so callers need not check.

func (m *Registry) IncSession(outcome string) {
	if m == nil {
		return
	}
	m.sessionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Registry) IncPin(result string) {
	if m == nil {
		return
	}
	m.pinTotal.WithLabelValues(result).Inc()
}

func (m *Registry) IncPayout(status string) {
	if m == nil {
		return
	}
	m.payoutsTotal.WithLabelValues(status).Inc()
}

func (m *Registry) IncDispatch(chain models.Chain, currency models.Currency, ok bool) {
	if m == nil {
		return
	}
	status := "failed"
	if ok {
		status = "success"
	}
	m.dispatchesTotal.WithLabelValues(string(chain), string(currency), status).Inc()
}

func (m *Registry) SetUndispatched(n int) {
	if m == nil {
		return
	}
	m.undispatched.Set(float64(n))
}
