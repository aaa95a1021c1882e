// Package metrics exposes operational counters and gauges in Prometheus
// format. Gauges read live state from their owners through closures so the
// packages being observed never import this one.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Eliminations      prometheus.Counter
	PayoutsIssued     prometheus.Counter
	PayoutAmountTotal prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Eliminations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_eliminations_total",
			Help: "Players eliminated across all rooms.",
		}),
		PayoutsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_payouts_issued_total",
			Help: "Payout descriptors produced by the wager engine.",
		}),
		PayoutAmountTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_payout_amount_total",
			Help: "Sum of all payout amounts.",
		}),
	}
	reg.MustRegister(m.Eliminations, m.PayoutsIssued, m.PayoutAmountTotal)
	return m
}

// Gauge registers a gauge whose value is read from fn at scrape time.
func (m *Metrics) Gauge(name, help string, fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, fn))
}

// Counter registers a counter whose value is read from fn at scrape time.
// fn must be monotonically non-decreasing.
func (m *Metrics) Counter(name, help string, fn func() float64) {
	m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, fn))
}

// Handler serves the scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
