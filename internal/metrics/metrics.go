// Package metrics exposes Prometheus collectors for the agentcost daemon.
//
// Metrics:
//   - agentcost_estimates_total: estimates served, by mode
//   - agentcost_cost_per_request_usd: estimated per-request cost (histogram)
//   - agentcost_monthly_cost_usd: last estimated monthly cost, by provider and model
//   - agentcost_catalog_reloads_total: catalog reloads, by result
//   - agentcost_comparisons_pruned_total: comparison entries removed by retention
//   - agentcost_http_requests_total: API requests, by route and status code
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agentcost"

// Estimate modes.
const (
	ModeDetailed = "detailed"
	ModeSimple   = "simple"
)

// Metrics holds the daemon's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	estimates         *prometheus.CounterVec
	costPerRequest    *prometheus.HistogramVec
	monthlyCost       *prometheus.GaugeVec
	catalogReloads    *prometheus.CounterVec
	comparisonsPruned prometheus.Counter
	httpRequests      *prometheus.CounterVec
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		estimates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimates_total",
				Help:      "Cost estimates served, by input mode",
			},
			[]string{"mode"},
		),

		costPerRequest: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cost_per_request_usd",
				Help:      "Estimated cost per request in USD",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"provider", "model"},
		),

		monthlyCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "monthly_cost_usd",
				Help:      "Most recent estimated monthly cost in USD, including safety margin",
			},
			[]string{"provider", "model"},
		),

		catalogReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Catalog reload attempts, by result",
			},
			[]string{"result"},
		),

		comparisonsPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "comparisons_pruned_total",
				Help:      "Comparison entries removed by the retention scheduler",
			},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "API requests, by route and status code",
			},
			[]string{"route", "code"},
		),
	}

	m.registry.MustRegister(
		m.estimates,
		m.costPerRequest,
		m.monthlyCost,
		m.catalogReloads,
		m.comparisonsPruned,
		m.httpRequests,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordEstimate records one served estimate.
func (m *Metrics) RecordEstimate(mode, provider, model string, costPerRequest, monthlyUSD float64) {
	m.estimates.WithLabelValues(mode).Inc()
	m.costPerRequest.WithLabelValues(provider, model).Observe(costPerRequest)
	m.monthlyCost.WithLabelValues(provider, model).Set(monthlyUSD)
}

// RecordCatalogReload records a reload attempt.
func (m *Metrics) RecordCatalogReload(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.catalogReloads.WithLabelValues(result).Inc()
}

// RecordPruned adds n pruned comparison entries.
func (m *Metrics) RecordPruned(n int) {
	if n <= 0 {
		return
	}
	m.comparisonsPruned.Add(float64(n))
}

// RecordHTTPRequest counts one API request.
func (m *Metrics) RecordHTTPRequest(route string, code int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
