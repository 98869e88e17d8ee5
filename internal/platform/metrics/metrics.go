// Package metrics exposes catalog metrics in Prometheus format.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
)

// Result labels.
const (
	ResultOK          = "ok"
	ResultNotFound    = "not_found"
	ResultInvalid     = "invalid"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

// Catalog records catalog lookups and reloads. A nil *Catalog is a no-op.
type Catalog struct {
	registry *prometheus.Registry

	lookups       *prometheus.CounterVec
	searchResults prometheus.Histogram
	reloads       *prometheus.CounterVec
	reloadSeconds prometheus.Histogram
	entries       prometheus.Gauge
	sections      prometheus.Gauge
	lastReload    prometheus.Gauge
}

// New creates the collectors in a dedicated registry under namespace,
// together with the Go runtime and process collectors.
func New(namespace string) *Catalog {
	m := &Catalog{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "lookups_total",
			Help:      "Catalog queries by operation and result.",
		}, []string{"operation", "result"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "search_results",
			Help:      "Number of entries returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Catalog reloads by result.",
		}, []string{"result"}),
		reloadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "reload_duration_seconds",
			Help:      "Time spent loading and swapping the catalog.",
			Buckets:   prometheus.DefBuckets,
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "entries",
			Help:      "Entries in the current catalog.",
		}),
		sections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "sections",
			Help:      "Sections in the current catalog.",
		}),
		lastReload: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "last_reload_timestamp_seconds",
			Help:      "Unix time of the last successful reload.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.lookups, m.searchResults, m.reloads, m.reloadSeconds,
		m.entries, m.sections, m.lastReload,
	)

	return m
}

// Registry returns the registry holding every collector.
func (m *Catalog) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Catalog) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveLookup counts one query.
func (m *Catalog) ObserveLookup(operation string, err error) {
	if m == nil {
		return
	}

	m.lookups.WithLabelValues(operation, Result(err)).Inc()
}

// ObserveSearch records the size of a search result.
func (m *Catalog) ObserveSearch(results int) {
	if m == nil {
		return
	}

	m.searchResults.Observe(float64(results))
}

// ObserveReload counts a reload. The gauges only move on success.
func (m *Catalog) ObserveReload(err error, elapsed time.Duration, sections, entries int) {
	if m == nil {
		return
	}

	m.reloads.WithLabelValues(Result(err)).Inc()
	m.reloadSeconds.Observe(elapsed.Seconds())

	if err != nil {
		return
	}

	m.sections.Set(float64(sections))
	m.entries.Set(float64(entries))
	m.lastReload.SetToCurrentTime()
}

// Result maps an error onto a result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return ResultInvalid
	case errors.Is(err, domain.ErrUnavailable):
		return ResultUnavailable
	default:
		return ResultError
	}
}
