/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package metrics exposes Prometheus instruments for growth assessments and
// profile mutations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/humaidq/nourishnav/growth"
)

// Manager holds every instrument the service records.
type Manager struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterReports         *prometheus.CounterVec
	CounterClassifications *prometheus.CounterVec
	CounterRecordsAdded    prometheus.Counter
	CounterRejected        *prometheus.CounterVec

	// gauges
	GaugeProfiles prometheus.Gauge

	// histograms
	HistReportDuration prometheus.Histogram
}

// NewTestManagerAndRegistry returns a manager backed by a private registry.
func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("nourishnav", "test", reg), reg
}

// SetupPrometheus returns a registry carrying build info, Go runtime and
// process collectors plus any extra collectors given.
func SetupPrometheus(extra ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, c := range extra {
		reg.MustRegister(c)
	}

	return reg
}

// NewManager registers all instruments on reg.
func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of handled HTTP requests",
		}, []string{"method", "status"}),
		CounterReports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reports_total",
			Help:      "The total number of report requests by outcome",
		}, []string{"outcome"}),
		CounterClassifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "classifications_total",
			Help:      "Classifications produced, by indicator, category and severity",
		}, []string{"indicator", "category", "severity"}),
		CounterRecordsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_added_total",
			Help:      "The total number of accepted growth records",
		}),
		CounterRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_mutations_total",
			Help:      "Mutations rejected by the profile store, by operation",
		}, []string{"operation"}),
		GaugeProfiles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "profiles",
			Help:      "Current number of profiles including the placeholder",
		}),
		HistReportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "report_duration_seconds",
			Help:      "Time spent building a growth report",
			Buckets: []float64{
				0.00001, 0.000025, 0.00005, 0.0001, 0.00025,
				0.0005, 0.001, 0.0025, 0.01, 0.1,
			},
		}),
	}
}

// ObserveReport records a built report and its duration. A nil manager is a
// no-op so callers can run without metrics.
func (m *Manager) ObserveReport(report *growth.Report, took time.Duration) {
	if m == nil || report == nil {
		return
	}

	m.CounterReports.WithLabelValues("ok").Inc()
	m.HistReportDuration.Observe(took.Seconds())

	for _, c := range report.Classifications {
		m.CounterClassifications.WithLabelValues(string(c.Indicator), string(c.Category), string(c.Severity)).Inc()
	}
}

// ObserveReportOutcome counts a report request that produced no report.
func (m *Manager) ObserveReportOutcome(outcome string) {
	if m == nil {
		return
	}

	m.CounterReports.WithLabelValues(outcome).Inc()
}

// RecordAdded counts an accepted growth record.
func (m *Manager) RecordAdded() {
	if m == nil {
		return
	}

	m.CounterRecordsAdded.Inc()
}

// Rejected counts a mutation the store refused.
func (m *Manager) Rejected(operation string) {
	if m == nil {
		return
	}

	m.CounterRejected.WithLabelValues(operation).Inc()
}

// SetProfiles updates the profile gauge.
func (m *Manager) SetProfiles(n int) {
	if m == nil {
		return
	}

	m.GaugeProfiles.Set(float64(n))
}
