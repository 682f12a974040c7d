// SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ironcore-dev/peripheral-registry/internal/compliance"
	"github.com/ironcore-dev/peripheral-registry/internal/peripheral"
)

// Querier reads the aggregate counts of a peripheral table.
type Querier interface {
	Info(kind peripheral.InfoKind, instance uint32) uint64
}

// PeripheralCollector exports the controller counts of the active table.
type PeripheralCollector struct {
	q    Querier
	desc *prometheus.Desc
}

// NewPeripheralCollector creates a collector reading counts from q on every scrape.
func NewPeripheralCollector(q Querier) *PeripheralCollector {
	return &PeripheralCollector{
		q: q,
		desc: prometheus.NewDesc(
			"peripheral_controllers",
			"Number of controllers reported by the platform peripheral table",
			[]string{"type"},
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *PeripheralCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *PeripheralCollector) Collect(ch chan<- prometheus.Metric) {
	counts := []struct {
		kind  peripheral.InfoKind
		label string
	}{
		{peripheral.NumUSB, "usb"},
		{peripheral.NumSATA, "sata"},
		{peripheral.NumUART, "uart"},
	}
	for _, count := range counts {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.q.Info(count.kind, 0)), count.label)
	}
}

// CheckRecorder counts check results. It implements compliance.Recorder and
// prometheus.Collector.
type CheckRecorder struct {
	results *prometheus.CounterVec
}

var _ compliance.Recorder = &CheckRecorder{}

func NewCheckRecorder() *CheckRecorder {
	return &CheckRecorder{
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peripheral_compliance_check_results_total",
				Help: "Number of peripheral compliance check runs by result",
			},
			[]string{"check", "result"},
		),
	}
}

// Observe records one run of check.
func (r *CheckRecorder) Observe(check string, status compliance.Status) {
	r.results.WithLabelValues(check, status.String()).Inc()
}

// Describe implements prometheus.Collector.
func (r *CheckRecorder) Describe(ch chan<- *prometheus.Desc) {
	r.results.Describe(ch)
}

// Collect implements prometheus.Collector.
func (r *CheckRecorder) Collect(ch chan<- prometheus.Metric) {
	r.results.Collect(ch)
}

// NewRegistry returns a registry holding the given collectors.
func NewRegistry(collectors ...prometheus.Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
