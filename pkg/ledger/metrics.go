// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records RPC calls. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates and registers the RPC metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := new(Metrics)
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "RPC requests by method and outcome",
	}, []string{"method", "outcome"})
	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bridge",
		Subsystem: "rpc",
		Name:      "request_duration_seconds",
		Help:      "RPC request latency by method",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"method"})

	if reg != nil {
		reg.MustRegister(m.requests, m.latency)
	}
	return m
}

func (m *Metrics) observe(method string, start time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.latency.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
