// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "requester"

// Metrics counts the requests an [EndpointRequester] makes, labeled by
// JSON-RPC method or GET path.
type Metrics struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests",
			Help:      "number of requests sent",
		}, []string{"method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures",
			Help:      "number of requests that returned an error",
		}, []string{"method"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "latency_seconds",
			Help:      "time from sending a request to decoding its reply",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.requests),
		r.Register(m.failures),
		r.Register(m.latency),
	)
	return m, errs.Err
}

func (m *Metrics) observe(method string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method).Inc()
	m.latency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		m.failures.WithLabelValues(method).Inc()
	}
}
