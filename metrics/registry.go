// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package metrics exposes connection and traffic counters as Prometheus
// metrics. Registry implements the sockets.Stats interface, so it can be
// plugged into listeners and dialed connections via sockets.WithStats.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sockets"

// Registry holds the Prometheus collectors for one process.
type Registry struct {
	registry *prometheus.Registry

	connectionsTotal  prometheus.Counter
	connectionsActive prometheus.Gauge
	bytesSent         prometheus.Counter
	bytesReceived     prometheus.Counter
}

// NewRegistry creates a Registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of connections opened (accepted or dialed).",
		}),
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of currently open connections.",
		}),
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sent_bytes_total",
			Help:      "Total number of bytes written to peers.",
		}),
		bytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "received_bytes_total",
			Help:      "Total number of bytes read from peers.",
		}),
	}
	r.registry.MustRegister(
		r.connectionsTotal,
		r.connectionsActive,
		r.bytesSent,
		r.bytesReceived,
	)
	return r
}

// ConnectionOpened records a new connection.
func (r *Registry) ConnectionOpened() {
	r.connectionsTotal.Inc()
	r.connectionsActive.Inc()
}

// ConnectionClosed records a closed connection.
func (r *Registry) ConnectionClosed() {
	r.connectionsActive.Dec()
}

// BytesSent records n bytes written to a peer.
func (r *Registry) BytesSent(n int) {
	r.bytesSent.Add(float64(n))
}

// BytesReceived records n bytes read from a peer.
func (r *Registry) BytesReceived(n int) {
	r.bytesReceived.Add(float64(n))
}

// Gatherer exposes the underlying registry for scraping or testing.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving the metrics in the Prometheus
// text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
