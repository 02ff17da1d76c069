/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts HTTP requests by method, endpoint and status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skuld_api_requests_total",
		Help: "Total HTTP API requests.",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration tracks request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skuld_api_request_duration_seconds",
		Help:    "HTTP API request duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections gauges in-flight requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skuld_api_active_connections",
		Help: "In-flight HTTP API requests.",
	})

	// OrdersComputed counts calculator runs by kind (create or edit).
	OrdersComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skuld_orders_computed_total",
		Help: "Production orders computed.",
	}, []string{"kind"})

	// OrdersRemoved counts delete operations that removed a row.
	OrdersRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skuld_orders_removed_total",
		Help: "Production orders removed.",
	})

	// StreamClients gauges connected websocket snapshot subscribers.
	StreamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skuld_stream_clients",
		Help: "Connected schedule stream clients.",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
