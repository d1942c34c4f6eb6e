// Package metrics exposes the service's Prometheus counters and the
// /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operations counts handled requests by operation and outcome.
// Outcomes: success, invalid, error.
var Operations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "todo_operations_total",
		Help: "Handled to-do operations by outcome",
	},
	[]string{"operation", "result"},
)

// Init serves the Prometheus endpoint on its own listener.
func Init(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}
