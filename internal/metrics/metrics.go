// Package metrics exposes Prometheus collectors for bridge lifecycle and
// shell throughput. All metrics use the termgate_ prefix.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "termgate"

var (
	// BridgesActive is the number of currently live bridges.
	BridgesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "bridges_active",
		Help:      "Number of currently live client-to-shell bridges.",
	})

	// BridgesOpened counts successfully established bridges.
	BridgesOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bridges_opened_total",
		Help:      "Total number of successfully established bridges.",
	})

	// ConnectFailures counts establishment failures by classified cause.
	ConnectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connect_failures_total",
		Help:      "Total connection establishment failures by classified cause.",
	}, []string{"cause"})

	// ShellOutputBytes counts bytes forwarded from shells to clients.
	ShellOutputBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shell_output_bytes_total",
		Help:      "Total bytes forwarded from remote shells to clients.",
	})

	// ShellInputBytes counts bytes forwarded from clients to shells.
	ShellInputBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shell_input_bytes_total",
		Help:      "Total bytes forwarded from clients to remote shells.",
	})
)
