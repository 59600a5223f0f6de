package contractor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodesContractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chprep",
		Subsystem: "contractor",
		Name:      "nodes_contracted_total",
		Help:      "Nodes fully contracted so far by the running Contract() call.",
	})

	shortcutsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chprep",
		Subsystem: "contractor",
		Name:      "shortcuts_added_total",
		Help:      "Shortcut edges inserted so far by the running Contract() call.",
	})

	contractionDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "chprep",
		Subsystem: "contractor",
		Name:      "contraction_duration_seconds",
		Help:      "Wall-clock time spent in a single Contract() call.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 15),
	})

	componentCountGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "chprep",
		Subsystem: "contractor",
		Name:      "component_count",
		Help:      "Number of strongly connected components found in the graph being contracted.",
	})

	largestComponentSizeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "chprep",
		Subsystem: "contractor",
		Name:      "largest_component_size",
		Help:      "Node count of the largest strongly connected component found in the graph being contracted.",
	})
)
