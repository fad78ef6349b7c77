package reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconciliations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inframap_live_reconciliations_total",
		Help: "Snapshots applied to the mirror",
	})

	renderOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inframap_live_render_ops_total",
		Help: "Render operations emitted by reconciliation",
	}, []string{"target", "kind"})

	mirrorNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inframap_live_mirror_nodes",
		Help: "Nodes currently held in the mirror",
	})

	mirrorEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inframap_live_mirror_edges",
		Help: "Edges currently held in the mirror",
	})
)
