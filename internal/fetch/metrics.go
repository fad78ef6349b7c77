package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inframap_live_pull_requests_total",
	Help: "HTTP pulls against the topology service",
}, []string{"endpoint", "outcome"})
