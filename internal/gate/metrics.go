package gate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var availability = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "inframap_live_source_available",
	Help: "1 when the last classified payload was available, 0 otherwise",
})

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
