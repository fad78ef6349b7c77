package push

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inframap_live_push_reconnects_total",
		Help: "Push-channel reconnect attempts",
	})

	messages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inframap_live_push_messages_total",
		Help: "Messages received on the push channel",
	})

	connectionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inframap_live_push_state",
		Help: "Push-channel state: 0 connecting, 1 open, 2 closed-retrying",
	})
)
