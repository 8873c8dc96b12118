package metalearner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var recommendations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "versorium",
	Subsystem: "metalearner",
	Name:      "recommendations_total",
	Help:      "Strategy recommendations by task kind.",
}, []string{"kind"})
