package ethics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ethicsPenalties = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "versorium",
		Subsystem: "ethics",
		Name:      "form_penalties_total",
		Help:      "Forms whose ethical score was reduced by the bias detector.",
	})

	strategiesModified = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "versorium",
		Subsystem: "ethics",
		Name:      "strategies_modified_total",
		Help:      "Strategies rewritten for guideline compliance.",
	})
)
