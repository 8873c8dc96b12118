package manager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	formsAssimilated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "versorium",
		Subsystem: "graph",
		Name:      "forms_assimilated_total",
		Help:      "Forms received by Assimilate.",
	})

	superFormsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "versorium",
		Subsystem: "graph",
		Name:      "super_forms_created_total",
		Help:      "GEN_ super-forms synthesized during Division.",
	})

	relationsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "versorium",
		Subsystem: "graph",
		Name:      "relations_appended_total",
		Help:      "Caller-supplied relations appended during Collection.",
	})
)
