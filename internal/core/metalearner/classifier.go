package metalearner

import (
	"strings"

	"github.com/agenthands/versorium/internal/core/model"
)

type TaskKind string

const (
	TaskVision   TaskKind = "vision"
	TaskSequence TaskKind = "sequence"
	TaskDefault  TaskKind = "default"
)

// TaskClassifier maps the forms recollected for a task to a TaskKind.
type TaskClassifier interface {
	Classify(taskDescription string, forms []model.Form) TaskKind
}

type IDMarker struct {
	Marker string
	Kind   TaskKind
}

// MarkerClassifier picks the first marker (in order) contained in any
// recollected form id. The task text is not consulted.
type MarkerClassifier struct {
	Markers []IDMarker
}

func DefaultMarkerClassifier() MarkerClassifier {
	return MarkerClassifier{Markers: []IDMarker{
		{Marker: "ImageRecognition", Kind: TaskVision},
		{Marker: "TimeSeries", Kind: TaskSequence},
	}}
}

func (c MarkerClassifier) Classify(_ string, forms []model.Form) TaskKind {
	for _, m := range c.Markers {
		for _, f := range forms {
			if strings.Contains(f.ID, m.Marker) {
				return m.Kind
			}
		}
	}
	return TaskDefault
}
