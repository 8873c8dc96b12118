package ethics

import (
	"strings"

	"github.com/agenthands/versorium/internal/core/model"
)

// BiasDetector flags forms that carry a bias risk.
type BiasDetector interface {
	Flagged(form model.Form) bool
}

// PlaceholderBiasDetector is NOT a real classifier. It flags a form when
// the description mentions a marker or the representation sums below zero.
type PlaceholderBiasDetector struct {
	Markers []string
}

func NewPlaceholderBiasDetector(markers []string) PlaceholderBiasDetector {
	if len(markers) == 0 {
		markers = []string{"gender_stereotype"}
	}
	return PlaceholderBiasDetector{Markers: markers}
}

func (d PlaceholderBiasDetector) Flagged(form model.Form) bool {
	for _, m := range d.Markers {
		if m != "" && strings.Contains(form.Description, m) {
			return true
		}
	}
	var sum float32
	for _, v := range form.Representation {
		sum += v
	}
	return sum < 0
}

type BiasDetectorFunc func(form model.Form) bool

func (fn BiasDetectorFunc) Flagged(form model.Form) bool {
	return fn(form)
}
