package manager

import (
	"strings"

	"github.com/agenthands/versorium/internal/core/model"
)

// Generalizer decides whether a form describes a generalized concept and
// should get a super-form during Division.
type Generalizer interface {
	IsGeneralized(form model.Form) bool
}

// SubstringGeneralizer is a placeholder heuristic: any description that
// contains Marker qualifies.
type SubstringGeneralizer struct {
	Marker string
}

func (s SubstringGeneralizer) IsGeneralized(form model.Form) bool {
	if s.Marker == "" {
		return false
	}
	return strings.Contains(form.Description, s.Marker)
}

// GeneralizerFunc adapts a plain function.
type GeneralizerFunc func(form model.Form) bool

func (f GeneralizerFunc) IsGeneralized(form model.Form) bool {
	return f(form)
}

// IsGeneralizedID reports whether id already names a synthesized super-form.
func IsGeneralizedID(id string) bool {
	return strings.Contains(id, GeneralizedPrefix)
}
