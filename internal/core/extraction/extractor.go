// Package extraction turns raw input into candidate forms and relations
// for assimilation.
package extraction

import (
	"context"
	"fmt"

	"github.com/agenthands/versorium/internal/core/model"
)

const (
	StabilityKey       = "stability"
	stabilityThreshold = 5
)

// AbstractionAlgorithm extracts low-level percepts and hypothesizes forms
// from them.
type AbstractionAlgorithm interface {
	ExtractPercepts(ctx context.Context, raw []byte) ([][]float32, error)
	HypothesizeForms(ctx context.Context, percepts [][]float32, memory ContextSnapshot) ([]model.Form, []model.FormRelation, error)
}

// SymbolicExtractor proposes forms and relations by symbolic reasoning
// over the raw input.
type SymbolicExtractor interface {
	ExtractSymbolicForms(ctx context.Context, raw []byte, memory ContextSnapshot) ([]model.Form, []model.FormRelation, error)
}

type FormExtractor struct {
	Abstraction AbstractionAlgorithm
	Symbolic    SymbolicExtractor // optional
}

func NewFormExtractor(abstraction AbstractionAlgorithm, symbolic SymbolicExtractor) *FormExtractor {
	return &FormExtractor{
		Abstraction: abstraction,
		Symbolic:    symbolic,
	}
}

// ExtractForms runs abstraction, then the optional symbolic pass, and
// annotates every form with a stability estimate.
func (e *FormExtractor) ExtractForms(ctx context.Context, raw []byte, memory ContextSnapshot) ([]model.Form, []model.FormRelation, error) {
	percepts, err := e.Abstraction.ExtractPercepts(ctx, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("percept extraction failed: %w", err)
	}

	forms, relations, err := e.Abstraction.HypothesizeForms(ctx, percepts, memory)
	if err != nil {
		return nil, nil, fmt.Errorf("form hypothesis failed: %w", err)
	}

	if e.Symbolic != nil {
		sForms, sRelations, err := e.Symbolic.ExtractSymbolicForms(ctx, raw, memory)
		if err != nil {
			return nil, nil, fmt.Errorf("symbolic extraction failed: %w", err)
		}
		forms = append(forms, sForms...)
		relations = append(relations, sRelations...)
	}

	for i := range forms {
		if forms[i].MetaProperties == nil {
			forms[i].MetaProperties = make(map[string]string)
		}
		if forms[i].ExamplesCount < stabilityThreshold {
			forms[i].MetaProperties[StabilityKey] = "low"
		} else {
			forms[i].MetaProperties[StabilityKey] = "high"
		}
	}

	return forms, relations, nil
}
