package extraction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/llm"
)

const (
	hypothesisDescription = "A generalized concept detected from input data"
	initialEthicalScore   = float32(0.8)
)

func newFormID() string {
	return "Form_" + uuid.New().String()
}

// PlaceholderAbstraction stands in for a real VAE or clustering model.
// Its single percept only encodes the input length.
type PlaceholderAbstraction struct {
	IDGenerator func() string
}

func (a *PlaceholderAbstraction) ExtractPercepts(_ context.Context, raw []byte) ([][]float32, error) {
	return [][]float32{{0.1 * float32(len(raw)), 0.2, 0.3}}, nil
}

func (a *PlaceholderAbstraction) HypothesizeForms(_ context.Context, percepts [][]float32, _ ContextSnapshot) ([]model.Form, []model.FormRelation, error) {
	return hypothesize(a.IDGenerator, percepts), nil, nil
}

// EmbeddingAbstraction uses a provider embedding of the input text as
// the percept.
type EmbeddingAbstraction struct {
	Embedder    llm.EmbedderClient
	IDGenerator func() string
}

func NewEmbeddingAbstraction(embedder llm.EmbedderClient) *EmbeddingAbstraction {
	return &EmbeddingAbstraction{Embedder: embedder}
}

func (a *EmbeddingAbstraction) ExtractPercepts(ctx context.Context, raw []byte) ([][]float32, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	vec, err := a.Embedder.Embed(ctx, string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to embed input: %w", err)
	}
	return [][]float32{vec}, nil
}

func (a *EmbeddingAbstraction) HypothesizeForms(_ context.Context, percepts [][]float32, _ ContextSnapshot) ([]model.Form, []model.FormRelation, error) {
	if len(percepts) == 0 {
		return nil, nil, nil
	}
	return hypothesize(a.IDGenerator, percepts), nil, nil
}

// hypothesize collapses all percepts into one candidate form.
func hypothesize(idGen func() string, percepts [][]float32) []model.Form {
	if idGen == nil {
		idGen = newFormID
	}
	var rep []float32
	if len(percepts) > 0 {
		rep = append([]float32(nil), percepts[0]...)
	}
	return []model.Form{{
		ID:             idGen(),
		Description:    hypothesisDescription,
		Representation: rep,
		MetaProperties: map[string]string{},
		ExamplesCount:  len(percepts),
		EthicalScore:   initialEthicalScore,
	}}
}
