package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/agenthands/versorium/internal/config"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("Form_%d", n)
	}
}

func TestExtractForms_Placeholder(t *testing.T) {
	e := NewFormExtractor(&PlaceholderAbstraction{IDGenerator: sequentialIDs()}, nil)

	forms, relations, err := e.ExtractForms(context.Background(), []byte{1, 2, 3, 4, 5}, ContextSnapshot{})
	require.NoError(t, err)
	assert.Empty(t, relations)
	require.Len(t, forms, 1)

	f := forms[0]
	assert.Equal(t, "Form_1", f.ID)
	assert.Equal(t, "A generalized concept detected from input data", f.Description)
	assert.InDelta(t, 0.5, f.Representation[0], 1e-6)
	assert.Equal(t, []float32{0.2, 0.3}, f.Representation[1:])
	assert.Equal(t, 1, f.ExamplesCount)
	assert.Equal(t, float32(0.8), f.EthicalScore)
	assert.Equal(t, "low", f.MetaProperties[StabilityKey])
}

func TestExtractForms_DefaultIDsAreUnique(t *testing.T) {
	e := NewFormExtractor(&PlaceholderAbstraction{}, nil)
	a, _, err := e.ExtractForms(context.Background(), []byte("x"), ContextSnapshot{})
	require.NoError(t, err)
	b, _, err := e.ExtractForms(context.Background(), []byte("x"), ContextSnapshot{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a[0].ID, "Form_"))
	assert.NotEqual(t, a[0].ID, b[0].ID)
}

type manyPercepts struct{ n int }

func (m manyPercepts) ExtractPercepts(context.Context, []byte) ([][]float32, error) {
	out := make([][]float32, m.n)
	for i := range out {
		out[i] = []float32{float32(i)}
	}
	return out, nil
}

func (m manyPercepts) HypothesizeForms(_ context.Context, percepts [][]float32, _ ContextSnapshot) ([]model.Form, []model.FormRelation, error) {
	return hypothesize(sequentialIDs(), percepts), nil, nil
}

func TestExtractForms_HighStability(t *testing.T) {
	e := NewFormExtractor(manyPercepts{n: 5}, nil)
	forms, _, err := e.ExtractForms(context.Background(), nil, ContextSnapshot{})
	require.NoError(t, err)
	assert.Equal(t, 5, forms[0].ExamplesCount)
	assert.Equal(t, "high", forms[0].MetaProperties[StabilityKey])
}

func TestExtractForms_Symbolic(t *testing.T) {
	mockJSON := `{
		"forms": [
			{"id": "ImageRecognition_Cat", "description": "recognizing cats"},
			{"id": "", "description": "dropped"}
		],
		"relations": [
			{"source_form_id": "ImageRecognition_Cat", "target_form_id": "GEN_Objectness", "relation_type": "IS_A", "strength": 0.6}
		]
	}`
	mockLLM := &MockLLMClient{Response: mockJSON}
	e := NewFormExtractor(
		&PlaceholderAbstraction{IDGenerator: sequentialIDs()},
		NewLLMSymbolicExtractor(mockLLM, "context: %s input: %s"),
	)

	mem := ContextSnapshot{Entries: []string{"earlier cat picture"}}
	forms, relations, err := e.ExtractForms(context.Background(), []byte("a photo of a cat"), mem)
	require.NoError(t, err)

	require.Len(t, forms, 2)
	assert.Equal(t, "ImageRecognition_Cat", forms[1].ID)
	assert.Equal(t, "symbolic", forms[1].MetaProperties["source"])
	assert.Equal(t, "low", forms[1].MetaProperties[StabilityKey])

	require.Len(t, relations, 1)
	assert.Equal(t, model.RelationIsA, relations[0].RelationType)
	assert.Equal(t, float32(0.6), relations[0].Strength)

	assert.Equal(t, "context: earlier cat picture input: a photo of a cat", mockLLM.LastPrompt)
}

func TestExtractForms_SymbolicErrors(t *testing.T) {
	e := NewFormExtractor(&PlaceholderAbstraction{}, NewLLMSymbolicExtractor(&MockLLMClient{Response: "not json"}, "%s%s"))
	_, _, err := e.ExtractForms(context.Background(), []byte("x"), ContextSnapshot{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "symbolic extraction failed")

	e = NewFormExtractor(&PlaceholderAbstraction{}, NewLLMSymbolicExtractor(&MockLLMClient{Err: errors.New("boom")}, "%s%s"))
	_, _, err = e.ExtractForms(context.Background(), []byte("x"), ContextSnapshot{})
	assert.Error(t, err)
}

func TestLLMSymbolicExtractor_DefaultPrompt(t *testing.T) {
	mockLLM := &MockLLMClient{Response: `{"forms": [], "relations": []}`}
	s := NewLLMSymbolicExtractor(mockLLM, "")
	assert.Equal(t, config.DefaultSymbolicPrompt, s.Prompt)

	_, _, err := s.ExtractSymbolicForms(context.Background(), []byte("a red ball"), ContextSnapshot{Entries: []string{"a blue ball"}})
	require.NoError(t, err)
	assert.NotContains(t, mockLLM.LastPrompt, "%!")
	assert.Contains(t, mockLLM.LastPrompt, "Recent context:\na blue ball")
	assert.True(t, strings.HasSuffix(mockLLM.LastPrompt, "Input:\na red ball"))
}

func TestEmbeddingAbstraction(t *testing.T) {
	a := NewEmbeddingAbstraction(&MockEmbedderClient{Response: []float32{0.1, -0.4, 0.9}})
	a.IDGenerator = sequentialIDs()
	e := NewFormExtractor(a, nil)

	forms, _, err := e.ExtractForms(context.Background(), []byte("time series of stock prices"), ContextSnapshot{})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, []float32{0.1, -0.4, 0.9}, forms[0].Representation)

	forms, _, err = e.ExtractForms(context.Background(), nil, ContextSnapshot{})
	require.NoError(t, err)
	assert.Empty(t, forms)

	e = NewFormExtractor(NewEmbeddingAbstraction(&MockEmbedderClient{Err: errors.New("down")}), nil)
	_, _, err = e.ExtractForms(context.Background(), []byte("x"), ContextSnapshot{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "percept extraction failed")
}

func TestContextMemory(t *testing.T) {
	m := NewContextMemory(2)
	m.Remember("a")
	m.Remember("b", "c")

	snap := m.Snapshot()
	assert.Equal(t, []string{"b", "c"}, snap.Entries)

	snap.Entries[0] = "mutated"
	assert.Equal(t, []string{"b", "c"}, m.Snapshot().Entries)

	assert.Empty(t, NewContextMemory(0).Snapshot().Entries)
}
