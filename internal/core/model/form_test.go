package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormClone(t *testing.T) {
	f := Form{
		ID:             "A",
		Representation: []float32{1, 2},
		MetaProperties: map[string]string{"k": "v"},
	}
	c := f.Clone()
	c.Representation[0] = 9
	c.MetaProperties["k"] = "changed"

	assert.Equal(t, float32(1), f.Representation[0])
	assert.Equal(t, "v", f.MetaProperties["k"])
}

func TestFormWireNames(t *testing.T) {
	data, err := json.Marshal(Form{ID: "A", ExamplesCount: 2, EthicalScore: 0.5})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "description", "representation", "meta_properties", "examples_count", "ethical_score"} {
		assert.Contains(t, raw, key)
	}

	data, err = json.Marshal(FormRelation{SourceFormID: "A", TargetFormID: "B", RelationType: RelationIsA, Strength: 0.9})
	require.NoError(t, err)
	raw = nil
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"source_form_id", "target_form_id", "relation_type", "strength"} {
		assert.Contains(t, raw, key)
	}
}

func TestDefaultStrategyOmitsOptionalFields(t *testing.T) {
	data, err := json.Marshal(NewLearningStrategy())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "model_architecture")
	assert.NotContains(t, string(data), "transfer_learning_path")
}
