package store

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/driver"
)

func sampleSnapshot() model.GraphSnapshot {
	return model.GraphSnapshot{
		Forms: []model.Form{
			{ID: "Form_1", Description: "A generalized concept", Representation: []float32{0.5, 0.25}, MetaProperties: map[string]string{"stability": "low"}, ExamplesCount: 1, EthicalScore: 0.75},
			{ID: "GEN_Form_1", Description: "Generalized A generalized concept", ExamplesCount: 1, EthicalScore: 0.75},
		},
		Relations: []model.FormRelation{
			{SourceFormID: "Form_1", TargetFormID: "GEN_Form_1", RelationType: model.RelationIsA, Strength: 0.5},
			{SourceFormID: "Form_1", TargetFormID: "Dangling", RelationType: model.RelationCauses, Strength: 0.25},
		},
	}
}

func TestBadgerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenBadgerStore(BadgerConfig{InMemory: true}, nil)
	require.NoError(t, err)
	defer s.Close(ctx)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	want := sampleSnapshot()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Save overwrites.
	require.NoError(t, s.Save(ctx, model.GraphSnapshot{Forms: []model.Form{{ID: "only"}}}))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Forms, 1)
	assert.Equal(t, "only", got.Forms[0].ID)
}

func TestOpenBadgerStore_RequiresPath(t *testing.T) {
	_, err := OpenBadgerStore(BadgerConfig{}, nil)
	assert.Error(t, err)
}

func TestBadgerStore_OnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenBadgerStore(BadgerConfig{Path: dir}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleSnapshot()))
	require.NoError(t, s.Close(ctx))

	s, err = OpenBadgerStore(BadgerConfig{Path: dir}, nil)
	require.NoError(t, err)
	defer s.Close(ctx)
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Relations, 2)
}

func TestGraphStore_Save(t *testing.T) {
	d := &MockDriver{}
	s := NewGraphStore(d, nil)

	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))
	require.Len(t, d.Executed, 3)
	assert.Equal(t, driver.ClearGraphQuery, d.Executed[0].Query)
	assert.Equal(t, driver.SaveFormsQuery, d.Executed[1].Query)
	assert.Equal(t, driver.SaveRelationsQuery, d.Executed[2].Query)

	forms := d.Executed[1].Params["forms"].([]interface{})
	require.Len(t, forms, 2)
	first := forms[0].(map[string]interface{})
	assert.Equal(t, "Form_1", first["id"])
	assert.Equal(t, `{"stability":"low"}`, first["meta_properties"])
	assert.Equal(t, []float64{0.5, 0.25}, first["representation"])

	rels := d.Executed[2].Params["relations"].([]interface{})
	require.Len(t, rels, 2)
	assert.Equal(t, int64(1), rels[1].(map[string]interface{})["seq"])
}

func TestGraphStore_SaveEmptySkipsWrites(t *testing.T) {
	d := &MockDriver{}
	require.NoError(t, NewGraphStore(d, nil).Save(context.Background(), model.GraphSnapshot{}))
	assert.Len(t, d.Executed, 1)
}

func TestGraphStore_SaveFailureCommitsNothing(t *testing.T) {
	d := &MockDriver{FailOn: map[string]error{driver.SaveRelationsQuery: errors.New("constraint violated")}}
	s := NewGraphStore(d, nil)

	err := s.Save(context.Background(), sampleSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save relations")

	// The clear and the form writes were rolled back with the relations.
	assert.Equal(t, 1, d.RolledBack)
	assert.Empty(t, d.Executed)
}

func TestGraphStore_Load(t *testing.T) {
	d := &MockDriver{
		Results: map[string]neo4j.EagerResult{
			driver.LoadFormsQuery: {
				Records: []*neo4j.Record{
					{
						Keys:   []string{"id", "description", "representation", "meta_properties", "examples_count", "ethical_score"},
						Values: []interface{}{"Form_1", "A generalized concept", []interface{}{0.5, 0.25}, `{"stability":"low"}`, int64(1), 0.75},
					},
				},
			},
			driver.LoadRelationsQuery: {
				Records: []*neo4j.Record{
					{
						Keys:   []string{"source_form_id", "target_form_id", "relation_type", "strength"},
						Values: []interface{}{"Form_1", "GEN_Form_1", "IS_A", 0.5},
					},
				},
			},
		},
	}

	snap, err := NewGraphStore(d, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Forms, 1)
	assert.Equal(t, model.Form{
		ID:             "Form_1",
		Description:    "A generalized concept",
		Representation: []float32{0.5, 0.25},
		MetaProperties: map[string]string{"stability": "low"},
		ExamplesCount:  1,
		EthicalScore:   0.75,
	}, snap.Forms[0])
	require.Len(t, snap.Relations, 1)
	assert.Equal(t, model.FormRelation{SourceFormID: "Form_1", TargetFormID: "GEN_Form_1", RelationType: "IS_A", Strength: 0.5}, snap.Relations[0])
}

func TestGraphStore_LoadEmpty(t *testing.T) {
	_, err := NewGraphStore(&MockDriver{}, nil).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestGraphStore_Errors(t *testing.T) {
	d := &MockDriver{Err: errors.New("connection refused")}
	s := NewGraphStore(d, nil)

	err := s.Save(context.Background(), sampleSnapshot())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear stored graph")
	assert.Equal(t, 1, d.RolledBack)

	_, err = s.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, s.Close(context.Background()))
	assert.True(t, d.Closed)
}
