//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/versorium/internal/config"
	"github.com/agenthands/versorium/internal/core"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/driver"
	"github.com/agenthands/versorium/internal/store"
)

// connect opens a Memgraph-backed store. The target database is cleared by
// every Save, so point MEMGRAPH_URI at a scratch instance.
func connect(t *testing.T) *store.GraphStore {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), nil)
	require.NoError(t, err)
	require.NoError(t, d.BuildIndices(ctx))

	st := store.NewGraphStore(d, nil)
	t.Cleanup(func() {
		_, _ = d.ExecuteQuery(context.Background(), driver.ClearGraphQuery, nil)
		_ = st.Close(context.Background())
	})
	return st
}

func TestGraphStore_RoundTrip(t *testing.T) {
	st := connect(t)
	ctx := context.Background()

	snap := model.GraphSnapshot{
		Forms: []model.Form{
			{ID: "Car", Description: "a car", Representation: []float32{0.5, 0.25}, ExamplesCount: 3, EthicalScore: 0.75,
				MetaProperties: map[string]string{"stability": "low"}},
			{ID: "Wheel", Description: "a wheel", EthicalScore: 0.5},
		},
		Relations: []model.FormRelation{
			{SourceFormID: "Wheel", TargetFormID: "Car", RelationType: model.RelationPartOf, Strength: 0.5},
			{SourceFormID: "Car", TargetFormID: "Ghost", RelationType: model.RelationAnalogousTo, Strength: 0.25},
		},
	}
	require.NoError(t, st.Save(ctx, snap))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Forms, loaded.Forms)
	assert.Equal(t, snap.Relations, loaded.Relations)
}

func TestEngine_PersistAndRestore(t *testing.T) {
	st := connect(t)
	ctx := context.Background()
	cfg := config.Default()

	first := core.NewEngine(cfg, nil, st, nil)
	forms, _, err := first.Ingest(ctx, []byte("some raw observation"))
	require.NoError(t, err)
	require.Len(t, forms, 1)
	require.NoError(t, first.SaveSnapshot(ctx))

	second := core.NewEngine(cfg, nil, st, nil)
	require.NoError(t, second.LoadSnapshot(ctx))

	restored, ok := second.Graph.Form(forms[0].ID)
	require.True(t, ok)
	assert.Equal(t, forms[0].Description, restored.Description)

	related := second.Graph.RelatedForms(forms[0].ID, model.RelationIsA)
	require.Len(t, related, 1)
	assert.Equal(t, "GEN_"+forms[0].ID, related[0].ID)
}
