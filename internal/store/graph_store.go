package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/driver"
	"github.com/agenthands/versorium/internal/logger"
)

// GraphStore writes snapshots to Memgraph/Neo4j through a GraphDriver.
// Save replaces whatever was stored before.
type GraphStore struct {
	Driver driver.GraphDriver
	log    *logger.Logger
}

func NewGraphStore(d driver.GraphDriver, log *logger.Logger) *GraphStore {
	return &GraphStore{
		Driver: d,
		log:    logger.OrNop(log).With("component", "graph_store"),
	}
}

// Save replaces the stored graph with snap in a single write transaction, so
// a failed save leaves the previous snapshot in place.
func (s *GraphStore) Save(ctx context.Context, snap model.GraphSnapshot) error {
	forms := make([]interface{}, 0, len(snap.Forms))
	for _, f := range snap.Forms {
		meta, err := json.Marshal(f.MetaProperties)
		if err != nil {
			return fmt.Errorf("failed to encode meta properties of %s: %w", f.ID, err)
		}
		forms = append(forms, map[string]interface{}{
			"id":              f.ID,
			"description":     f.Description,
			"representation":  toFloat64s(f.Representation),
			"meta_properties": string(meta),
			"examples_count":  int64(f.ExamplesCount),
			"ethical_score":   float64(f.EthicalScore),
		})
	}

	relations := make([]interface{}, 0, len(snap.Relations))
	for i, r := range snap.Relations {
		relations = append(relations, map[string]interface{}{
			"seq":            int64(i),
			"source_form_id": r.SourceFormID,
			"target_form_id": r.TargetFormID,
			"relation_type":  r.RelationType,
			"strength":       float64(r.Strength),
		})
	}

	err := s.Driver.ExecuteWrite(ctx, func(tx driver.Tx) error {
		if err := tx.Run(ctx, driver.ClearGraphQuery, nil); err != nil {
			return fmt.Errorf("failed to clear stored graph: %w", err)
		}
		if len(forms) > 0 {
			if err := tx.Run(ctx, driver.SaveFormsQuery, map[string]interface{}{"forms": forms}); err != nil {
				return fmt.Errorf("failed to save forms: %w", err)
			}
		}
		if len(relations) > 0 {
			if err := tx.Run(ctx, driver.SaveRelationsQuery, map[string]interface{}{"relations": relations}); err != nil {
				return fmt.Errorf("failed to save relations: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("snapshot saved", "forms", len(forms), "relations", len(relations))
	return nil
}

func (s *GraphStore) Load(ctx context.Context) (model.GraphSnapshot, error) {
	var snap model.GraphSnapshot

	res, err := s.Driver.ExecuteQuery(ctx, driver.LoadFormsQuery, nil)
	if err != nil {
		return snap, fmt.Errorf("failed to load forms: %w", err)
	}
	for _, rec := range res.Records {
		id, _ := rec.Get("id")
		desc, _ := rec.Get("description")
		rep, _ := rec.Get("representation")
		meta, _ := rec.Get("meta_properties")
		count, _ := rec.Get("examples_count")
		score, _ := rec.Get("ethical_score")

		form := model.Form{
			ID:             asString(id),
			Description:    asString(desc),
			Representation: asFloat32s(rep),
			ExamplesCount:  int(asInt64(count)),
			EthicalScore:   float32(asFloat64(score)),
		}
		if raw := asString(meta); raw != "" && raw != "null" {
			if err := json.Unmarshal([]byte(raw), &form.MetaProperties); err != nil {
				return snap, fmt.Errorf("failed to decode meta properties of %s: %w", form.ID, err)
			}
		}
		snap.Forms = append(snap.Forms, form)
	}

	res, err = s.Driver.ExecuteQuery(ctx, driver.LoadRelationsQuery, nil)
	if err != nil {
		return snap, fmt.Errorf("failed to load relations: %w", err)
	}
	for _, rec := range res.Records {
		src, _ := rec.Get("source_form_id")
		tgt, _ := rec.Get("target_form_id")
		typ, _ := rec.Get("relation_type")
		str, _ := rec.Get("strength")
		snap.Relations = append(snap.Relations, model.FormRelation{
			SourceFormID: asString(src),
			TargetFormID: asString(tgt),
			RelationType: asString(typ),
			Strength:     float32(asFloat64(str)),
		})
	}

	if len(snap.Forms) == 0 && len(snap.Relations) == 0 {
		return snap, ErrNoSnapshot
	}
	return snap, nil
}

func (s *GraphStore) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

func toFloat64s(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asFloat32s(v interface{}) []float32 {
	switch vals := v.(type) {
	case nil:
		return nil
	case []interface{}:
		if len(vals) == 0 {
			return nil
		}
		out := make([]float32, 0, len(vals))
		for _, x := range vals {
			out = append(out, float32(asFloat64(x)))
		}
		return out
	case []float64:
		out := make([]float32, len(vals))
		for i, x := range vals {
			out[i] = float32(x)
		}
		return out
	}
	return nil
}
