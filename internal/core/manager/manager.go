// Package manager owns the context graph and serializes every mutation
// through one reader/writer lock.
//
// Assimilation ("Division & Collection") is the only batch mutation path:
//  1. Division: each incoming form that the Generalizer accepts gets a
//     GEN_<id> super-form (created once) and an IS_A edge to it.
//  2. The form itself is inserted, overwriting any previous version.
//  3. Collection: the batch's relations are appended after all forms, so
//     they may point at forms introduced in the same batch.
//
// Readers never observe a half-applied batch.
package manager

import (
	"sync"

	"github.com/agenthands/versorium/internal/core/graph"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/logger"
)

const (
	GeneralizedPrefix        = "GEN_"
	generalizedDescPrefix    = "Generalized "
	GeneralizationStrength   = float32(0.9)
	DefaultGeneralizedMarker = "generalized"
)

type Manager struct {
	mu          sync.RWMutex
	graph       *graph.ContextGraph
	generalizer Generalizer
	log         *logger.Logger
}

type Option func(*Manager)

func WithGeneralizer(g Generalizer) Option {
	return func(m *Manager) {
		if g != nil {
			m.generalizer = g
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) {
		m.log = logger.OrNop(l)
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		graph:       graph.NewContextGraph(),
		generalizer: SubstringGeneralizer{Marker: DefaultGeneralizedMarker},
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With("component", "graph_manager")
	return m
}

// Assimilate applies one batch of forms and relations atomically.
func (m *Manager) Assimilate(forms []model.Form, relations []model.FormRelation) {
	m.mu.Lock()
	created := 0
	for _, form := range forms {
		if m.divide(form) {
			created++
		}
		m.graph.AddForm(form)
	}
	for _, rel := range relations {
		m.graph.AddRelation(rel)
	}
	total, edges := m.graph.Len(), m.graph.RelationCount()
	m.mu.Unlock()

	formsAssimilated.Add(float64(len(forms)))
	superFormsCreated.Add(float64(created))
	relationsAppended.Add(float64(len(relations)))

	m.log.Info("context graph updated",
		"forms", len(forms),
		"relations", len(relations),
		"super_forms_created", created,
		"total_forms", total,
		"total_relations", edges,
	)
}

// divide runs the Division step for one form. Caller holds the write lock.
// Reports whether a new super-form was inserted.
func (m *Manager) divide(form model.Form) bool {
	if !m.generalizer.IsGeneralized(form) || IsGeneralizedID(form.ID) {
		return false
	}

	superID := GeneralizedPrefix + form.ID
	created := false
	if !m.graph.HasForm(superID) {
		m.graph.AddForm(model.Form{
			ID:             superID,
			Description:    generalizedDescPrefix + form.Description,
			Representation: form.Representation,
			MetaProperties: form.MetaProperties,
			ExamplesCount:  1,
			EthicalScore:   form.EthicalScore,
		})
		created = true
	}
	m.graph.AddRelation(model.FormRelation{
		SourceFormID: form.ID,
		TargetFormID: superID,
		RelationType: model.RelationIsA,
		Strength:     GeneralizationStrength,
	})
	return created
}

// PutForm overwrites a single form by id without running Division.
func (m *Manager) PutForm(form model.Form) {
	m.mu.Lock()
	m.graph.AddForm(form)
	m.mu.Unlock()
}

// Update applies fn to the stored form with the given id and writes the
// result back, all under the write lock. fn must not call back into the
// Manager. Reports false when no such form exists.
func (m *Manager) Update(id string, fn func(form *model.Form)) (model.Form, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.graph.Form(id)
	if !ok {
		return model.Form{}, false
	}
	fn(&form)
	form.ID = id
	m.graph.AddForm(form)
	return form.Clone(), true
}

// Restore replaces the whole graph with the snapshot contents.
func (m *Manager) Restore(snap model.GraphSnapshot) {
	g := graph.NewContextGraph()
	for _, f := range snap.Forms {
		g.AddForm(f)
	}
	for _, r := range snap.Relations {
		g.AddRelation(r)
	}

	m.mu.Lock()
	m.graph = g
	m.mu.Unlock()

	m.log.Info("context graph restored", "forms", len(snap.Forms), "relations", len(snap.Relations))
}

// View runs fn under the read lock. fn must not retain g.
func (m *Manager) View(fn func(g *graph.ContextGraph)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.graph)
}

func (m *Manager) RelatedForms(formID, relationType string) []model.Form {
	var out []model.Form
	m.View(func(g *graph.ContextGraph) {
		out = g.RelatedForms(formID, relationType)
	})
	return out
}

func (m *Manager) Form(id string) (model.Form, bool) {
	var (
		out model.Form
		ok  bool
	)
	m.View(func(g *graph.ContextGraph) {
		out, ok = g.Form(id)
	})
	return out, ok
}

func (m *Manager) Forms() []model.Form {
	var out []model.Form
	m.View(func(g *graph.ContextGraph) {
		out = g.Forms()
	})
	return out
}

func (m *Manager) Snapshot() model.GraphSnapshot {
	var out model.GraphSnapshot
	m.View(func(g *graph.ContextGraph) {
		out = g.Snapshot()
	})
	return out
}
