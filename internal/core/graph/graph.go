// Package graph holds the in-memory context graph: forms keyed by id and
// an append-only sequence of relations.
//
// ContextGraph has no locking of its own. It is owned by manager.Manager,
// which guards both collections with a single lock.
package graph

import (
	"sort"

	"github.com/agenthands/versorium/internal/core/model"
)

type ContextGraph struct {
	forms     map[string]model.Form
	relations []model.FormRelation
}

func NewContextGraph() *ContextGraph {
	return &ContextGraph{
		forms: make(map[string]model.Form),
	}
}

// AddForm inserts the form, overwriting any form with the same id.
func (g *ContextGraph) AddForm(form model.Form) {
	g.forms[form.ID] = form.Clone()
}

// AddRelation appends the relation. Duplicates are kept.
func (g *ContextGraph) AddRelation(rel model.FormRelation) {
	g.relations = append(g.relations, rel)
}

// RelatedForms returns the targets of every relation leaving formID, in
// relation insertion order. An empty relationType matches every relation.
// Relations whose target is not in the graph are skipped.
func (g *ContextGraph) RelatedForms(formID, relationType string) []model.Form {
	related := []model.Form{}
	for _, rel := range g.relations {
		if rel.SourceFormID != formID {
			continue
		}
		if relationType != "" && rel.RelationType != relationType {
			continue
		}
		if form, ok := g.forms[rel.TargetFormID]; ok {
			related = append(related, form.Clone())
		}
	}
	return related
}

func (g *ContextGraph) Form(id string) (model.Form, bool) {
	form, ok := g.forms[id]
	if !ok {
		return model.Form{}, false
	}
	return form.Clone(), true
}

func (g *ContextGraph) HasForm(id string) bool {
	_, ok := g.forms[id]
	return ok
}

// Forms returns copies of all forms sorted by id.
func (g *ContextGraph) Forms() []model.Form {
	forms := make([]model.Form, 0, len(g.forms))
	for _, f := range g.forms {
		forms = append(forms, f.Clone())
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID < forms[j].ID })
	return forms
}

// Relations returns a copy of the relation sequence in insertion order.
func (g *ContextGraph) Relations() []model.FormRelation {
	return append([]model.FormRelation{}, g.relations...)
}

func (g *ContextGraph) Len() int {
	return len(g.forms)
}

func (g *ContextGraph) RelationCount() int {
	return len(g.relations)
}

func (g *ContextGraph) Snapshot() model.GraphSnapshot {
	return model.GraphSnapshot{
		Forms:     g.Forms(),
		Relations: g.Relations(),
	}
}
