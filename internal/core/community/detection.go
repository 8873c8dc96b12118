// Package community groups forms into concept clusters using the relation
// structure of the context graph. Relations are treated as undirected and
// dangling endpoints are ignored.
package community

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/versorium/internal/core/model"
)

// MinClusterSize filters out singletons.
const MinClusterSize = 2

type Detector interface {
	Detect(forms []model.Form, relations []model.FormRelation) ([]model.ConceptCluster, error)
}

// NewDetector picks a detector by name: "lpa" (the default) or "components".
func NewDetector(algorithm string) (Detector, error) {
	switch strings.ToLower(algorithm) {
	case "", "lpa":
		return NewLabelPropagationDetector(), nil
	case "components":
		return NewComponentDetector(), nil
	}
	return nil, fmt.Errorf("unknown clusters algorithm %q", algorithm)
}

// ComponentDetector reports connected components.
type ComponentDetector struct{}

func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{}
}

func (d *ComponentDetector) Detect(forms []model.Form, relations []model.FormRelation) ([]model.ConceptCluster, error) {
	adj := buildAdjacency(forms, relations)

	visited := make(map[string]bool)
	var clusters []model.ConceptCluster
	for _, f := range forms {
		if visited[f.ID] {
			continue
		}
		var component []string
		stack := []string{f.ID}
		visited[f.ID] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, u)
			for v := range adj[u] {
				if !visited[v] {
					visited[v] = true
					stack = append(stack, v)
				}
			}
		}
		if len(component) >= MinClusterSize {
			sort.Strings(component)
			clusters = append(clusters, model.ConceptCluster{Label: component[0], FormIDs: component})
		}
	}
	sortClusters(clusters)
	return clusters, nil
}

// buildAdjacency returns node -> neighbour -> summed relation strength.
// Relations with zero strength still count as a link of weight 1.
func buildAdjacency(forms []model.Form, relations []model.FormRelation) map[string]map[string]float64 {
	adj := make(map[string]map[string]float64, len(forms))
	for _, f := range forms {
		adj[f.ID] = make(map[string]float64)
	}
	for _, r := range relations {
		if r.SourceFormID == r.TargetFormID {
			continue
		}
		if _, ok := adj[r.SourceFormID]; !ok {
			continue
		}
		if _, ok := adj[r.TargetFormID]; !ok {
			continue
		}
		w := float64(r.Strength)
		if w <= 0 {
			w = 1
		}
		adj[r.SourceFormID][r.TargetFormID] += w
		adj[r.TargetFormID][r.SourceFormID] += w
	}
	return adj
}

func sortClusters(clusters []model.ConceptCluster) {
	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].FormIDs) != len(clusters[j].FormIDs) {
			return len(clusters[i].FormIDs) > len(clusters[j].FormIDs)
		}
		return clusters[i].Label < clusters[j].Label
	})
}
