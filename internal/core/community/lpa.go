package community

import (
	"sort"

	"github.com/agenthands/versorium/internal/core/model"
)

// LabelPropagationDetector clusters forms with label propagation, weighting
// each neighbour by relation strength.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(forms []model.Form, relations []model.FormRelation) ([]model.ConceptCluster, error) {
	if len(forms) == 0 {
		return nil, nil
	}

	adj := buildAdjacency(forms, relations)

	labels := make(map[string]string, len(forms))
	ids := make([]string, 0, len(forms))
	for _, f := range forms {
		if _, seen := labels[f.ID]; seen {
			continue
		}
		labels[f.ID] = f.ID
		ids = append(ids, f.ID)
	}
	sort.Strings(ids)

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0
		for _, u := range ids {
			neighbours := adj[u]
			if len(neighbours) == 0 {
				continue
			}

			weights := make(map[string]float64)
			best := 0.0
			for v, w := range neighbours {
				l := labels[v]
				weights[l] += w
				if weights[l] > best {
					best = weights[l]
				}
			}

			// Ties go to the lexicographically largest label for stability.
			var candidates []string
			for l, w := range weights {
				if w == best {
					candidates = append(candidates, l)
				}
			}
			sort.Strings(candidates)
			next := candidates[len(candidates)-1]

			if labels[u] != next {
				labels[u] = next
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	groups := make(map[string][]string)
	for _, id := range ids {
		groups[labels[id]] = append(groups[labels[id]], id)
	}

	var clusters []model.ConceptCluster
	for label, members := range groups {
		if len(members) >= MinClusterSize {
			clusters = append(clusters, model.ConceptCluster{Label: label, FormIDs: members})
		}
	}
	sortClusters(clusters)
	return clusters, nil
}
