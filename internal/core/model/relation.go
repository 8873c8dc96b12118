package model

// Common relation tags. RelationType is open; these are not enforced.
const (
	RelationIsA         = "IS_A"
	RelationPartOf      = "PART_OF"
	RelationCauses      = "CAUSES"
	RelationAnalogousTo = "ANALOGOUS_TO"
)

// FormRelation is a directed, typed edge. Endpoints may reference forms
// that are not (yet) in the graph.
type FormRelation struct {
	SourceFormID string  `json:"source_form_id"`
	TargetFormID string  `json:"target_form_id"`
	RelationType string  `json:"relation_type"`
	Strength     float32 `json:"strength"`
}
