package model

// GraphSnapshot is a point-in-time copy of the context graph.
type GraphSnapshot struct {
	Forms     []Form         `json:"forms"`
	Relations []FormRelation `json:"relations"`
}
