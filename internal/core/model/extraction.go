package model

// ExtractedGraph matches the JSON an LLM is asked to produce when
// proposing symbolic forms and relations.
type ExtractedGraph struct {
	Forms     []ExtractedForm `json:"forms"`
	Relations []FormRelation  `json:"relations"`
}

type ExtractedForm struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
