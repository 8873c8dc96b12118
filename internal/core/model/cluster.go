package model

// ConceptCluster is a group of forms densely connected by relations.
type ConceptCluster struct {
	Label   string   `json:"label"`
	FormIDs []string `json:"form_ids"`
}
