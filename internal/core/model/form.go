package model

// Form is an abstract concept node in the context graph.
type Form struct {
	ID             string            `json:"id"`
	Description    string            `json:"description"`
	Representation []float32         `json:"representation"`
	MetaProperties map[string]string `json:"meta_properties"`
	ExamplesCount  int               `json:"examples_count"`
	EthicalScore   float32           `json:"ethical_score"` // 0-1, 1 = fully compliant
}

// Clone returns a deep copy so stored forms never alias caller memory.
func (f Form) Clone() Form {
	out := f
	if f.Representation != nil {
		out.Representation = append([]float32(nil), f.Representation...)
	}
	if f.MetaProperties != nil {
		out.MetaProperties = make(map[string]string, len(f.MetaProperties))
		for k, v := range f.MetaProperties {
			out.MetaProperties[k] = v
		}
	}
	return out
}
