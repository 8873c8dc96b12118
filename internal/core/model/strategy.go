package model

type LearningStrategy struct {
	Description          string            `json:"description"`
	ModelArchitecture    *string           `json:"model_architecture,omitempty"`
	Hyperparameters      map[string]string `json:"hyperparameters"`
	DataAugmentation     bool              `json:"data_augmentation"`
	TransferLearningPath *string           `json:"transfer_learning_path,omitempty"`
	SequenceProcessing   bool              `json:"sequence_processing"`
}

// NewLearningStrategy returns the default (empty) strategy.
func NewLearningStrategy() LearningStrategy {
	return LearningStrategy{Hyperparameters: map[string]string{}}
}

// StringPtr is a small helper for the optional strategy fields.
func StringPtr(s string) *string {
	return &s
}
