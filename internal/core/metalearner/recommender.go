// Package metalearner recollects forms related to a fixed anchor concept and
// turns them into a learning strategy recommendation.
package metalearner

import (
	"github.com/agenthands/versorium/internal/core/manager"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/logger"
)

const DefaultAnchorID = "GEN_Objectness"

type Recommender struct {
	graph      *manager.Manager
	anchorID   string
	classifier TaskClassifier
	log        *logger.Logger
}

type Option func(*Recommender)

func WithAnchor(id string) Option {
	return func(r *Recommender) {
		if id != "" {
			r.anchorID = id
		}
	}
}

func WithClassifier(c TaskClassifier) Option {
	return func(r *Recommender) {
		if c != nil {
			r.classifier = c
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(r *Recommender) {
		r.log = logger.OrNop(l)
	}
}

func NewRecommender(graph *manager.Manager, opts ...Option) *Recommender {
	r := &Recommender{
		graph:      graph,
		anchorID:   DefaultAnchorID,
		classifier: DefaultMarkerClassifier(),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With("component", "meta_learner")
	return r
}

// Recommend classifies the task from the anchor's IS_A neighbourhood and
// returns the matching strategy template. modelState is reserved for
// refinement and currently ignored.
func (r *Recommender) Recommend(taskDescription string, modelState []float32) model.LearningStrategy {
	relevant := r.graph.RelatedForms(r.anchorID, model.RelationIsA)
	kind := r.classifier.Classify(taskDescription, relevant)
	strategy := Template(kind)

	recommendations.WithLabelValues(string(kind)).Inc()
	r.log.Info("recollected context and generated strategy",
		"task", taskDescription,
		"anchor", r.anchorID,
		"related_forms", len(relevant),
		"kind", kind,
	)
	return strategy
}

// Template returns a fresh strategy for kind.
func Template(kind TaskKind) model.LearningStrategy {
	s := model.NewLearningStrategy()
	switch kind {
	case TaskVision:
		s.ModelArchitecture = model.StringPtr("ResNet-50")
		s.Hyperparameters["learning_rate"] = "0.001"
		s.DataAugmentation = true
		s.TransferLearningPath = model.StringPtr("imagenet_pretrained")
		s.Description = "Identified as image task, recommending vision strategy."
	case TaskSequence:
		s.ModelArchitecture = model.StringPtr("LSTM")
		s.Hyperparameters["learning_rate"] = "0.005"
		s.SequenceProcessing = true
		s.Description = "Identified as time series, recommending sequential strategy."
	default:
		s.Description = "No specific Forms recollected, using default strategy."
	}
	return s
}
