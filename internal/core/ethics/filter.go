package ethics

import (
	"errors"
	"slices"
	"strings"

	"github.com/agenthands/versorium/internal/core/manager"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/logger"
)

const (
	GuidelineNoAdversarial  = "no_adversarial"
	GuidelineEnsureFairness = "ensure_fairness"

	DefaultPenaltyFactor = float32(0.7)
	DefaultScoreFloor    = float32(0.1)

	adversarialMarker     = "adversarial"
	adversarialNote       = " (Modified: Adversarial aspect removed for ethical reasons)"
	compliantArchitecture = "Ethical_RobustNet"
)

// ErrEmptyInput is returned when alignment is requested for zero outputs.
var ErrEmptyInput = errors.New("ethics: outcome alignment requires at least one output")

type Filter struct {
	guidelines []string
	graph      *manager.Manager
	detector   BiasDetector
	penalty    float32
	floor      float32
	log        *logger.Logger
}

type Option func(*Filter)

func WithBiasDetector(d BiasDetector) Option {
	return func(f *Filter) {
		if d != nil {
			f.detector = d
		}
	}
}

func WithPenalty(factor, floor float32) Option {
	return func(f *Filter) {
		if factor > 0 {
			f.penalty = factor
		}
		if floor > 0 {
			f.floor = floor
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(f *Filter) {
		f.log = logger.OrNop(l)
	}
}

// NewFilter builds a filter that persists score updates through graph, the
// same manager (and lock) used for assimilation.
func NewFilter(guidelines []string, graph *manager.Manager, opts ...Option) *Filter {
	f := &Filter{
		guidelines: append([]string(nil), guidelines...),
		graph:      graph,
		detector:   NewPlaceholderBiasDetector(nil),
		penalty:    DefaultPenaltyFactor,
		floor:      DefaultScoreFloor,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With("component", "ethical_filter")
	return f
}

func (f *Filter) Guidelines() []string {
	return append([]string(nil), f.guidelines...)
}

func (f *Filter) HasGuideline(tag string) bool {
	return slices.Contains(f.guidelines, tag)
}

// EvaluateForm penalizes a flagged form, clamps its score to the floor and
// writes it back to the graph under its id.
func (f *Filter) EvaluateForm(form *model.Form) {
	flagged := f.score(form)
	f.graph.PutForm(*form)
	f.logPenalty(*form, flagged)
}

// EvaluateStored re-scores the stored form with the given id. The read, the
// scoring and the write back happen under one graph write lock, so
// concurrent evaluations and assimilations are never lost.
func (f *Filter) EvaluateStored(id string) (model.Form, bool) {
	flagged := false
	form, ok := f.graph.Update(id, func(form *model.Form) {
		flagged = f.score(form)
	})
	if ok {
		f.logPenalty(form, flagged)
	}
	return form, ok
}

// score applies the penalty and floor in place and reports whether the
// detector flagged the form.
func (f *Filter) score(form *model.Form) bool {
	score := form.EthicalScore
	flagged := f.detector.Flagged(*form)
	if flagged {
		score *= f.penalty
	}
	form.EthicalScore = max(score, f.floor)
	return flagged
}

func (f *Filter) logPenalty(form model.Form, flagged bool) {
	if !flagged {
		return
	}
	ethicsPenalties.Inc()
	f.log.Warn("form shows potential ethical concerns", "form_id", form.ID, "score", form.EthicalScore)
}

// FilterStrategy rewrites a strategy that relies on a technique forbidden
// by the configured guidelines.
func (f *Filter) FilterStrategy(strategy *model.LearningStrategy) {
	if strings.Contains(strategy.Description, adversarialMarker) && f.HasGuideline(GuidelineNoAdversarial) {
		strategy.Description += adversarialNote
		strategy.ModelArchitecture = model.StringPtr(compliantArchitecture)
		strategiesModified.Inc()
		f.log.Info("strategy modified for ethical compliance")
	}
}

// MonitorOutcomeAlignment reports whether the mean of outputs exceeds threshold.
func (f *Filter) MonitorOutcomeAlignment(outputs []float32, threshold float32) (bool, error) {
	if len(outputs) == 0 {
		return false, ErrEmptyInput
	}
	var sum float32
	for _, v := range outputs {
		sum += v
	}
	avg := sum / float32(len(outputs))
	aligned := avg > threshold
	if !aligned {
		f.log.Warn("ethical misalignment detected in model outcome", "avg_output", avg, "threshold", threshold)
	}
	return aligned, nil
}
