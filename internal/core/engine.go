package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenthands/versorium/internal/config"
	"github.com/agenthands/versorium/internal/core/community"
	"github.com/agenthands/versorium/internal/core/ethics"
	"github.com/agenthands/versorium/internal/core/extraction"
	"github.com/agenthands/versorium/internal/core/manager"
	"github.com/agenthands/versorium/internal/core/metalearner"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/logger"
	"github.com/agenthands/versorium/internal/store"
)

var (
	ErrFormNotFound = errors.New("form not found")
	ErrNoStore      = errors.New("no snapshot store configured")
)

// Engine wires the context graph components around one shared Manager.
type Engine struct {
	Graph       *manager.Manager
	Ethics      *ethics.Filter
	MetaLearner *metalearner.Recommender
	Extractor   *extraction.FormExtractor
	Memory      *extraction.ContextMemory
	Clusters    community.Detector
	Store       store.Store // optional

	log *logger.Logger
}

// NewEngine builds the engine from configuration. extractor and st may be nil.
func NewEngine(cfg *config.Config, extractor *extraction.FormExtractor, st store.Store, log *logger.Logger) *Engine {
	log = logger.OrNop(log)

	graph := manager.NewManager(
		manager.WithGeneralizer(manager.SubstringGeneralizer{Marker: cfg.Assimilation.GeneralizedMarker}),
		manager.WithLogger(log),
	)

	clusters, err := community.NewDetector(cfg.Clusters.Algorithm)
	if err != nil {
		log.Warn("falling back to label propagation", "error", err)
		clusters = community.NewLabelPropagationDetector()
	}

	if extractor == nil {
		extractor = extraction.NewFormExtractor(&extraction.PlaceholderAbstraction{}, nil)
	}

	return &Engine{
		Graph: graph,
		Ethics: ethics.NewFilter(cfg.Ethics.Guidelines, graph,
			ethics.WithBiasDetector(ethics.NewPlaceholderBiasDetector(cfg.Ethics.BiasMarkers)),
			ethics.WithPenalty(cfg.Ethics.PenaltyFactor, cfg.Ethics.ScoreFloor),
			ethics.WithLogger(log),
		),
		MetaLearner: metalearner.NewRecommender(graph,
			metalearner.WithAnchor(cfg.Recommender.AnchorID),
			metalearner.WithLogger(log),
		),
		Extractor: extractor,
		Memory:    extraction.NewContextMemory(cfg.Extraction.MemorySize),
		Clusters:  clusters,
		Store:     st,
		log:       log.With("component", "engine"),
	}
}

// Ingest extracts candidate forms from raw input and assimilates them.
func (e *Engine) Ingest(ctx context.Context, raw []byte) ([]model.Form, []model.FormRelation, error) {
	forms, relations, err := e.Extractor.ExtractForms(ctx, raw, e.Memory.Snapshot())
	if err != nil {
		return nil, nil, fmt.Errorf("extraction failed: %w", err)
	}

	e.Graph.Assimilate(forms, relations)

	for _, f := range forms {
		e.Memory.Remember(f.Description)
	}
	return forms, relations, nil
}

// Strategize recommends a strategy for the task and passes it through the
// ethics filter.
func (e *Engine) Strategize(taskDescription string, modelState []float32) model.LearningStrategy {
	strategy := e.MetaLearner.Recommend(taskDescription, modelState)
	e.Ethics.FilterStrategy(&strategy)
	return strategy
}

// EvaluateForm re-scores the stored form with the given id.
func (e *Engine) EvaluateForm(id string) (model.Form, error) {
	form, ok := e.Ethics.EvaluateStored(id)
	if !ok {
		return model.Form{}, fmt.Errorf("%w: %s", ErrFormNotFound, id)
	}
	return form, nil
}

func (e *Engine) ConceptClusters() ([]model.ConceptCluster, error) {
	snap := e.Graph.Snapshot()
	return e.Clusters.Detect(snap.Forms, snap.Relations)
}

// SaveSnapshot persists a copy of the graph. The graph lock is released
// before any I/O starts.
func (e *Engine) SaveSnapshot(ctx context.Context) error {
	if e.Store == nil {
		return ErrNoStore
	}
	snap := e.Graph.Snapshot()
	if err := e.Store.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot restores the last saved graph. A store with nothing saved
// leaves the graph empty.
func (e *Engine) LoadSnapshot(ctx context.Context) error {
	if e.Store == nil {
		return ErrNoStore
	}
	snap, err := e.Store.Load(ctx)
	if errors.Is(err, store.ErrNoSnapshot) {
		e.log.Info("no snapshot to restore, starting with empty graph")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	e.Graph.Restore(snap)
	return nil
}

func (e *Engine) Close(ctx context.Context) error {
	if e.Store == nil {
		return nil
	}
	return e.Store.Close(ctx)
}
