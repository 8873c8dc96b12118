package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenthands/versorium/internal/core"
	"github.com/agenthands/versorium/internal/core/ethics"
	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/logger"
)

const defaultTaskDescription = "generic task"

type Server struct {
	Engine *core.Engine
	log    *logger.Logger
}

func NewServer(engine *core.Engine, log *logger.Logger) *Server {
	return &Server{
		Engine: engine,
		log:    logger.OrNop(log).With("component", "http"),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	ctx := r.Group("/context")
	ctx.GET("/forms", s.ListForms)
	ctx.GET("/forms/:id/related", s.RelatedForms)
	ctx.POST("/forms/:id/evaluate", s.EvaluateForm)
	ctx.POST("/assimilate", s.Assimilate)
	ctx.POST("/extract", s.Extract)
	ctx.POST("/strategy", s.Strategy)
	ctx.POST("/strategy/filter", s.FilterStrategy)
	ctx.POST("/outcomes/alignment", s.OutcomeAlignment)
	ctx.GET("/clusters", s.Clusters)
	ctx.POST("/snapshot", s.SaveSnapshot)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) ListForms(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine.Graph.Forms())
}

func (s *Server) RelatedForms(c *gin.Context) {
	forms := s.Engine.Graph.RelatedForms(c.Param("id"), c.Query("relation_type"))
	c.JSON(http.StatusOK, forms)
}

type AssimilateRequest struct {
	Forms     []model.Form         `json:"forms"`
	Relations []model.FormRelation `json:"relations"`
}

func (s *Server) Assimilate(c *gin.Context) {
	var req AssimilateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.Engine.Graph.Assimilate(req.Forms, req.Relations)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) Extract(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	forms, relations, err := s.Engine.Ingest(c.Request.Context(), raw)
	if err != nil {
		s.log.Error("failed to ingest input", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract forms"})
		return
	}

	c.JSON(http.StatusOK, AssimilateRequest{Forms: forms, Relations: relations})
}

type StrategyRequest struct {
	TaskDescription string    `json:"task_description"`
	ModelState      []float32 `json:"model_state"`
}

func (s *Server) Strategy(c *gin.Context) {
	var req StrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.TaskDescription == "" {
		req.TaskDescription = defaultTaskDescription
	}

	c.JSON(http.StatusOK, s.Engine.Strategize(req.TaskDescription, req.ModelState))
}

func (s *Server) FilterStrategy(c *gin.Context) {
	var strategy model.LearningStrategy
	if err := c.ShouldBindJSON(&strategy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strategy.Hyperparameters == nil {
		strategy.Hyperparameters = map[string]string{}
	}

	s.Engine.Ethics.FilterStrategy(&strategy)
	c.JSON(http.StatusOK, strategy)
}

func (s *Server) EvaluateForm(c *gin.Context) {
	form, err := s.Engine.EvaluateForm(c.Param("id"))
	if errors.Is(err, core.ErrFormNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate form"})
		return
	}
	c.JSON(http.StatusOK, form)
}

type AlignmentRequest struct {
	Outputs   []float32 `json:"outputs"`
	Threshold float32   `json:"threshold"`
}

func (s *Server) OutcomeAlignment(c *gin.Context) {
	var req AlignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	aligned, err := s.Engine.Ethics.MonitorOutcomeAlignment(req.Outputs, req.Threshold)
	if errors.Is(err, ethics.ErrEmptyInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to monitor alignment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"aligned": aligned})
}

func (s *Server) Clusters(c *gin.Context) {
	clusters, err := s.Engine.ConceptClusters()
	if err != nil {
		s.log.Error("failed to detect clusters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect clusters"})
		return
	}
	if clusters == nil {
		clusters = []model.ConceptCluster{}
	}
	c.JSON(http.StatusOK, gin.H{"clusters": clusters})
}

func (s *Server) SaveSnapshot(c *gin.Context) {
	err := s.Engine.SaveSnapshot(c.Request.Context())
	if errors.Is(err, core.ErrNoStore) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No snapshot store configured"})
		return
	}
	if err != nil {
		s.log.Error("failed to save snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save snapshot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
