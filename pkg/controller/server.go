// Package controller exposes the query API and the generation trigger
// over HTTP. It is a thin routing layer: all logic lives in the
// content usecase.
package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/dailysync/upsc/pkg/model"
	"github.com/dailysync/upsc/pkg/utils/logging"
	"github.com/gin-gonic/gin"
)

// UseCase is the part of the content usecase the HTTP surface needs.
type UseCase interface {
	Generate(ctx context.Context, rawDate string) (*model.GenerationSummary, error)
	Get(ctx context.Context, rawDate string) (*model.DailyContent, error)
	Dates(ctx context.Context) ([]model.DateKey, error)
}

// Server routes HTTP requests to the content usecase.
type Server struct {
	uc     UseCase
	engine *gin.Engine
}

// New creates the HTTP server with all routes registered.
func New(uc UseCase) *Server {
	s := &Server{
		uc:     uc,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/", s.root)
	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api")
	api.GET("/content/:date", s.getContent)
	api.GET("/dates", s.getDates)
	api.POST("/generate/:date", s.startGeneration)

	return s
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the router, for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to DailySync UPSC",
		"status":  "running",
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) getContent(c *gin.Context) {
	date := c.Param("date")

	content, err := s.uc.Get(c.Request.Context(), date)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, content)
	case errors.Is(err, model.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid date, expected DD-MM-YYYY"})
	case errors.Is(err, model.ErrContentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "no content found for date: " + date})
	default:
		logging.From(c.Request.Context()).Error("failed to get content", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}

func (s *Server) getDates(c *gin.Context) {
	dates, err := s.uc.Dates(c.Request.Context())
	if err != nil {
		logging.From(c.Request.Context()).Error("failed to list dates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		return
	}
	if dates == nil {
		dates = []model.DateKey{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// startGeneration validates the date, kicks the pipeline off in the
// background and acknowledges immediately. The caller never observes
// the outcome here; failure shows up as a not-found on the query side
// and in the logs.
func (s *Server) startGeneration(c *gin.Context) {
	date := c.Param("date")
	if _, err := model.ParseDateKey(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid date, expected DD-MM-YYYY"})
		return
	}

	// The pipeline outlives the request; detach it from the request
	// context but keep the logger.
	ctx := logging.With(context.Background(), logging.From(c.Request.Context()))
	go func() {
		if _, err := s.uc.Generate(ctx, date); err != nil {
			logging.From(ctx).Error("background generation failed", "date", date, "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Content generation started",
		"date":    date,
	})
}
