// Package server exposes the assessment engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dshills/innoscore/internal/answers"
	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/metrics"
	"github.com/dshills/innoscore/internal/questionnaire"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures a Server. Empty CORSOrigins disables CORS handling.
type Options struct {
	Addr            string
	RequireComplete bool
	CORSOrigins     []string
}

// Server serves the questionnaire and runs assessments.
type Server struct {
	engine   *assessment.Engine
	opts     Options
	logger   *zap.Logger
	recorder *metrics.Recorder
	registry *prometheus.Registry
	router   *gin.Engine
}

// New wires routes for engine. Metrics are registered on a private registry.
// The gin mode is left to the caller.
func New(engine *assessment.Engine, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		engine:   engine,
		opts:     opts,
		logger:   logger,
		recorder: metrics.New(reg),
		registry: reg,
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery(), requestLogger(logger))
	if len(opts.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = opts.CORSOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		s.router.Use(cors.New(corsConfig))
	}

	s.router.GET("/api/health", s.handleHealth)
	api := s.router.Group("/api/innovation")
	api.GET("/questions", s.handleQuestions)
	api.GET("/tiers", s.handleTiers)
	api.POST("/analyze", s.handleAnalyze)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Recorder exposes the server's metrics.
func (s *Server) Recorder() *metrics.Recorder { return s.recorder }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.Run: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Run: shutdown: %w", err)
		}
		return nil
	}
}

func requestLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type questionsResponse struct {
	Success        bool                   `json:"success"`
	Modules        []questionnaire.Module `json:"modules"`
	TotalQuestions int                    `json:"total_questions"`
	Scale          map[int]string         `json:"scale"`
}

func (s *Server) handleQuestions(c *gin.Context) {
	scale := make(map[int]string)
	for v := questionnaire.MinLikert; v <= questionnaire.MaxLikert; v++ {
		scale[v] = questionnaire.ScaleLabel(v)
	}
	c.JSON(http.StatusOK, questionsResponse{
		Success:        true,
		Modules:        s.engine.Modules(),
		TotalQuestions: s.engine.Catalog().TotalQuestions(),
		Scale:          scale,
	})
}

func (s *Server) handleTiers(c *gin.Context) {
	table := s.engine.Tiers()
	type tierEntry struct {
		assessment.Tier
		LowerBound float64 `json:"lower_bound"`
	}
	var out []tierEntry
	for _, th := range table.Thresholds() {
		t, _ := table.Tier(th.Level)
		out = append(out, tierEntry{Tier: t, LowerBound: th.LowerBound})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tiers": out})
}

type analyzeRequest struct {
	CompanyName string          `json:"company_name"`
	Answers     []answers.Entry `json:"answers"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	*assessment.Result
	ChartData  assessment.ChartData   `json:"chart_data"`
	Completion *assessment.Completion `json:"completion,omitempty"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.recorder.Rejected("request")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}
	a, err := answers.FromEntries(req.Answers)
	if err != nil {
		s.fail(c, err)
		return
	}

	if strings.TrimSpace(req.CompanyName) == "" {
		s.fail(c, &assessment.ValidationError{Field: "company_name", Message: "required"})
		return
	}

	progress := s.engine.Progress(a)
	if s.opts.RequireComplete && !progress.Complete() {
		s.recorder.Rejected("validation")
		c.JSON(http.StatusBadRequest, gin.H{
			"detail":  fmt.Sprintf("%d questions left to answer", progress.Total-progress.Answered),
			"missing": progress.Missing(),
		})
		return
	}

	r, err := s.engine.Run(req.CompanyName, a)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.recorder.Completed(string(r.Tier.Level), r.OverallPercentage, len(a))
	c.JSON(http.StatusOK, analyzeResponse{
		Success:    true,
		Result:     r,
		ChartData:  r.ChartData(),
		Completion: &progress,
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assessment.ErrValidation):
		s.recorder.Rejected("validation")
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, assessment.ErrRange):
		s.recorder.Rejected("range")
		s.logger.Error("assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal scoring error"})
	default:
		s.recorder.Rejected("internal")
		s.logger.Error("assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
