// Package webhook serves the Twilio SMS webhook and the JSON management
// API.
package webhook

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rjcarver/manna/internal/devotion"
	"github.com/rjcarver/manna/internal/store"
)

// Server handles inbound SMS and the management API.
type Server struct {
	store    *store.Store
	devotion *devotion.Service
	router   *gin.Engine
}

// Opts holds configuration for the webhook server.
type Opts struct {
	Store    *store.Store
	Devotion *devotion.Service
}

// New creates a Server with all routes registered.
func New(opts Opts) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("webhook: store is required")
	}
	if opts.Devotion == nil {
		return nil, fmt.Errorf("webhook: devotion service is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		store:    opts.Store,
		devotion: opts.Devotion,
		router:   router,
	}
	s.registerRoutes()
	return s, nil
}

// Router exposes the underlying handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// registerRoutes sets up all routes on the Gin router.
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/webhook/sms", s.handleIncomingSMS)

	api := s.router.Group("/api")
	{
		api.GET("/history/:phone", s.handleHistory)
		api.GET("/schedules", s.handleListSchedules)
		api.POST("/schedules", s.handleCreateSchedule)
		api.DELETE("/schedules/:id", s.handleDeleteSchedule)
		api.GET("/plan", s.handleReadingPlan)
		api.POST("/plan", s.handleAddPlanItem)
		api.GET("/state/:key", s.handleGetState)
		api.PUT("/state/:key", s.handleSetState)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StartOpts holds configuration for running the server.
type StartOpts struct {
	Port int
	Out  io.Writer
}

// Start launches the HTTP server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context, opts StartOpts) error {
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Webhook server listening on :%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("webhook: %w", err)
	}
	return nil
}
