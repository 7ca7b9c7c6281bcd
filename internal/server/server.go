// Package server serves the listing and article pages, a small JSON API
// and the embedded assets with gin.
//
// Routes:
//   - GET /                 listing, filtered by ?category= or ?q=
//   - GET /article?post=    single article
//   - GET /api/posts        filtered records as JSON
//   - GET /api/categories   distinct categories as JSON
//   - GET /healthz          liveness and load state
//   - GET /static/*         embedded stylesheet and script
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-blogfront/internal/logging"
	"github.com/goliatone/go-blogfront/internal/render"
	"github.com/goliatone/go-blogfront/internal/site"
	"github.com/goliatone/go-blogfront/pkg/interfaces"
)

const shutdownTimeout = 5 * time.Second

// LoadState reports whether posts are loaded, for the health check.
type LoadState interface {
	Loaded() bool
}

// Options configures a Server.
type Options struct {
	Site   *site.Service
	State  LoadState
	Logger interfaces.Logger
	// Debug keeps gin in debug mode.
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server owns the gin engine.
type Server struct {
	engine *gin.Engine
	site   *site.Service
	state  LoadState
	logger interfaces.Logger

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// New builds the engine and registers every route.
func New(opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	s := &Server{
		engine:       gin.New(),
		site:         opts.Site,
		state:        opts.State,
		logger:       logger,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
	}
	s.engine.Use(gin.Recovery(), requestID(), accessLog(logger))
	s.routes()
	return s
}

func (s *Server) routes() {
	pages := s.engine.Group("/", noCache())
	pages.GET("/", s.handleListing)
	pages.GET("/article", s.handleArticle)

	api := s.engine.Group("/api", noCache())
	api.GET("/posts", s.handlePosts)
	api.GET("/post", s.handlePost)
	api.GET("/categories", s.handleCategories)

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.StaticFS("/static", http.FS(render.Assets()))
}

// Handler exposes the engine for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server.shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
