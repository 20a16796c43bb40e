// Package server exposes the formatter registry and render pipeline over HTTP
// so displays can be previewed outside of a host application.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-doublefield/internal/server/middleware"
	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/formatters/details"
	"github.com/goliatone/go-doublefield/pkg/metrics"
	"github.com/goliatone/go-doublefield/pkg/orchestrator"
	"github.com/goliatone/go-doublefield/pkg/render"
)

const shutdownTimeout = 5 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithFormatters sets the formatter registry listed and rendered by the server.
func WithFormatters(registry *formatter.Registry) Option {
	return func(s *Server) {
		s.formatters = registry
	}
}

// WithRenderers sets the renderer registry.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		s.renderers = registry
	}
}

// WithDisplayStore lets clients address stored displays by key.
func WithDisplayStore(store *display.Store) Option {
	return func(s *Server) {
		s.displays = store
	}
}

// WithOrchestrator overrides the pipeline built from the registries.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orch = orch
	}
}

// WithTranslator sets the translator handed to renderers.
func WithTranslator(t formatter.Translator) Option {
	return func(s *Server) {
		s.translator = t
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server is the preview HTTP server.
type Server struct {
	formatters *formatter.Registry
	renderers  *render.Registry
	displays   *display.Store
	orch       *orchestrator.Orchestrator
	translator formatter.Translator
	origins    []string
	logger     *zap.SugaredLogger
	router     chi.Router
}

// New builds a Server and its router.
func New(options ...Option) *Server {
	s := &Server{logger: zap.NewNop().Sugar()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.formatters == nil {
		s.formatters = formatter.NewRegistry()
		s.formatters.MustRegister(details.New(formatter.WithLogger(s.logger)))
	}
	if s.orch == nil {
		s.orch = orchestrator.New(
			orchestrator.WithFormatters(s.formatters),
			orchestrator.WithRegistry(s.renderers),
			orchestrator.WithDisplayStore(s.displays),
			orchestrator.WithLogger(s.logger),
		)
	}
	metrics.Register()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.Metrics)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/formatters", func(r chi.Router) {
		r.Get("/", s.listFormatters)
		r.Get("/{id}", s.getFormatter)
		r.Get("/{id}/summary", s.formatterSummary)
	})
	r.Get("/displays", s.listDisplays)
	r.Post("/render", s.render)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Infow("server shutting down", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}
