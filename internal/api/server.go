// Package api serves read-only analytics over a built collaboration graph.
//
// Every route is a GET. Responses are JSON except the rendered graph
// exports. Errors use the [httputil.ErrorBody] shape with the status given
// by the error code.
//
// The graph store is single-threaded and some queries mutate it
// temporarily (fragmentation trials), so the server serializes every
// request that touches the graph.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/collabgraph/pkg/analytics"
	"github.com/matzehuels/collabgraph/pkg/buildinfo"
	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/httputil"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

// DefaultShutdownTimeout bounds graceful shutdown in [Server.ListenAndServe].
const DefaultShutdownTimeout = 5 * time.Second

// Options configures a [Server].
type Options struct {
	// Top is the default size of ranked responses.
	Top int
	// Gatherer backs GET /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// Server answers analytics queries for one graph.
type Server struct {
	mu      sync.Mutex
	reports singleflight.Group
	graph   *pipeline.Graph
	runner  *pipeline.Runner
	top     int
	logger  *log.Logger
	router  chi.Router
}

// NewServer returns a server over g. Exports go through runner so they
// share its artifact cache.
func NewServer(g *pipeline.Graph, runner *pipeline.Runner, opts Options) *Server {
	if opts.Top <= 0 {
		opts.Top = pipeline.DefaultTop
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	s := &Server{
		graph:  g,
		runner: runner,
		top:    opts.Top,
		logger: opts.Logger,
	}
	s.router = s.routes(opts.Gatherer)
	return s
}

func (s *Server) routes(gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Instrument(s.logger, routePattern))

	r.Get("/healthz", s.handleHealth)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/report", s.handleReport)
		r.Get("/influential", s.handleInfluential)
		r.Get("/communities", s.handleCommunities)
		r.Get("/connection", s.handleConnection)
		r.Get("/fragmentation", s.handleFragmentation)
		r.Get("/users", s.handleUsers)
		r.Get("/users/{label}/closest", s.handleClosest)
		r.Get("/users/{label}/non-direct", s.handleNonDirect)
		r.Get("/graph.{format}", s.handleGraph)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, errs.New(errs.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		return rc.RoutePattern()
	}
	return ""
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
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// analyzer locks the server and returns the analyzer bound to ctx along
// with the unlock func.
func (s *Server) analyzer(ctx context.Context) (*analytics.Analyzer, func()) {
	s.mu.Lock()
	return s.graph.Analyzer.WithContext(ctx), s.mu.Unlock
}

func (s *Server) topParam(r *http.Request) (int, error) {
	n, err := httputil.QueryInt(r, "top", s.top)
	if err != nil {
		return 0, err
	}
	if err := errs.ValidateTopN(n); err != nil {
		return 0, err
	}
	return n, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}
