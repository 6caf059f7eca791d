package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/collabgraph/pkg/analytics"
	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/httputil"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	a, unlock := s.analyzer(r.Context())
	defer unlock()

	summary, err := a.Summary()
	if err != nil {
		httputil.WriteError(w, errs.Wrap(errs.ErrCodeInternal, err, "summary"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	top, err := s.topParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	user := r.URL.Query().Get("user")

	// Identical concurrent requests share one computation, so it must not
	// die with whichever caller started it.
	ctx := context.WithoutCancel(r.Context())
	key := fmt.Sprintf("%d/%s", top, user)
	v, err, _ := s.reports.Do(key, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.runner.Analyze(ctx, s.graph, pipeline.Options{Top: top, User: user})
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v.(*pipeline.Report))
}

func (s *Server) handleInfluential(w http.ResponseWriter, r *http.Request) {
	top, err := s.topParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	a, unlock := s.analyzer(r.Context())
	defer unlock()

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"users": a.MostInfluentialUsers(top)})
}

func (s *Server) handleCommunities(w http.ResponseWriter, r *http.Request) {
	a, unlock := s.analyzer(r.Context())
	defer unlock()

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"communities": a.FindCommunities()})
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	a, unlock := s.analyzer(r.Context())
	defer unlock()

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"connection_level": a.ConnectionLevel()})
}

func (s *Server) handleFragmentation(w http.ResponseWriter, r *http.Request) {
	a, unlock := s.analyzer(r.Context())
	defer unlock()

	frag, found, err := a.FindMostFragmentingUser()
	if err != nil {
		httputil.WriteError(w, errs.Wrap(errs.ErrCodeInternal, err, "fragmentation"))
		return
	}
	body := map[string]any{"found": found}
	if found {
		body["user"] = frag
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	a, unlock := s.analyzer(r.Context())
	defer unlock()

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"users": a.Users()})
}

func (s *Server) handleClosest(w http.ResponseWriter, r *http.Request) {
	s.closest(w, r, (*analytics.Analyzer).ClosestUsers)
}

func (s *Server) handleNonDirect(w http.ResponseWriter, r *http.Request) {
	s.closest(w, r, (*analytics.Analyzer).ClosestNonDirectUsers)
}

func (s *Server) closest(w http.ResponseWriter, r *http.Request, query func(*analytics.Analyzer, string, int) []analytics.Ranked) {
	top, err := s.topParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	label := chi.URLParam(r, "label")

	a, unlock := s.analyzer(r.Context())
	defer unlock()

	if _, ok := a.Lookup(label); !ok {
		httputil.WriteError(w, errs.New(errs.ErrCodeUserNotFound, "user %q is not in the graph", label))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"user":  label,
		"users": query(a, label, top),
	})
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	artifacts, _, err := s.runner.Export(r.Context(), s.graph, pipeline.Options{
		Formats:   []string{format},
		Highlight: splitList(r.URL.Query().Get("highlight")),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}
