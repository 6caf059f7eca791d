package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/collabgraph/pkg/analytics"
	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/httputil"
	cgio "github.com/matzehuels/collabgraph/pkg/io"
	"github.com/matzehuels/collabgraph/pkg/observability"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

// alice -3- bob -2- carol     dave -1- erin
const dataset = `{"records": [
  {"category": "merge", "actor": "bob", "acted_upon": "alice"},
  {"category": "review", "actor": "carol", "acted_upon": "bob", "state": "APPROVED"},
  {"category": "mention", "actor": "erin", "acted_upon": "dave"}
]}`

func newTestServer(t *testing.T, gatherer prometheus.Gatherer) *Server {
	t.Helper()
	ds, err := cgio.ReadDataset(strings.NewReader(dataset))
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	g, err := runner.Build(context.Background(), ds, pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(g, runner, Options{Top: 3, Gatherer: gatherer, Logger: logger})
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func TestStatusCodes(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		path string
		want int
	}{
		{"/healthz", http.StatusOK},
		{"/v1/summary", http.StatusOK},
		{"/v1/report", http.StatusOK},
		{"/v1/report?user=alice", http.StatusOK},
		{"/v1/report?user=mallory", http.StatusNotFound},
		{"/v1/influential", http.StatusOK},
		{"/v1/influential?top=0", http.StatusBadRequest},
		{"/v1/influential?top=x", http.StatusBadRequest},
		{"/v1/communities", http.StatusOK},
		{"/v1/connection", http.StatusOK},
		{"/v1/fragmentation", http.StatusOK},
		{"/v1/users", http.StatusOK},
		{"/v1/users/alice/closest", http.StatusOK},
		{"/v1/users/mallory/closest", http.StatusNotFound},
		{"/v1/users/alice/non-direct", http.StatusOK},
		{"/v1/graph.json", http.StatusOK},
		{"/v1/graph.dot", http.StatusOK},
		{"/v1/graph.png", http.StatusBadRequest},
		{"/metrics", http.StatusNotFound},
		{"/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if rec := get(t, s, tt.path); rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d: %s", tt.path, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestInfluential(t *testing.T) {
	s := newTestServer(t, nil)
	body := decode[struct {
		Users []analytics.Ranked `json:"users"`
	}](t, get(t, s, "/v1/influential?top=2"))

	if len(body.Users) != 2 || body.Users[0].Label != "bob" || body.Users[0].Score != 5 {
		t.Errorf("users = %v, want bob (5) first", body.Users)
	}
}

func TestClosest(t *testing.T) {
	s := newTestServer(t, nil)
	body := decode[struct {
		User  string             `json:"user"`
		Users []analytics.Ranked `json:"users"`
	}](t, get(t, s, "/v1/users/alice/non-direct"))

	if body.User != "alice" || len(body.Users) != 1 || body.Users[0].Label != "carol" {
		t.Errorf("non-direct = %+v", body)
	}

	rec := get(t, s, "/v1/users/mallory/closest")
	errBody := decode[httputil.ErrorBody](t, rec)
	if errBody.Code != errs.ErrCodeUserNotFound {
		t.Errorf("code = %s, want USER_NOT_FOUND", errBody.Code)
	}
}

func TestFragmentationLeavesGraphIntact(t *testing.T) {
	s := newTestServer(t, nil)
	before := get(t, s, "/v1/graph.json").Body.String()

	body := decode[struct {
		Found bool                    `json:"found"`
		User  analytics.Fragmentation `json:"user"`
	}](t, get(t, s, "/v1/fragmentation"))
	if !body.Found || body.User.Label != "bob" {
		t.Errorf("fragmentation = %+v, want bob", body)
	}

	if after := get(t, s, "/v1/graph.json").Body.String(); after != before {
		t.Error("graph changed after fragmentation query")
	}
}

func TestGraphExportContentType(t *testing.T) {
	s := newTestServer(t, nil)
	rec := get(t, s, "/v1/graph.dot?highlight=bob,carol")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `fillcolor="#ffcc66"`) {
		t.Errorf("highlight missing:\n%s", rec.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.Register(observability.NewPrometheusHooks(reg))
	t.Cleanup(observability.Reset)

	s := newTestServer(t, reg)
	get(t, s, "/v1/summary")
	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `collabgraph_http_requests_total{code="200",method="GET",route="/v1/summary"}`) {
		t.Errorf("request metric missing:\n%s", rec.Body.String())
	}
}
