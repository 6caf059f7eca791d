package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/collabgraph/pkg/cache"
	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/interaction"
	cgio "github.com/matzehuels/collabgraph/pkg/io"
	"github.com/matzehuels/collabgraph/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Top != DefaultTop {
		t.Errorf("Top = %d, want %d", opts.Top, DefaultTop)
	}
	if opts.Weights != interaction.DefaultWeights() {
		t.Errorf("Weights = %+v, want defaults", opts.Weights)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	bad := Options{Top: -1}
	if err := bad.ValidateAndSetDefaults(); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("negative top error = %v", err)
	}
	bad = Options{Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}
}

func TestDatasetKeyOpts(t *testing.T) {
	opts := Options{Weights: interaction.DefaultWeights()}
	ko := opts.DatasetKeyOpts()
	if ko.Weights["merge"] != 3 {
		t.Errorf("merge weight = %d", ko.Weights["merge"])
	}
	if len(ko.Representations) != 3 {
		t.Errorf("Representations = %v, want all three", ko.Representations)
	}
}

// writeDataset stores a small two-community dataset:
//
//	alice -3- bob -2- carol -2- dave     eve -2- frank
func writeDataset(t *testing.T) string {
	t.Helper()
	records := []interaction.Record{
		{Category: interaction.CategoryMerge, Actor: "bob", ActedUpon: "alice"},
		{Category: interaction.CategoryReview, Actor: "carol", ActedUpon: "bob", State: interaction.StateApproved},
		{Category: interaction.CategoryMention, Actor: "dave", ActedUpon: "carol", Occurrences: 2},
		{Category: interaction.CategoryComment, Actor: "frank", ActedUpon: "eve"},
		{Category: interaction.CategoryMerge, Actor: "eve", ActedUpon: "eve"},
	}
	var buf bytes.Buffer
	if err := cgio.WriteDataset(records, &buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "interactions.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestLoad(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	ds, err := r.Load(ctx, writeDataset(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 5 {
		t.Errorf("records = %d, want 5", len(ds.Records))
	}

	_, err = r.Load(ctx, filepath.Join(t.TempDir(), "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(bad, []byte(`{"records": [{"category": "fork"}]}`), 0o644)
	_, err = r.Load(ctx, bad)
	if !errs.Is(err, errs.ErrCodeInvalidInput) || !strings.Contains(err.Error(), "record 0") {
		t.Errorf("bad category error = %v", err)
	}
}

func TestBuildAndAnalyze(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	ds, err := r.Load(ctx, writeDataset(t))
	if err != nil {
		t.Fatal(err)
	}

	g, err := r.Build(ctx, ds, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Cached {
		t.Error("NullCache build reported cached")
	}
	if g.Stats == nil || g.Stats.SelfInteraction != 1 {
		t.Errorf("Stats = %+v, want one self interaction", g.Stats)
	}
	if g.Store.VertexCount() != 6 {
		t.Fatalf("VertexCount = %d, want 6", g.Store.VertexCount())
	}

	report, err := r.Analyze(ctx, g, Options{Top: 2, User: "alice"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.ID == "" || report.GeneratedAt.IsZero() {
		t.Error("report missing id or timestamp")
	}
	if got := report.Influencers; len(got) != 2 || got[0].Label != "bob" || got[1].Label != "carol" {
		t.Errorf("Influencers = %v, want bob then carol", got)
	}
	if len(report.Communities) != 2 {
		t.Errorf("Communities = %v, want 2", report.Communities)
	}
	if report.Fragmenting == nil || report.Fragmenting.Label != "bob" || report.Fragmenting.Increase != 1 {
		t.Errorf("Fragmenting = %+v, want bob +1", report.Fragmenting)
	}
	if report.Focus == nil || len(report.Focus.Closest) != 1 || report.Focus.Closest[0].Label != "bob" {
		t.Errorf("Focus = %+v", report.Focus)
	}
	if nd := report.Focus.NonDirect; len(nd) != 2 || nd[0].Label != "carol" || nd[0].Score != 2 {
		t.Errorf("NonDirect = %v", nd)
	}

	if _, err := json.Marshal(report); err != nil {
		t.Errorf("report does not marshal: %v", err)
	}

	_, err = r.Analyze(ctx, g, Options{User: "mallory"})
	if !errs.Is(err, errs.ErrCodeUserNotFound) {
		t.Errorf("unknown user error = %v", err)
	}
}

func TestBuildCache(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()
	ds, _ := r.Load(ctx, writeDataset(t))

	first, err := r.Build(ctx, ds, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Build(ctx, ds, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second build missed the cache")
	}
	if second.Hash != first.Hash {
		t.Errorf("cached graph hash %s != %s", second.Hash, first.Hash)
	}
	if second.Stats != nil {
		t.Error("cached graph should carry no ingestion stats")
	}

	w := interaction.DefaultWeights()
	w.Merge = 10
	third, _ := r.Build(ctx, ds, Options{Weights: w})
	if third.Cached {
		t.Error("different weights hit the cache")
	}

	refreshed, _ := r.Build(ctx, ds, Options{Refresh: true})
	if refreshed.Cached {
		t.Error("Refresh hit the cache")
	}
}

func TestExport(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()
	ds, _ := r.Load(ctx, writeDataset(t))
	g, _ := r.Build(ctx, ds, Options{})

	opts := Options{Formats: []string{FormatJSON, FormatDOT}, Highlight: []string{"bob"}}
	artifacts, hit, err := r.Export(ctx, g, opts)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if hit {
		t.Error("first export hit the cache")
	}
	if !bytes.Contains(artifacts[FormatJSON], []byte(`"label": "alice"`)) {
		t.Errorf("json artifact:\n%s", artifacts[FormatJSON])
	}
	if !strings.Contains(string(artifacts[FormatDOT]), "graph G {") {
		t.Errorf("dot artifact:\n%s", artifacts[FormatDOT])
	}

	again, hit, err := r.Export(ctx, g, opts)
	if err != nil || !hit {
		t.Fatalf("second export hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(again[FormatDOT], artifacts[FormatDOT]) {
		t.Error("cached artifact differs")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu   sync.Mutex
	hits map[string]int
	sets map[string]int
}

func (c *countingCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits[keyType]++
}

func (c *countingCacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[keyType]++
}

func TestCacheHooks(t *testing.T) {
	hooks := &countingCacheHooks{hits: map[string]int{}, sets: map[string]int{}}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newFileRunner(t)
	ctx := context.Background()
	ds, _ := r.Load(ctx, writeDataset(t))
	g, _ := r.Build(ctx, ds, Options{})
	_, _ = r.Build(ctx, ds, Options{})
	_, _, _ = r.Export(ctx, g, Options{})
	_, _, _ = r.Export(ctx, g, Options{})

	if hooks.sets[keyTypeGraph] != 1 || hooks.hits[keyTypeGraph] != 1 {
		t.Errorf("graph hooks sets=%d hits=%d, want 1 and 1", hooks.sets[keyTypeGraph], hooks.hits[keyTypeGraph])
	}
	if hooks.sets[keyTypeArtifact] != 1 || hooks.hits[keyTypeArtifact] != 1 {
		t.Errorf("artifact hooks sets=%d hits=%d, want 1 and 1", hooks.sets[keyTypeArtifact], hooks.hits[keyTypeArtifact])
	}
}
