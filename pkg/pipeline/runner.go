package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/collabgraph/pkg/analytics"
	"github.com/matzehuels/collabgraph/pkg/cache"
	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/interaction"
	cgio "github.com/matzehuels/collabgraph/pkg/io"
	"github.com/matzehuels/collabgraph/pkg/observability"
	"github.com/matzehuels/collabgraph/pkg/render/nodelink"
)

// Cache key types reported to cache hooks.
const (
	keyTypeGraph    = "graph"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options, but a built
// [Graph] is not safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads the dataset file at path.
func (r *Runner) Load(ctx context.Context, path string) (ds *cgio.Dataset, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	defer func() {
		n := 0
		if ds != nil {
			n = len(ds.Records)
		}
		hooks.OnLoadComplete(ctx, path, n, time.Since(start), err)
	}()

	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	ds, err = cgio.ImportDataset(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "dataset %s not found", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "load dataset")
	}

	r.Logger.Info("loaded dataset",
		"path", path,
		"records", len(ds.Records),
		"duration", time.Since(start))
	return ds, nil
}

// Build turns a dataset into a graph, serving it from cache when the same
// dataset was built with the same options before.
func (r *Runner) Build(ctx context.Context, ds *cgio.Dataset, opts Options) (g *Graph, err error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	start := time.Now()
	defer func() {
		if g != nil {
			edges, _ := g.Store.EdgeCount()
			hooks.OnBuildComplete(ctx, g.Store.VertexCount(), edges, time.Since(start), nil)
		} else {
			hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		}
	}()

	key := r.Keyer.DatasetKey(ds.Hash, opts.DatasetKeyOpts())
	if !opts.Refresh {
		if g := r.cachedGraph(ctx, key, opts); g != nil {
			r.Logger.Info("built graph",
				"vertices", g.Store.VertexCount(),
				"cached", true,
				"duration", time.Since(start))
			return g, nil
		}
	}

	acc, err := interaction.Accumulate(ds.Records, opts.Weights)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "accumulate")
	}
	hooks.OnBuildStart(ctx, len(acc.Users()))
	store, err := interaction.Build(acc, opts.Kinds...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "build graph")
	}
	data, err := cgio.MarshalGraph(store)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "serialize graph")
	}

	if err := r.Cache.Set(ctx, key, data, ttlOr(opts.GraphTTL, cache.TTLGraph)); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeGraph, len(data))
	}

	stats := acc.Stats
	g = &Graph{
		Store:    store,
		Analyzer: analytics.New(store).WithContext(ctx),
		Hash:     cache.Hash(data),
		Stats:    &stats,
	}
	r.Logger.Info("built graph",
		"vertices", store.VertexCount(),
		"pairs", len(acc.Pairs()),
		"dropped", stats.Dropped(),
		"duration", time.Since(start))
	return g, nil
}

func (r *Runner) cachedGraph(ctx context.Context, key string, opts Options) *Graph {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
		return nil
	}
	store, err := cgio.ReadGraph(bytes.NewReader(data), opts.Kinds...)
	if err != nil {
		// Unreadable entries fall through to a rebuild that overwrites them.
		r.Logger.Debug("discarding cached graph", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
		return nil
	}
	observability.Cache().OnCacheHit(ctx, keyTypeGraph)
	return &Graph{
		Store:    store,
		Analyzer: analytics.New(store).WithContext(ctx),
		Hash:     cache.Hash(data),
		Cached:   true,
	}
}

// Analyze computes a full report for g.
//
// A focus user that is not in the graph is a USER_NOT_FOUND error.
func (r *Runner) Analyze(ctx context.Context, g *Graph, opts Options) (*Report, error) {
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, err
	}
	start := time.Now()
	a := g.Analyzer.WithContext(ctx)

	summary, err := a.Summary()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "summary")
	}
	report := &Report{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		GraphHash:       g.Hash,
		Summary:         summary,
		Influencers:     a.MostInfluentialUsers(opts.Top),
		Communities:     a.FindCommunities(),
		ConnectionLevel: summary.ConnectionLevel,
		Ingestion:       g.Stats,
	}

	frag, found, err := a.FindMostFragmentingUser()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "fragmentation")
	}
	if found {
		report.Fragmenting = &frag
	}

	if opts.User != "" {
		if _, ok := a.Lookup(opts.User); !ok {
			return nil, errs.New(errs.ErrCodeUserNotFound, "user %q is not in the graph", opts.User)
		}
		report.Focus = &Focus{
			User:      opts.User,
			Closest:   a.ClosestUsers(opts.User, opts.Top),
			NonDirect: a.ClosestNonDirectUsers(opts.User, opts.Top),
		}
	}

	r.Logger.Info("analyzed graph",
		"communities", len(report.Communities),
		"connection_level", fmt.Sprintf("%.2f%%", report.ConnectionLevel),
		"duration", time.Since(start))
	return report, nil
}

// Export renders g in every requested format. The second result reports
// whether all artifacts came from cache.
func (r *Runner) Export(ctx context.Context, g *Graph, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(g.Hash, opts.ArtifactKeyOpts(format))
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		allCached = false
		break
	}
	if allCached {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}
	ttl := ttlOr(opts.ArtifactTTL, cache.TTLArtifact)
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(g.Hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	r.Logger.Info("exported graph",
		"formats", opts.Formats,
		"duration", time.Since(start))
	return rendered, false, nil
}

// Render produces every requested format without touching the cache.
// The store is read once; formats are then rendered concurrently from the
// dumped data.
func Render(ctx context.Context, g *Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, err
	}
	data, err := g.Store.Dump()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "dump graph")
	}

	var dot string
	if slices.Contains(opts.Formats, FormatDOT) || slices.Contains(opts.Formats, FormatSVG) {
		dot = nodelink.ToDOT(data, nodelink.Options{Highlight: opts.Highlight})
	}

	var mu sync.Mutex
	out := make(map[string][]byte, len(opts.Formats))
	grp, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		grp.Go(func() error {
			var b []byte
			switch format {
			case FormatJSON:
				var buf bytes.Buffer
				if err := cgio.NewSink(&buf).Accept(data); err != nil {
					return errs.Wrap(errs.ErrCodeInternal, err, "render json")
				}
				b = buf.Bytes()
			case FormatDOT:
				b = []byte(dot)
			case FormatSVG:
				svg, err := nodelink.RenderSVG(ctx, dot)
				if err != nil {
					return errs.Wrap(errs.ErrCodeInternal, err, "render svg")
				}
				b = svg
			}
			mu.Lock()
			out[format] = b
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
