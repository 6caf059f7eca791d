package analytics

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/matzehuels/collabgraph/pkg/graph"
	"github.com/matzehuels/collabgraph/pkg/observability"
)

// Ranked is one entry of a ranking. Score is a weighted degree, an edge
// weight or a hop distance depending on the query.
type Ranked struct {
	Vertex graph.Vertex `json:"vertex"`
	Label  string       `json:"label"`
	Score  float64      `json:"score"`
}

// String formats the entry as "(label, score)".
func (r Ranked) String() string {
	return fmt.Sprintf("(%s, %s)", r.Label, strconv.FormatFloat(r.Score, 'f', -1, 64))
}

// Analyzer answers social queries against a store.
type Analyzer struct {
	store *graph.Store
	ctx   context.Context
}

// New returns an analyzer over store.
func New(store *graph.Store) *Analyzer {
	return &Analyzer{store: store, ctx: context.Background()}
}

// WithContext returns a copy of the analyzer that reports hook events with
// ctx. Queries are not cancellable.
func (a *Analyzer) WithContext(ctx context.Context) *Analyzer {
	cp := *a
	cp.ctx = ctx
	return &cp
}

// Store returns the underlying store.
func (a *Analyzer) Store() *graph.Store { return a.store }

// track reports the start of op and returns the matching completion callback.
func (a *Analyzer) track(op string) func(error) {
	start := time.Now()
	hooks := observability.Analysis()
	hooks.OnAnalysisStart(a.ctx, op, a.store.VertexCount())
	return func(err error) {
		hooks.OnAnalysisComplete(a.ctx, op, time.Since(start), err)
	}
}

// Edges returns the distinct edges that carry metadata, canonical and sorted.
func (a *Analyzer) Edges() []graph.Edge {
	return a.store.EdgeInfoKeys()
}

// Weight returns the WEIGHT of e in either endpoint order, or 0 if unset or
// not numeric.
func (a *Analyzer) Weight(e graph.Edge) float64 {
	v, ok := a.store.EdgeInfo(graph.InfoWeight, e)
	if !ok {
		return 0
	}
	return toFloat(v)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Degree returns the number of distinct edges touching v.
func (a *Analyzer) Degree(v graph.Vertex) int {
	n := 0
	for _, e := range a.Edges() {
		if e.Has(v) {
			n++
		}
	}
	return n
}

// WeightedDegree returns the summed weight of the distinct edges touching v.
func (a *Analyzer) WeightedDegree(v graph.Vertex) float64 {
	var sum float64
	for _, e := range a.Edges() {
		if e.Has(v) {
			sum += a.Weight(e)
		}
	}
	return sum
}

// Neighbors returns the vertices sharing an edge with v, ascending.
func (a *Analyzer) Neighbors(v graph.Vertex) []graph.Vertex {
	var out []graph.Vertex
	for _, e := range a.Edges() {
		if e.Has(v) {
			out = append(out, e.Other(v))
		}
	}
	slices.Sort(out)
	return out
}

// Label returns the LABEL of v, or its decimal index if no label is set.
func (a *Analyzer) Label(v graph.Vertex) string {
	if l, ok := a.store.VertexInfo(graph.InfoLabel, v); ok {
		return fmt.Sprint(l)
	}
	return strconv.Itoa(int(v))
}

// Lookup resolves a label to the first vertex carrying it.
func (a *Analyzer) Lookup(label string) (graph.Vertex, bool) {
	return a.store.FindVertex(label)
}

// Users returns every vertex label in index order.
func (a *Analyzer) Users() []string {
	out := make([]string, a.store.VertexCount())
	for i := range out {
		out[i] = a.Label(graph.Vertex(i))
	}
	return out
}

// adjacency builds ascending neighbor lists for every vertex from the
// metadata edges.
func (a *Analyzer) adjacency() [][]graph.Vertex {
	adj := make([][]graph.Vertex, a.store.VertexCount())
	for _, e := range a.Edges() {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	for _, ns := range adj {
		slices.Sort(ns)
	}
	return adj
}

// weightedDegrees computes every weighted degree in one pass.
func (a *Analyzer) weightedDegrees() []float64 {
	out := make([]float64, a.store.VertexCount())
	for _, e := range a.Edges() {
		w := a.Weight(e)
		out[e.U] += w
		out[e.V] += w
	}
	return out
}

func (a *Analyzer) ranked(v graph.Vertex, score float64) Ranked {
	return Ranked{Vertex: v, Label: a.Label(v), Score: score}
}

// top sorts by score descending, keeping index order for ties, and truncates
// to n entries. n <= 0 yields an empty slice.
func top(rs []Ranked, n int, desc bool) []Ranked {
	slices.SortStableFunc(rs, func(x, y Ranked) int {
		if desc {
			return cmp.Compare(y.Score, x.Score)
		}
		return cmp.Compare(x.Score, y.Score)
	})
	n = max(n, 0)
	if n < len(rs) {
		rs = rs[:n]
	}
	return rs
}

// MostInfluentialUsers returns the topN vertices by weighted degree.
func (a *Analyzer) MostInfluentialUsers(topN int) []Ranked {
	defer a.track("influence")(nil)

	scores := a.weightedDegrees()
	rs := make([]Ranked, len(scores))
	for i, s := range scores {
		rs[i] = a.ranked(graph.Vertex(i), s)
	}
	return top(rs, topN, true)
}

// ClosestUsers returns the topN direct neighbors of the user by edge weight.
func (a *Analyzer) ClosestUsers(label string, topN int) []Ranked {
	defer a.track("closest")(nil)

	v, ok := a.Lookup(label)
	if !ok {
		return []Ranked{}
	}
	rs := []Ranked{}
	for _, w := range a.Neighbors(v) {
		rs = append(rs, a.ranked(w, a.Weight(graph.Edge{U: v, V: w})))
	}
	return top(rs, topN, true)
}

// ClosestNonDirectUsers returns the topN reachable users at hop distance two
// or more, nearest first. Unreachable users are left out.
func (a *Analyzer) ClosestNonDirectUsers(label string, topN int) []Ranked {
	defer a.track("closest_non_direct")(nil)

	v, ok := a.Lookup(label)
	if !ok {
		return []Ranked{}
	}
	dist := bfs(a.adjacency(), v)
	rs := []Ranked{}
	for w, d := range dist {
		if d >= 2 {
			rs = append(rs, a.ranked(graph.Vertex(w), float64(d)))
		}
	}
	return top(rs, topN, false)
}

// bfs returns hop distances from src; unreachable vertices get -1.
func bfs(adj [][]graph.Vertex, src graph.Vertex) []int {
	dist := make([]int, len(adj))
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []graph.Vertex{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, w := range adj[u] {
			if dist[w] < 0 {
				dist[w] = dist[u] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}
