package analytics

import (
	"github.com/matzehuels/collabgraph/pkg/graph"
)

// dfsFrame is one level of the explicit depth-first stack. next is the
// index of the neighbor to try when the frame resumes.
type dfsFrame struct {
	v    graph.Vertex
	next int
}

// components partitions every vertex, singletons included. Roots are taken
// in ascending index order and members are listed in the order a recursive
// depth-first search would first reach them.
func components(adj [][]graph.Vertex) [][]graph.Vertex {
	visited := make([]bool, len(adj))
	var out [][]graph.Vertex
	stack := make([]dfsFrame, 0, 64)

	for root := range adj {
		if visited[root] {
			continue
		}
		visited[root] = true
		comp := []graph.Vertex{graph.Vertex(root)}
		stack = append(stack[:0], dfsFrame{v: graph.Vertex(root)})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			ns := adj[f.v]
			descended := false
			for f.next < len(ns) {
				w := ns[f.next]
				f.next++
				if !visited[w] {
					visited[w] = true
					comp = append(comp, w)
					stack = append(stack, dfsFrame{v: w})
					descended = true
					break
				}
			}
			if !descended {
				stack = stack[:len(stack)-1]
			}
		}
		out = append(out, comp)
	}
	return out
}

// communities keeps the components with more than one member.
func communities(adj [][]graph.Vertex) [][]graph.Vertex {
	var out [][]graph.Vertex
	for _, c := range components(adj) {
		if len(c) > 1 {
			out = append(out, c)
		}
	}
	return out
}

// Communities returns the connected components with more than one member.
func (a *Analyzer) Communities() [][]graph.Vertex {
	defer a.track("communities")(nil)
	return communities(a.adjacency())
}

// FindCommunities returns the communities as lists of labels.
func (a *Analyzer) FindCommunities() [][]string {
	cs := a.Communities()
	out := make([][]string, len(cs))
	for i, c := range cs {
		out[i] = make([]string, len(c))
		for j, v := range c {
			out[i][j] = a.Label(v)
		}
	}
	return out
}

// ConnectionLevel returns the percentage of unordered vertex pairs joined by
// some path. A graph with at most one vertex is fully connected.
func (a *Analyzer) ConnectionLevel() float64 {
	defer a.track("connection_level")(nil)
	return connectionLevel(a.adjacency())
}

func connectionLevel(adj [][]graph.Vertex) float64 {
	n := len(adj)
	if n <= 1 {
		return 100.0
	}
	// Every pair inside a component is reachable and no pair across
	// components is, so summing per component matches a BFS from each vertex.
	reachable := 0
	for _, c := range components(adj) {
		s := len(c)
		reachable += s * (s - 1) / 2
	}
	total := n * (n - 1) / 2
	return float64(reachable) * 100 / float64(total)
}

// Fragmentation is the effect of cutting every edge of one user.
type Fragmentation struct {
	Vertex   graph.Vertex `json:"vertex"`
	Label    string       `json:"label"`
	Increase int          `json:"increase"`
	Baseline int          `json:"baseline"`
	After    int          `json:"after"`
}

// FindMostFragmentingUser removes each user's edges in turn and reports the
// user whose removal raises the number of connected components the most.
//
// Components include singletons. After a removal the removed user is not
// counted, so the metric is the number of pieces the rest of the graph falls
// into. Only a strictly positive increase qualifies and ties keep the lowest
// index. The second result is false when no removal splits anything.
//
// Every trial runs under [graph.Store.WithIsolated]; the store is identical
// before and after the call, including when it returns an error.
func (a *Analyzer) FindMostFragmentingUser() (best Fragmentation, found bool, err error) {
	done := a.track("fragmentation")
	defer func() { done(err) }()

	baseline := len(components(a.adjacency()))
	for v := 0; v < a.store.VertexCount(); v++ {
		var after int
		err = a.store.WithIsolated(graph.Vertex(v), func() error {
			after = len(components(a.adjacency())) - 1
			return nil
		})
		if err != nil {
			return Fragmentation{}, false, err
		}
		increase := after - baseline
		if increase > 0 && (!found || increase > best.Increase) {
			best = Fragmentation{
				Vertex:   graph.Vertex(v),
				Label:    a.Label(graph.Vertex(v)),
				Increase: increase,
				Baseline: baseline,
				After:    after,
			}
			found = true
		}
	}
	return best, found, nil
}

// Summary is a compact description of the graph.
type Summary struct {
	Vertices        int     `json:"vertices"`
	Edges           int     `json:"edges"`
	MetadataEdges   int     `json:"metadata_edges"`
	Communities     int     `json:"communities"`
	Isolated        int     `json:"isolated"`
	ConnectionLevel float64 `json:"connection_level"`
}

// Summary counts vertices, edges, communities and isolated users.
func (a *Analyzer) Summary() (s Summary, err error) {
	done := a.track("summary")
	defer func() { done(err) }()

	edges, err := a.store.EdgeCount()
	if err != nil {
		return Summary{}, err
	}
	adj := a.adjacency()
	s = Summary{
		Vertices:        len(adj),
		Edges:           edges,
		MetadataEdges:   len(a.Edges()),
		Communities:     len(communities(adj)),
		ConnectionLevel: connectionLevel(adj),
	}
	for _, ns := range adj {
		if len(ns) == 0 {
			s.Isolated++
		}
	}
	return s, nil
}
