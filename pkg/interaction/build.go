package interaction

import (
	"fmt"

	"github.com/matzehuels/collabgraph/pkg/graph"
)

// Build creates a store with one vertex per user, in sorted order, labeled
// with the handle, and one edge per pair weighted with the summed weight.
// kinds selects the active representations as in [graph.New].
func Build(acc *Accumulation, kinds ...graph.RepresentationKind) (*graph.Store, error) {
	users := acc.Users()
	s, err := graph.New(len(users), kinds...)
	if err != nil {
		return nil, err
	}

	index := make(map[string]graph.Vertex, len(users))
	for i, u := range users {
		v := graph.Vertex(i)
		index[u] = v
		if err := s.SetVertexInfo(graph.InfoLabel, v, u); err != nil {
			return nil, fmt.Errorf("label %s: %w", u, err)
		}
	}

	for _, p := range acc.Pairs() {
		u, v := index[p.A], index[p.B]
		if err := s.CreateEdge(u, v); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", p.A, p.B, err)
		}
		if err := s.SetEdgeInfo(graph.InfoWeight, graph.Edge{U: u, V: v}, p.Weight); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", p.A, p.B, err)
		}
	}
	return s, nil
}
