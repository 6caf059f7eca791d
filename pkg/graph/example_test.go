package graph_test

import (
	"fmt"

	"github.com/matzehuels/collabgraph/pkg/graph"
)

func Example() {
	s, _ := graph.New(3, graph.AdjacencyList)
	_ = s.SetVertexInfo(graph.InfoLabel, 0, "alice")
	_ = s.SetVertexInfo(graph.InfoLabel, 1, "bob")
	_ = s.CreateEdge(1, 0)
	_ = s.SetEdgeInfo(graph.InfoWeight, graph.Edge{U: 0, V: 1}, 5)

	adj, _ := s.IsAdjacentVertex(0, 1)
	w, _ := s.EdgeInfo(graph.InfoWeight, graph.Edge{U: 1, V: 0})
	fmt.Println(s.Kinds())
	fmt.Println("adjacent:", adj, "weight:", w)
	// Output:
	// [adjacency_list incidence]
	// adjacent: true weight: 5
}

func ExampleStore_WithIsolated() {
	s, _ := graph.New(3)
	_ = s.CreateEdge(0, 1)
	_ = s.CreateEdge(1, 2)

	_ = s.WithIsolated(1, func() error {
		n, _ := s.EdgeCount()
		fmt.Println("while isolated:", n)
		return nil
	})
	n, _ := s.EdgeCount()
	fmt.Println("after:", n)
	// Output:
	// while isolated: 0
	// after: 2
}
