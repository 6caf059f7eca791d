// Package graph provides the undirected vertex/edge store that backs the
// collaboration analytics.
//
// # Overview
//
// A [Store] owns a fixed number of vertices, identified by dense indices in
// [0, N), and keeps the same topology in up to three structural
// representations at once:
//
//   - [AdjacencyMatrix]: an N×N 0/1 grid, O(1) adjacency, O(N²) space
//   - [AdjacencyList]: a neighbor set per vertex, O(degree) adjacency
//   - [Incidence]: the set of edges touching each vertex
//
// The incidence representation is always active. Mutations fan out to every
// active representation, so all of them agree on which edges exist. Reads
// pick one representation by a fixed priority order instead of asking all of
// them.
//
// # Basic Usage
//
//	s, _ := graph.New(3)
//	_ = s.SetVertexInfo(graph.InfoLabel, 0, "alice")
//	_ = s.CreateEdge(0, 1)
//	_ = s.SetEdgeInfo(graph.InfoWeight, graph.Edge{U: 0, V: 1}, 5)
//
//	ok, _ := s.IsAdjacentVertex(1, 0) // true
//
// # Edges
//
// An [Edge] is an unordered pair. Representations and metadata lookups treat
// (u, v) and (v, u) as the same edge; [Edge.Canonical] gives the min-first
// form used for keys and enumeration. Self-loops are not modeled.
//
// # Metadata
//
// Vertices and edges carry an [Info] map keyed by [InfoKind]. Metadata lives
// in tables owned by the store, never inside the representations. A LABEL can
// never be set to nil.
//
// # What-if Mutation
//
// [Store.Isolate] removes every edge of a vertex together with its metadata
// and returns a [Snapshot] that puts both back exactly. [Store.WithIsolated]
// runs a function against the isolated graph and always restores it.
//
// # Concurrency
//
// A Store is not safe for concurrent use. Callers must not interleave
// mutations and reads from several goroutines.
package graph
