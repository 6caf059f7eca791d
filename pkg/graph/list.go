package graph

import "slices"

// ListRepresentation stores a neighbor set per vertex.
// Adjacency is O(1) expected; space is O(N + E).
type ListRepresentation struct {
	adj   []map[Vertex]struct{}
	count int
}

// NewListRepresentation returns an empty adjacency list over n vertices.
func NewListRepresentation(n int) *ListRepresentation {
	adj := make([]map[Vertex]struct{}, n)
	for i := range adj {
		adj[i] = make(map[Vertex]struct{})
	}
	return &ListRepresentation{adj: adj}
}

func (l *ListRepresentation) Kind() RepresentationKind { return AdjacencyList }
func (l *ListRepresentation) VertexCount() int         { return len(l.adj) }

func (l *ListRepresentation) CreateEdge(u, v Vertex) {
	l.adj[u][v] = struct{}{}
	l.adj[v][u] = struct{}{}
	l.count++
}

func (l *ListRepresentation) DeleteEdge(u, v Vertex) {
	delete(l.adj[u], v)
	delete(l.adj[v], u)
	l.count--
}

func (l *ListRepresentation) IsAdjacentVertex(u, v Vertex) bool {
	_, ok := l.adj[u][v]
	_ = l.adj[v] // range check on both endpoints
	return ok
}

func (l *ListRepresentation) IsAdjacentEdges(e1, e2 Edge) bool {
	return adjacentEdges(l.IsAdjacentVertex, e1, e2)
}

func (l *ListRepresentation) IsEdgeIncidentToVertex(e Edge, v Vertex) bool {
	return e.Has(v) && l.EdgeExists(e)
}

func (l *ListRepresentation) EdgeExists(e Edge) bool { return l.IsAdjacentVertex(e.U, e.V) }

func (l *ListRepresentation) EdgeCount() int   { return l.count }
func (l *ListRepresentation) IsEmpty() bool    { return l.count == 0 }
func (l *ListRepresentation) IsComplete() bool { return l.count == completeEdgeCount(len(l.adj)) }

func (l *ListRepresentation) Edges() []Edge {
	var out []Edge
	for u := range l.adj {
		for _, v := range l.Neighbors(Vertex(u)) {
			if int(v) > u {
				out = append(out, Edge{U: Vertex(u), V: v})
			}
		}
	}
	return out
}

func (l *ListRepresentation) Neighbors(v Vertex) []Vertex {
	set := l.adj[v]
	out := make([]Vertex, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

func (l *ListRepresentation) IncidentEdges(v Vertex) []Edge {
	return incidentFromNeighbors(v, l.Neighbors(v))
}
