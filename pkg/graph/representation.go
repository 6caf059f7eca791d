package graph

// Representation is one structural encoding of the edge set over a fixed
// number of vertices.
//
// Implementations trust their callers: vertex indices outside [0, N) panic
// the same way an out-of-range slice index does, and self-loops are not
// checked. [Store] validates both before it touches a representation.
//
// The edge counter is maintained without existence checks. Creating an edge
// that is already present increments it again, and deleting an absent edge
// still decrements it. Callers that need an exact count must only delete
// edges they created.
type Representation interface {
	// Kind identifies the encoding.
	Kind() RepresentationKind
	// VertexCount returns N.
	VertexCount() int

	// CreateEdge marks {u, v} present and increments the edge counter.
	CreateEdge(u, v Vertex)
	// DeleteEdge marks {u, v} absent and decrements the edge counter.
	DeleteEdge(u, v Vertex)

	// IsAdjacentVertex reports whether {u, v} is present.
	IsAdjacentVertex(u, v Vertex) bool
	// IsAdjacentEdges reports whether some endpoint of e1 is adjacent to
	// some endpoint of e2.
	IsAdjacentEdges(e1, e2 Edge) bool
	// IsEdgeIncidentToVertex reports whether e is present and v is one of
	// its endpoints.
	IsEdgeIncidentToVertex(e Edge, v Vertex) bool
	// EdgeExists reports whether e is present.
	EdgeExists(e Edge) bool

	// EdgeCount returns the edge counter.
	EdgeCount() int
	// IsEmpty reports whether the edge counter is zero.
	IsEmpty() bool
	// IsComplete reports whether the edge counter equals N*(N-1)/2.
	IsComplete() bool

	// Edges returns every present edge in canonical form, sorted.
	Edges() []Edge
	// Neighbors returns the vertices adjacent to v in ascending order.
	Neighbors(v Vertex) []Vertex
	// IncidentEdges returns the present edges touching v in canonical form,
	// sorted.
	IncidentEdges(v Vertex) []Edge
}

// newRepresentation allocates an empty representation of the given kind.
func newRepresentation(kind RepresentationKind, n int) (Representation, error) {
	switch kind {
	case AdjacencyMatrix:
		return NewMatrixRepresentation(n), nil
	case AdjacencyList:
		return NewListRepresentation(n), nil
	case Incidence:
		return NewIncidenceRepresentation(n), nil
	default:
		return nil, ErrUnknownRepresentation
	}
}

// completeEdgeCount returns N*(N-1)/2.
func completeEdgeCount(n int) int { return n * (n - 1) / 2 }

// adjacentEdges implements IsAdjacentEdges on top of a vertex adjacency test.
// Every variant shares it so that all three answer identically.
func adjacentEdges(adj func(u, v Vertex) bool, e1, e2 Edge) bool {
	for _, a := range [2]Vertex{e1.U, e1.V} {
		for _, b := range [2]Vertex{e2.U, e2.V} {
			if a != b && adj(a, b) {
				return true
			}
		}
	}
	return false
}

// incidentFromNeighbors turns an ascending neighbor list of v into sorted
// canonical edges.
func incidentFromNeighbors(v Vertex, neighbors []Vertex) []Edge {
	out := make([]Edge, 0, len(neighbors))
	for _, w := range neighbors {
		out = append(out, Edge{U: v, V: w}.Canonical())
	}
	// Neighbors below v produce (w, v) and sort by w; neighbors above v
	// produce (v, w) and sort by w as well, so the order already holds.
	return out
}
