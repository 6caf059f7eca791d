package graph

import "slices"

// IncidenceRepresentation stores, per vertex, the set of canonical edges
// that touch it. Every edge is recorded under both of its endpoints.
type IncidenceRepresentation struct {
	inc   []map[Edge]struct{}
	count int
}

// NewIncidenceRepresentation returns an empty incidence list over n vertices.
func NewIncidenceRepresentation(n int) *IncidenceRepresentation {
	inc := make([]map[Edge]struct{}, n)
	for i := range inc {
		inc[i] = make(map[Edge]struct{})
	}
	return &IncidenceRepresentation{inc: inc}
}

func (r *IncidenceRepresentation) Kind() RepresentationKind { return Incidence }
func (r *IncidenceRepresentation) VertexCount() int         { return len(r.inc) }

func (r *IncidenceRepresentation) CreateEdge(u, v Vertex) {
	e := Edge{U: u, V: v}.Canonical()
	r.inc[u][e] = struct{}{}
	r.inc[v][e] = struct{}{}
	r.count++
}

func (r *IncidenceRepresentation) DeleteEdge(u, v Vertex) {
	e := Edge{U: u, V: v}.Canonical()
	delete(r.inc[u], e)
	delete(r.inc[v], e)
	r.count--
}

func (r *IncidenceRepresentation) IsAdjacentVertex(u, v Vertex) bool {
	_ = r.inc[v]
	_, ok := r.inc[u][Edge{U: u, V: v}.Canonical()]
	return ok
}

func (r *IncidenceRepresentation) IsAdjacentEdges(e1, e2 Edge) bool {
	return adjacentEdges(r.IsAdjacentVertex, e1, e2)
}

func (r *IncidenceRepresentation) IsEdgeIncidentToVertex(e Edge, v Vertex) bool {
	if !e.Has(v) {
		return false
	}
	_, ok := r.inc[v][e.Canonical()]
	return ok
}

func (r *IncidenceRepresentation) EdgeExists(e Edge) bool { return r.IsAdjacentVertex(e.U, e.V) }

func (r *IncidenceRepresentation) EdgeCount() int   { return r.count }
func (r *IncidenceRepresentation) IsEmpty() bool    { return r.count == 0 }
func (r *IncidenceRepresentation) IsComplete() bool { return r.count == completeEdgeCount(len(r.inc)) }

func (r *IncidenceRepresentation) Edges() []Edge {
	var out []Edge
	for u, set := range r.inc {
		for e := range set {
			if int(e.U) == u {
				out = append(out, e)
			}
		}
	}
	slices.SortFunc(out, compareEdges)
	return out
}

func (r *IncidenceRepresentation) Neighbors(v Vertex) []Vertex {
	set := r.inc[v]
	out := make([]Vertex, 0, len(set))
	for e := range set {
		out = append(out, e.Other(v))
	}
	slices.Sort(out)
	return out
}

func (r *IncidenceRepresentation) IncidentEdges(v Vertex) []Edge {
	set := r.inc[v]
	out := make([]Edge, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	slices.SortFunc(out, compareEdges)
	return out
}
