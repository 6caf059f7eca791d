package graph

import (
	"cmp"
	"fmt"
	"strings"
)

// Vertex is a dense index in [0, N). Identity is positional.
type Vertex int

// Edge is an unordered pair of distinct vertices. Edge{U: 1, V: 0} and
// Edge{U: 0, V: 1} denote the same edge; use Canonical to compare them.
type Edge struct {
	U Vertex
	V Vertex
}

// Canonical returns the edge with the smaller endpoint first.
func (e Edge) Canonical() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// Reversed returns the edge with its endpoints swapped.
func (e Edge) Reversed() Edge { return Edge{U: e.V, V: e.U} }

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v Vertex) bool { return e.U == v || e.V == v }

// Other returns the endpoint of e that is not v. If v is not an endpoint,
// U is returned.
func (e Edge) Other(v Vertex) Vertex {
	if e.U == v {
		return e.V
	}
	return e.U
}

// String formats the edge as "u-v".
func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.U, e.V) }

// compareEdges orders canonical edges by first endpoint, then second.
func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.U, b.U); c != 0 {
		return c
	}
	return cmp.Compare(a.V, b.V)
}

// InfoKind selects one metadata slot on a vertex or edge.
type InfoKind int

const (
	// InfoLabel is a display identifier, e.g. a user handle. It cannot be nil.
	InfoLabel InfoKind = iota
	// InfoWeight is a numeric strength. Edges use it for the accumulated
	// interaction weight; it is reserved on vertices.
	InfoWeight
)

// String returns the lower-case name of the kind.
func (k InfoKind) String() string {
	switch k {
	case InfoLabel:
		return "label"
	case InfoWeight:
		return "weight"
	default:
		return fmt.Sprintf("info(%d)", int(k))
	}
}

// Info holds the metadata attached to one vertex or edge.
type Info map[InfoKind]any

// clone returns a shallow copy of the map. Values are copied as-is.
func (i Info) clone() Info {
	if i == nil {
		return nil
	}
	out := make(Info, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

// RepresentationKind names one structural encoding of the edge set.
type RepresentationKind int

const (
	// AdjacencyMatrix stores an N×N 0/1 grid.
	AdjacencyMatrix RepresentationKind = iota
	// AdjacencyList stores a neighbor set per vertex.
	AdjacencyList
	// Incidence stores, per vertex, the set of edges that touch it.
	Incidence
)

// AllRepresentations lists every kind in declaration order.
var AllRepresentations = []RepresentationKind{AdjacencyMatrix, AdjacencyList, Incidence}

var kindNames = map[RepresentationKind]string{
	AdjacencyMatrix: "adjacency_matrix",
	AdjacencyList:   "adjacency_list",
	Incidence:       "incidence",
}

// String returns the configuration name of the kind (e.g. "adjacency_list").
func (k RepresentationKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("representation(%d)", int(k))
}

// ParseRepresentationKind converts a configuration name back to a kind.
// Matching is case-insensitive and accepts "-" in place of "_".
func ParseRepresentationKind(s string) (RepresentationKind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k, name := range kindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRepresentation, s)
}
