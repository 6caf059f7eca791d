package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidMetadata is returned when a LABEL is set to nil.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrNoRepresentation is returned by structural queries when the store
	// has no active representation to answer them.
	ErrNoRepresentation = errors.New("no representation available")

	// ErrVertexOutOfRange is returned when a vertex index is outside [0, N).
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrSelfLoop is returned when both endpoints of an edge are the same vertex.
	ErrSelfLoop = errors.New("self-loop")

	// ErrInvalidVertexCount is returned by New for a negative vertex count.
	ErrInvalidVertexCount = errors.New("invalid vertex count")

	// ErrUnknownRepresentation is returned for a representation kind or name
	// that does not exist.
	ErrUnknownRepresentation = errors.New("unknown representation")
)

// Read priority orders. Vertex adjacency prefers the neighbor sets; edge and
// incidence style queries prefer the incidence lists.
var (
	vertexOrder = []RepresentationKind{AdjacencyList, AdjacencyMatrix, Incidence}
	edgeOrder   = []RepresentationKind{Incidence, AdjacencyList, AdjacencyMatrix}
)

// Store owns a fixed vertex count, a set of active representations kept in
// agreement, and the metadata tables for vertices and edges.
//
// The zero value is not usable; use [New].
type Store struct {
	n          int
	reps       map[RepresentationKind]Representation
	vertexInfo map[Vertex]Info
	edgeInfo   map[Edge]Info
}

// New creates a store over n vertices with the given representations active.
// With no kinds all three are used. [Incidence] is always added.
func New(n int, kinds ...RepresentationKind) (*Store, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVertexCount, n)
	}
	if len(kinds) == 0 {
		kinds = AllRepresentations
	}
	s := &Store{
		n:          n,
		reps:       make(map[RepresentationKind]Representation, len(AllRepresentations)),
		vertexInfo: make(map[Vertex]Info),
		edgeInfo:   make(map[Edge]Info),
	}
	for _, k := range append(slices.Clone(kinds), Incidence) {
		if _, ok := s.reps[k]; ok {
			continue
		}
		r, err := newRepresentation(k, n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", err, k)
		}
		s.reps[k] = r
	}
	return s, nil
}

// VertexCount returns N.
func (s *Store) VertexCount() int { return s.n }

// Kinds returns the active representation kinds in declaration order.
func (s *Store) Kinds() []RepresentationKind {
	out := make([]RepresentationKind, 0, len(s.reps))
	for _, k := range AllRepresentations {
		if _, ok := s.reps[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Representation returns the active representation of the given kind.
func (s *Store) Representation(kind RepresentationKind) (Representation, bool) {
	r, ok := s.reps[kind]
	return r, ok
}

func (s *Store) pick(order []RepresentationKind) (Representation, error) {
	for _, k := range order {
		if r, ok := s.reps[k]; ok {
			return r, nil
		}
	}
	return nil, ErrNoRepresentation
}

func (s *Store) checkVertex(v Vertex) error {
	if v < 0 || int(v) >= s.n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrVertexOutOfRange, v, s.n)
	}
	return nil
}

func (s *Store) checkEdge(e Edge) error {
	if err := s.checkVertex(e.U); err != nil {
		return err
	}
	if err := s.checkVertex(e.V); err != nil {
		return err
	}
	if e.U == e.V {
		return fmt.Errorf("%w: %v", ErrSelfLoop, e)
	}
	return nil
}

// CreateEdge adds {u, v} to every active representation.
func (s *Store) CreateEdge(u, v Vertex) error {
	if err := s.checkEdge(Edge{U: u, V: v}); err != nil {
		return err
	}
	if len(s.reps) == 0 {
		return ErrNoRepresentation
	}
	for _, r := range s.reps {
		r.CreateEdge(u, v)
	}
	return nil
}

// DeleteEdge removes {u, v} from every active representation.
// Metadata attached to the edge is left untouched.
func (s *Store) DeleteEdge(u, v Vertex) error {
	if err := s.checkEdge(Edge{U: u, V: v}); err != nil {
		return err
	}
	if len(s.reps) == 0 {
		return ErrNoRepresentation
	}
	for _, r := range s.reps {
		r.DeleteEdge(u, v)
	}
	return nil
}

// IsAdjacentVertex reports whether {u, v} is an edge.
func (s *Store) IsAdjacentVertex(u, v Vertex) (bool, error) {
	if err := s.checkVertex(u); err != nil {
		return false, err
	}
	if err := s.checkVertex(v); err != nil {
		return false, err
	}
	r, err := s.pick(vertexOrder)
	if err != nil {
		return false, err
	}
	return r.IsAdjacentVertex(u, v), nil
}

// Neighbors returns the vertices adjacent to v in ascending order.
func (s *Store) Neighbors(v Vertex) ([]Vertex, error) {
	if err := s.checkVertex(v); err != nil {
		return nil, err
	}
	r, err := s.pick(vertexOrder)
	if err != nil {
		return nil, err
	}
	return r.Neighbors(v), nil
}

// IsAdjacentEdges reports whether some endpoint of e1 is adjacent to some
// endpoint of e2.
func (s *Store) IsAdjacentEdges(e1, e2 Edge) (bool, error) {
	if err := s.checkEdge(e1); err != nil {
		return false, err
	}
	if err := s.checkEdge(e2); err != nil {
		return false, err
	}
	r, err := s.pick(edgeOrder)
	if err != nil {
		return false, err
	}
	return r.IsAdjacentEdges(e1, e2), nil
}

// IsEdgeIncidentToVertex reports whether e is present and touches v.
func (s *Store) IsEdgeIncidentToVertex(e Edge, v Vertex) (bool, error) {
	if err := s.checkEdge(e); err != nil {
		return false, err
	}
	if err := s.checkVertex(v); err != nil {
		return false, err
	}
	r, err := s.pick(edgeOrder)
	if err != nil {
		return false, err
	}
	return r.IsEdgeIncidentToVertex(e, v), nil
}

// IncidentEdges returns the present edges touching v, canonical and sorted.
func (s *Store) IncidentEdges(v Vertex) ([]Edge, error) {
	if err := s.checkVertex(v); err != nil {
		return nil, err
	}
	r, err := s.pick(edgeOrder)
	if err != nil {
		return nil, err
	}
	return r.IncidentEdges(v), nil
}

// EdgeExists reports whether e is present.
func (s *Store) EdgeExists(e Edge) (bool, error) {
	if err := s.checkEdge(e); err != nil {
		return false, err
	}
	r, err := s.pick(edgeOrder)
	if err != nil {
		return false, err
	}
	return r.EdgeExists(e), nil
}

// EdgeCount returns the structural edge counter.
func (s *Store) EdgeCount() (int, error) {
	r, err := s.pick(edgeOrder)
	if err != nil {
		return 0, err
	}
	return r.EdgeCount(), nil
}

// IsEmpty reports whether the store has no edges.
func (s *Store) IsEmpty() (bool, error) {
	r, err := s.pick(edgeOrder)
	if err != nil {
		return false, err
	}
	return r.IsEmpty(), nil
}

// IsComplete reports whether every pair of vertices is connected.
func (s *Store) IsComplete() (bool, error) {
	r, err := s.pick(edgeOrder)
	if err != nil {
		return false, err
	}
	return r.IsComplete(), nil
}

// Edges returns every present edge in canonical form, sorted.
func (s *Store) Edges() ([]Edge, error) {
	r, err := s.pick(edgeOrder)
	if err != nil {
		return nil, err
	}
	return r.Edges(), nil
}

// SetVertexInfo upserts one metadata value on v. A nil LABEL is rejected
// and leaves the store unchanged.
func (s *Store) SetVertexInfo(kind InfoKind, v Vertex, value any) error {
	if err := s.checkVertex(v); err != nil {
		return err
	}
	if kind == InfoLabel && value == nil {
		return fmt.Errorf("%w: nil label on vertex %d", ErrInvalidMetadata, v)
	}
	info, ok := s.vertexInfo[v]
	if !ok {
		info = make(Info)
		s.vertexInfo[v] = info
	}
	info[kind] = value
	return nil
}

// SetEdgeInfo upserts one metadata value on e. (u, v) and (v, u) address the
// same entry. A nil LABEL is rejected and leaves the store unchanged.
func (s *Store) SetEdgeInfo(kind InfoKind, e Edge, value any) error {
	if err := s.checkEdge(e); err != nil {
		return err
	}
	if kind == InfoLabel && value == nil {
		return fmt.Errorf("%w: nil label on edge %v", ErrInvalidMetadata, e)
	}
	key := e.Canonical()
	info, ok := s.edgeInfo[key]
	if !ok {
		info = make(Info)
		s.edgeInfo[key] = info
	}
	info[kind] = value
	return nil
}

// VertexInfo returns the metadata value of the given kind on v. Unset values
// and out-of-range vertices report false.
func (s *Store) VertexInfo(kind InfoKind, v Vertex) (any, bool) {
	val, ok := s.vertexInfo[v][kind]
	return val, ok
}

// EdgeInfo returns the metadata value of the given kind on e, in either
// endpoint order.
func (s *Store) EdgeInfo(kind InfoKind, e Edge) (any, bool) {
	val, ok := s.edgeInfo[e.Canonical()][kind]
	return val, ok
}

// EdgeInfoKeys returns every edge that carries metadata, canonical and sorted.
func (s *Store) EdgeInfoKeys() []Edge {
	out := make([]Edge, 0, len(s.edgeInfo))
	for e := range s.edgeInfo {
		out = append(out, e)
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// FindVertex returns the lowest-indexed vertex whose LABEL formats to label.
func (s *Store) FindVertex(label string) (Vertex, bool) {
	for v := 0; v < s.n; v++ {
		val, ok := s.vertexInfo[Vertex(v)][InfoLabel]
		if ok && fmt.Sprint(val) == label {
			return Vertex(v), true
		}
	}
	return 0, false
}
