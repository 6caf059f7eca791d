package graph

// Snapshot records what [Store.Isolate] removed so it can be put back.
type Snapshot struct {
	store    *Store
	vertex   Vertex
	removed  []removedEdge
	restored bool
}

type removedEdge struct {
	edge       Edge
	info       Info
	structural bool
}

// Vertex returns the isolated vertex.
func (sn *Snapshot) Vertex() Vertex { return sn.vertex }

// Edges returns the canonical edges that were removed, structural or
// metadata-only, in sorted order.
func (sn *Snapshot) Edges() []Edge {
	out := make([]Edge, len(sn.removed))
	for i, r := range sn.removed {
		out[i] = r.edge
	}
	return out
}

// Restore recreates every removed edge in all active representations and
// reattaches its metadata. Calling it more than once has no further effect.
func (sn *Snapshot) Restore() {
	if sn == nil || sn.restored {
		return
	}
	sn.restored = true
	s := sn.store
	for _, r := range sn.removed {
		if r.structural {
			for _, rep := range s.reps {
				rep.CreateEdge(r.edge.U, r.edge.V)
			}
		}
		if r.info != nil {
			s.edgeInfo[r.edge] = r.info
		}
	}
}

// Isolate removes every edge touching v from all active representations and
// evicts the metadata of those edges. Edges that only exist as metadata are
// evicted as well. The returned snapshot undoes both.
func (s *Store) Isolate(v Vertex) (*Snapshot, error) {
	if err := s.checkVertex(v); err != nil {
		return nil, err
	}
	structural, err := s.IncidentEdges(v)
	if err != nil {
		return nil, err
	}

	sn := &Snapshot{store: s, vertex: v}
	seen := make(map[Edge]bool, len(structural))
	for _, e := range structural {
		seen[e] = true
		sn.removed = append(sn.removed, removedEdge{edge: e, info: s.edgeInfo[e], structural: true})
	}
	for _, e := range s.EdgeInfoKeys() {
		if e.Has(v) && !seen[e] {
			sn.removed = append(sn.removed, removedEdge{edge: e, info: s.edgeInfo[e]})
		}
	}

	for _, r := range sn.removed {
		if r.structural {
			for _, rep := range s.reps {
				rep.DeleteEdge(r.edge.U, r.edge.V)
			}
		}
		delete(s.edgeInfo, r.edge)
	}
	return sn, nil
}

// WithIsolated isolates v, runs fn, and restores the store afterwards. The
// restore also runs when fn panics.
func (s *Store) WithIsolated(v Vertex, fn func() error) error {
	sn, err := s.Isolate(v)
	if err != nil {
		return err
	}
	defer sn.Restore()
	return fn()
}
