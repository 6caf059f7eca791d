package graph

// ExportData is a self-contained copy of the store handed to an [ExportSink].
// Mutating it does not affect the store.
type ExportData struct {
	VertexCount int
	Edges       []Edge
	VertexInfo  map[Vertex]Info
	EdgeInfo    map[Edge]Info
}

// Label returns the LABEL of v, if set.
func (d ExportData) Label(v Vertex) (any, bool) {
	val, ok := d.VertexInfo[v][InfoLabel]
	return val, ok
}

// Weight returns the WEIGHT of e in either endpoint order, if set.
func (d ExportData) Weight(e Edge) (any, bool) {
	val, ok := d.EdgeInfo[e.Canonical()][InfoWeight]
	return val, ok
}

// ExportSink consumes a full copy of a store, e.g. to write an interchange
// file or render a picture.
type ExportSink interface {
	Accept(data ExportData) error
}

// ExportSinkFunc adapts a function to [ExportSink].
type ExportSinkFunc func(data ExportData) error

// Accept calls f(data).
func (f ExportSinkFunc) Accept(data ExportData) error { return f(data) }

// Dump returns a deep copy of the store's structure and metadata. The
// edge set comes from the incidence-first representation order.
func (s *Store) Dump() (ExportData, error) {
	edges, err := s.Edges()
	if err != nil {
		return ExportData{}, err
	}
	data := ExportData{
		VertexCount: s.n,
		Edges:       edges,
		VertexInfo:  make(map[Vertex]Info, len(s.vertexInfo)),
		EdgeInfo:    make(map[Edge]Info, len(s.edgeInfo)),
	}
	for v, info := range s.vertexInfo {
		data.VertexInfo[v] = info.clone()
	}
	for e, info := range s.edgeInfo {
		data.EdgeInfo[e] = info.clone()
	}
	return data, nil
}

// Export hands a copy of the store to sink.
func (s *Store) Export(sink ExportSink) error {
	data, err := s.Dump()
	if err != nil {
		return err
	}
	return sink.Accept(data)
}
