package graph

// MatrixRepresentation stores the edge set as an N×N 0/1 grid.
// Adjacency is O(1); space is O(N²).
type MatrixRepresentation struct {
	n     int
	cells []uint8
	count int
}

// NewMatrixRepresentation returns an empty grid over n vertices.
func NewMatrixRepresentation(n int) *MatrixRepresentation {
	return &MatrixRepresentation{n: n, cells: make([]uint8, n*n)}
}

func (m *MatrixRepresentation) Kind() RepresentationKind { return AdjacencyMatrix }
func (m *MatrixRepresentation) VertexCount() int         { return m.n }

func (m *MatrixRepresentation) at(u, v Vertex) int {
	if int(u) >= m.n || int(v) >= m.n || u < 0 || v < 0 {
		panic("graph: matrix index out of range")
	}
	return int(u)*m.n + int(v)
}

func (m *MatrixRepresentation) CreateEdge(u, v Vertex) {
	m.cells[m.at(u, v)] = 1
	m.cells[m.at(v, u)] = 1
	m.count++
}

func (m *MatrixRepresentation) DeleteEdge(u, v Vertex) {
	m.cells[m.at(u, v)] = 0
	m.cells[m.at(v, u)] = 0
	m.count--
}

func (m *MatrixRepresentation) IsAdjacentVertex(u, v Vertex) bool {
	return m.cells[m.at(u, v)] == 1
}

func (m *MatrixRepresentation) IsAdjacentEdges(e1, e2 Edge) bool {
	return adjacentEdges(m.IsAdjacentVertex, e1, e2)
}

func (m *MatrixRepresentation) IsEdgeIncidentToVertex(e Edge, v Vertex) bool {
	return e.Has(v) && m.EdgeExists(e)
}

func (m *MatrixRepresentation) EdgeExists(e Edge) bool { return m.IsAdjacentVertex(e.U, e.V) }

func (m *MatrixRepresentation) EdgeCount() int   { return m.count }
func (m *MatrixRepresentation) IsEmpty() bool    { return m.count == 0 }
func (m *MatrixRepresentation) IsComplete() bool { return m.count == completeEdgeCount(m.n) }

func (m *MatrixRepresentation) Edges() []Edge {
	var out []Edge
	for u := 0; u < m.n; u++ {
		row := m.cells[u*m.n : (u+1)*m.n]
		for v := u + 1; v < m.n; v++ {
			if row[v] == 1 {
				out = append(out, Edge{U: Vertex(u), V: Vertex(v)})
			}
		}
	}
	return out
}

func (m *MatrixRepresentation) Neighbors(v Vertex) []Vertex {
	start := m.at(v, 0)
	row := m.cells[start : start+m.n]
	var out []Vertex
	for w, c := range row {
		if c == 1 {
			out = append(out, Vertex(w))
		}
	}
	return out
}

func (m *MatrixRepresentation) IncidentEdges(v Vertex) []Edge {
	return incidentFromNeighbors(v, m.Neighbors(v))
}
