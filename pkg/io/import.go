package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/collabgraph/pkg/graph"
)

// ReadGraph decodes a node-link JSON document from r into a new store with
// the given representations active.
//
// Vertex ids must be exactly 0..N-1, each once, in any order. Integral
// weights decode to int and fractional ones to float64. A null label is
// treated as absent.
//
// ReadGraph returns an error if:
//   - The JSON is malformed
//   - A vertex id is duplicated or outside [0, N)
//   - An edge references an unknown vertex or is a self-loop
//
// ReadGraph does not close r.
func ReadGraph(r io.Reader, kinds ...graph.RepresentationKind) (*graph.Store, error) {
	var doc graphDoc
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s, err := graph.New(len(doc.Vertices), kinds...)
	if err != nil {
		return nil, err
	}
	seen := make([]bool, len(doc.Vertices))
	for _, v := range doc.Vertices {
		if v.ID < 0 || v.ID >= len(doc.Vertices) {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, graph.ErrVertexOutOfRange)
		}
		if seen[v.ID] {
			return nil, fmt.Errorf("vertex %d: duplicate id", v.ID)
		}
		seen[v.ID] = true
		if v.Label != nil {
			if err := s.SetVertexInfo(graph.InfoLabel, graph.Vertex(v.ID), v.Label); err != nil {
				return nil, fmt.Errorf("vertex %d: %w", v.ID, err)
			}
		}
	}

	for _, e := range doc.Edges {
		u, v := graph.Vertex(e.Source), graph.Vertex(e.Target)
		if err := s.CreateEdge(u, v); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.Source, e.Target, err)
		}
		edge := graph.Edge{U: u, V: v}
		if e.Weight != nil {
			if err := s.SetEdgeInfo(graph.InfoWeight, edge, number(e.Weight)); err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", e.Source, e.Target, err)
			}
		}
		if e.Label != nil {
			if err := s.SetEdgeInfo(graph.InfoLabel, edge, e.Label); err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", e.Source, e.Target, err)
			}
		}
	}
	return s, nil
}

// number converts a decoded json.Number to int when it is integral.
func number(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return v
}

// ImportGraph reads a graph JSON file at path.
func ImportGraph(path string, kinds ...graph.RepresentationKind) (*graph.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f, kinds...)
}
