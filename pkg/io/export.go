package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/collabgraph/pkg/graph"
)

type graphDoc struct {
	Vertices []vertexDoc `json:"vertices"`
	Edges    []edgeDoc   `json:"edges"`
}

type vertexDoc struct {
	ID    int `json:"id"`
	Label any `json:"label,omitempty"`
}

type edgeDoc struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight any `json:"weight,omitempty"`
	Label  any `json:"label,omitempty"`
}

// Sink is a [graph.ExportSink] that writes the node-link JSON format.
type Sink struct {
	w io.Writer
}

// NewSink returns a sink writing to w.
func NewSink(w io.Writer) *Sink { return &Sink{w: w} }

// Accept encodes data to the sink's writer.
func (s *Sink) Accept(data graph.ExportData) error {
	doc := graphDoc{
		Vertices: make([]vertexDoc, data.VertexCount),
		Edges:    make([]edgeDoc, len(data.Edges)),
	}
	for i := range doc.Vertices {
		v := vertexDoc{ID: i}
		if l, ok := data.Label(graph.Vertex(i)); ok {
			v.Label = l
		}
		doc.Vertices[i] = v
	}
	for i, e := range data.Edges {
		e = e.Canonical()
		ed := edgeDoc{Source: int(e.U), Target: int(e.V)}
		if info := data.EdgeInfo[e]; info != nil {
			ed.Weight = info[graph.InfoWeight]
			ed.Label = info[graph.InfoLabel]
		}
		doc.Edges[i] = ed
	}

	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

var _ graph.ExportSink = (*Sink)(nil)

// WriteGraph encodes the store as JSON and writes it to w.
// The output can be re-imported with [ReadGraph].
func WriteGraph(s *graph.Store, w io.Writer) error {
	return s.Export(NewSink(w))
}

// MarshalGraph returns the JSON encoding of the store.
func MarshalGraph(s *graph.Store) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportGraph writes the store to a JSON file at path.
func ExportGraph(s *graph.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGraph(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
