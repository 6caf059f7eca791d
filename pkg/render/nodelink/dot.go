package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/collabgraph/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Highlight lists vertex labels drawn with an accent fill.
	Highlight []string
	// HideWeights drops the weight labels from edges. Line width still
	// reflects the weight.
	HideWeights bool
}

const (
	minPenWidth = 1.0
	maxPenWidth = 8.0
)

// ToDOT converts an export to Graphviz DOT source.
// The result can be rendered with [RenderSVG].
func ToDOT(data graph.ExportData, opts Options) string {
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, h := range opts.Highlight {
		highlight[h] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\", fontsize=12];\n")
	buf.WriteString("\n")

	for v := 0; v < data.VertexCount; v++ {
		label := vertexLabel(data, graph.Vertex(v))
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if highlight[label] {
			attrs = append(attrs, "fillcolor=\"#ffcc66\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range data.Edges {
		e = e.Canonical()
		var attrs []string
		if w, ok := data.Weight(e); ok {
			attrs = append(attrs, fmt.Sprintf("penwidth=%s", penWidth(w)))
			if !opts.HideWeights {
				attrs = append(attrs, fmt.Sprintf("label=%q", fmt.Sprint(w)))
			}
		}
		if l, ok := data.EdgeInfo[e][graph.InfoLabel]; ok {
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", fmt.Sprint(l)))
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.U, e.V, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexLabel(data graph.ExportData, v graph.Vertex) string {
	if l, ok := data.Label(v); ok {
		return fmt.Sprint(l)
	}
	return strconv.Itoa(int(v))
}

// penWidth maps a weight to a line width on a log scale.
func penWidth(w any) string {
	f, err := strconv.ParseFloat(fmt.Sprint(w), 64)
	if err != nil || f <= 0 {
		return strconv.FormatFloat(minPenWidth, 'f', 1, 64)
	}
	pw := min(minPenWidth+math.Log2(f), maxPenWidth)
	pw = max(pw, minPenWidth)
	return strconv.FormatFloat(pw, 'f', 1, 64)
}

// Sink is a [graph.ExportSink] that converts the export to DOT.
type Sink struct {
	opts Options
	dot  string
}

// NewSink returns a sink that renders with opts.
func NewSink(opts Options) *Sink { return &Sink{opts: opts} }

// Accept converts data to DOT and keeps the result.
func (s *Sink) Accept(data graph.ExportData) error {
	s.dot = ToDOT(data, s.opts)
	return nil
}

// DOT returns the source produced by the last Accept.
func (s *Sink) DOT() string { return s.dot }

var _ graph.ExportSink = (*Sink)(nil)

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// viewBox rooted at the origin so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
