// Package nodelink renders collaboration graphs as node-link diagrams.
//
// # Overview
//
// Users appear as rounded boxes and interactions as undirected edges whose
// thickness grows with the interaction weight. A highlight set marks users
// of interest, for example the most fragmenting user or the top
// influencers of a report.
//
// # Usage
//
// Convert an export to DOT, then render to SVG:
//
//	data, _ := store.Dump()
//	dot := nodelink.ToDOT(data, nodelink.Options{Highlight: []string{"bob"}})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Or let the store drive a [Sink]:
//
//	sink := nodelink.NewSink(nodelink.Options{})
//	if err := store.Export(sink); err != nil { ... }
//	dot := sink.DOT()
//
// # DOT Format
//
// The generated source is an undirected "graph" with one node per vertex,
// keyed by vertex index and labelled with the vertex LABEL. It can be
// rendered with [RenderSVG] or saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no system Graphviz installation is needed.
package nodelink
