// Package render groups the visual exports of collaboration graphs.
//
// The [nodelink] subpackage renders a store's export as a Graphviz node-link
// diagram:
//
//	data, _ := store.Dump()
//	dot := nodelink.ToDOT(data, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The interchange JSON export lives in the io package.
//
// [nodelink]: github.com/matzehuels/collabgraph/pkg/render/nodelink
package render
