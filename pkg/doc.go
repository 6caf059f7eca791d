// Package pkg provides the core libraries for collabgraph collaboration analysis.
//
// # Overview
//
// Collabgraph turns collaboration events (merges, reviews, comments,
// mentions, reactions) into a weighted, undirected social graph and answers
// questions about it: who is most influential, which communities exist, how
// connected the project is, who is closest to whom and whose absence would
// split the graph. The pkg directory is organized as:
//
//  1. [graph] - Graph store with interchangeable structural representations
//  2. [interaction] - Records, categories and weight accumulation
//  3. [analytics] - Social queries over a store
//  4. [io] - Dataset decoding and node-link JSON import/export
//  5. [render] - DOT and SVG drawings
//  6. [pipeline] - Orchestration (load → build → analyze → export)
//  7. [cache], [config], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through collabgraph:
//
//	Dataset JSON
//	     ↓
//	[io] package (decode records)
//	     ↓
//	[interaction] package (sum weights per user pair)
//	     ↓
//	[graph] package (store + metadata)
//	     ↓
//	[analytics] package (influence, communities, fragmentation)
//	     ↓
//	Report / JSON / DOT / SVG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/collabgraph/pkg/analytics"
//	    "github.com/matzehuels/collabgraph/pkg/interaction"
//	    "github.com/matzehuels/collabgraph/pkg/io"
//	)
//
//	ds, _ := io.ImportDataset("events.json")
//	acc, _ := interaction.Accumulate(ds.Records, interaction.DefaultWeights())
//	store, _ := interaction.Build(acc)
//	a := analytics.New(store)
//	for _, r := range a.MostInfluentialUsers(5) {
//	    fmt.Println(r)
//	}
//
// Most callers should use [pipeline.Runner], which adds caching, validation
// and logging around the same steps.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/graph
// [interaction]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/interaction
// [analytics]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/analytics
// [io]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/collabgraph/pkg/observability
package pkg
