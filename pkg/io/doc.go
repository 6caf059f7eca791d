// Package io reads interaction datasets and reads and writes collaboration
// graphs as JSON.
//
// # Dataset Format
//
// A dataset is the output of an external event collector: one record per
// categorized interaction.
//
//	{
//	  "records": [
//	    {"category": "merge", "actor": "bob", "acted_upon": "alice"},
//	    {"category": "review", "actor": "alice", "acted_upon": "bob", "state": "APPROVED"},
//	    {"category": "mention", "actor": "carol", "acted_upon": "bob", "occurrences": 3},
//	    {"category": "reaction", "actor": "dave", "acted_upon": "carol", "reaction": "HEART"}
//	  ]
//	}
//
// Categories are matched case-insensitively; see the interaction package
// for their weights. An unknown category is an error that names the record
// index.
//
// # Graph Format
//
// A graph export is a node-link document with dense vertex ids:
//
//	{
//	  "vertices": [{"id": 0, "label": "alice"}, {"id": 1, "label": "bob"}],
//	  "edges": [{"source": 0, "target": 1, "weight": 5}]
//	}
//
// Vertices are written in index order and edges in canonical (source <
// target) sorted order, so equal graphs always serialize to equal bytes.
// [ReadGraph] accepts what [WriteGraph] produces and rebuilds an equivalent
// store, which the pipeline relies on to serve built graphs from cache.
//
// # Concurrency
//
// The writers read the store once through [graph.Store.Export] and must not
// run concurrently with mutations of that store.
package io
