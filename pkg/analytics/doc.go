// Package analytics computes social metrics over a [graph.Store] built from
// collaboration interactions.
//
// # Edge Source
//
// The analyzer reads edges from the store's edge-metadata table, not from a
// structural representation. Every interaction pair carries a WEIGHT, so the
// two agree for graphs built by the interaction package; an edge that was
// created structurally without any metadata is invisible here. Edges are
// deduplicated by canonical (min-first) ordering and a missing WEIGHT counts
// as 0.
//
// # Queries
//
//   - [Analyzer.MostInfluentialUsers]: weighted degree, descending
//   - [Analyzer.FindCommunities]: connected components with more than one member
//   - [Analyzer.ConnectionLevel]: percentage of mutually reachable pairs
//   - [Analyzer.ClosestUsers]: direct neighbors by edge weight
//   - [Analyzer.ClosestNonDirectUsers]: non-neighbors by hop distance
//   - [Analyzer.FindMostFragmentingUser]: the user whose removal splits the
//     graph the most
//
// Label-based queries resolve the first vertex whose LABEL matches. An
// unknown label yields an empty result rather than an error.
//
// # Ordering
//
// Rankings are stable on vertex index: ties keep ascending index order.
// Community members are listed in depth-first visitation order, starting from
// the lowest unvisited index and visiting neighbors in ascending order.
//
// # Concurrency
//
// An Analyzer is as safe as its store, which is to say not safe for
// concurrent use. [Analyzer.FindMostFragmentingUser] mutates the store
// temporarily and restores it before returning.
package analytics
