package cache

import (
	"slices"
	"strings"
)

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// DatasetKey addresses the graph built from one dataset.
	DatasetKey(datasetHash string, opts DatasetKeyOpts) string
	// ArtifactKey addresses one rendered export of a graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DatasetKeyOpts holds everything besides the dataset content that changes
// the built graph.
type DatasetKeyOpts struct {
	Weights         map[string]int `json:"weights"`
	Representations []string       `json:"representations"`
}

// ArtifactKeyOpts holds the render options of an artifact.
type ArtifactKeyOpts struct {
	Format    string   `json:"format"`
	Highlight []string `json:"highlight,omitempty"`
}

// DefaultKeyer produces "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey hashes the dataset hash with the build options. Representation
// order does not matter.
func (DefaultKeyer) DatasetKey(datasetHash string, opts DatasetKeyOpts) string {
	reps := slices.Clone(opts.Representations)
	slices.Sort(reps)
	opts.Representations = reps
	return hashKey("dataset", datasetHash, opts)
}

// ArtifactKey hashes the graph hash with the render options. Highlight
// order does not matter.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	hl := slices.Clone(opts.Highlight)
	slices.Sort(hl)
	opts.Highlight = hl
	opts.Format = strings.ToLower(opts.Format)
	return hashKey("artifact", graphHash, opts)
}
