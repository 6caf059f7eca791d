// Package pipeline runs the load → build → analyze → export flow shared by
// the CLI and the HTTP API.
//
// # Stages
//
//  1. Load: read an interaction dataset file
//  2. Build: accumulate weights and build the graph store (cached)
//  3. Analyze: compute a [Report] from the store
//  4. Export: render the graph as JSON, DOT or SVG (cached)
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	ds, err := runner.Load(ctx, "interactions.json")
//	g, err := runner.Build(ctx, ds, opts)
//	report, err := runner.Analyze(ctx, g, opts)
//	artifacts, hit, err := runner.Export(ctx, g, opts)
//
// Built graphs are cached under the dataset's content hash plus the build
// options, and export artifacts under the hash of the graph's JSON export
// plus the render options. Reports are always recomputed and never stored.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collabgraph/pkg/analytics"
	"github.com/matzehuels/collabgraph/pkg/cache"
	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/graph"
	"github.com/matzehuels/collabgraph/pkg/interaction"
)

// DefaultTop is the default number of entries in ranked report sections.
const DefaultTop = 5

// Format constants for export formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options configures a pipeline run.
type Options struct {
	// Build options
	Weights interaction.Weights        `json:"weights"`
	Kinds   []graph.RepresentationKind `json:"-"`
	Refresh bool                       `json:"refresh,omitempty"` // skip the graph cache lookup

	// Analyze options
	Top  int    `json:"top,omitempty"`
	User string `json:"user,omitempty"` // focus user for closest queries

	// Export options
	Formats   []string `json:"formats,omitempty"`
	Highlight []string `json:"highlight,omitempty"`

	// Cache lifetimes; zero uses the cache package defaults.
	GraphTTL    time.Duration `json:"-"`
	ArtifactTTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Graph is a built collaboration graph.
type Graph struct {
	Store    *graph.Store
	Analyzer *analytics.Analyzer

	// Hash is the content hash of the graph's JSON export.
	Hash string

	// Stats describes the ingestion. Nil when the graph came from cache.
	Stats *interaction.Stats

	// Cached reports whether the graph was served from cache.
	Cached bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForAnalyze(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild validates and sets defaults for building.
// All-zero weights select the default weights.
func (o *Options) ValidateForBuild() error {
	if o.Weights == (interaction.Weights{}) {
		o.Weights = interaction.DefaultWeights()
	}
	if err := o.Weights.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid weights")
	}
	o.setLogger()
	return nil
}

// ValidateForAnalyze validates and sets defaults for analysis.
func (o *Options) ValidateForAnalyze() error {
	if o.Top == 0 {
		o.Top = DefaultTop
	}
	if err := errs.ValidateTopN(o.Top); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// ValidateForExport validates and sets defaults for exporting.
func (o *Options) ValidateForExport() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DatasetKeyOpts returns cache key options for building.
func (o *Options) DatasetKeyOpts() cache.DatasetKeyOpts {
	weights := make(map[string]int, len(interaction.Categories))
	for _, c := range interaction.Categories {
		weights[string(c)] = o.Weights.For(c)
	}
	kinds := o.Kinds
	if len(kinds) == 0 {
		kinds = graph.AllRepresentations
	}
	reps := make([]string, 0, len(kinds))
	for _, k := range kinds {
		reps = append(reps, k.String())
	}
	slices.Sort(reps)
	return cache.DatasetKeyOpts{Weights: weights, Representations: slices.Compact(reps)}
}

// ArtifactKeyOpts returns cache key options for one export format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Highlight: o.Highlight}
}

func ttlOr(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}

// String formats options for debug logs.
func (o *Options) String() string {
	return fmt.Sprintf("top=%d user=%q formats=%v highlight=%v", o.Top, o.User, o.Formats, o.Highlight)
}
