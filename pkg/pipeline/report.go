package pipeline

import (
	"time"

	"github.com/matzehuels/collabgraph/pkg/analytics"
	"github.com/matzehuels/collabgraph/pkg/interaction"
)

// Report is the result of [Runner.Analyze].
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	GraphHash   string    `json:"graph_hash"`

	Summary         analytics.Summary        `json:"summary"`
	Influencers     []analytics.Ranked       `json:"influencers"`
	Communities     [][]string               `json:"communities"`
	ConnectionLevel float64                  `json:"connection_level"`
	Fragmenting     *analytics.Fragmentation `json:"fragmenting,omitempty"`
	Focus           *Focus                   `json:"focus,omitempty"`

	// Ingestion is nil when the graph came from cache.
	Ingestion *interaction.Stats `json:"ingestion,omitempty"`
}

// Focus holds the closest-user queries for one user.
type Focus struct {
	User      string             `json:"user"`
	Closest   []analytics.Ranked `json:"closest"`
	NonDirect []analytics.Ranked `json:"non_direct"`
}
