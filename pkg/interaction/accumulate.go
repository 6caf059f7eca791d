package interaction

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Weights assigns an edge weight to each category.
type Weights struct {
	Merge            int `toml:"merge" json:"merge"`
	Review           int `toml:"review" json:"review"`
	Comment          int `toml:"comment" json:"comment"`
	Mention          int `toml:"mention" json:"mention"`
	ReactionPositive int `toml:"reaction_positive" json:"reaction_positive"`
	ReactionNegative int `toml:"reaction_negative" json:"reaction_negative"`
}

// DefaultWeights returns merge 3, review 2, comment 2 and 1 for the rest.
func DefaultWeights() Weights {
	return Weights{
		Merge:            3,
		Review:           2,
		Comment:          2,
		Mention:          1,
		ReactionPositive: 1,
		ReactionNegative: 1,
	}
}

// For returns the weight of c, or 0 for an unweighted category.
func (w Weights) For(c Category) int {
	switch c {
	case CategoryMerge:
		return w.Merge
	case CategoryReview:
		return w.Review
	case CategoryComment:
		return w.Comment
	case CategoryMention:
		return w.Mention
	case CategoryReactionPositive:
		return w.ReactionPositive
	case CategoryReactionNegative:
		return w.ReactionNegative
	}
	return 0
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	for _, c := range Categories {
		if w.For(c) < 0 {
			return fmt.Errorf("weight for %s is negative: %d", c, w.For(c))
		}
	}
	return nil
}

// Pair is the summed weight between two users, with A < B.
type Pair struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Weight int    `json:"weight"`
}

// Stats counts what happened to the records fed into an accumulation.
type Stats struct {
	Records         int              `json:"records"`
	Kept            int              `json:"kept"`
	SelfInteraction int              `json:"self_interaction"`
	MissingUser     int              `json:"missing_user"`
	IgnoredReview   int              `json:"ignored_review"`
	NeutralReaction int              `json:"neutral_reaction"`
	ByCategory      map[Category]int `json:"by_category"`
}

// Dropped returns the number of records that did not contribute weight.
func (s Stats) Dropped() int { return s.Records - s.Kept }

type pairKey struct{ a, b string }

// Accumulation sums record weights per unordered user pair.
type Accumulation struct {
	weights Weights
	sums    map[pairKey]int
	users   map[string]struct{}
	Stats   Stats
}

// NewAccumulation returns an empty accumulation using w.
func NewAccumulation(w Weights) *Accumulation {
	return &Accumulation{
		weights: w,
		sums:    make(map[pairKey]int),
		users:   make(map[string]struct{}),
		Stats:   Stats{ByCategory: make(map[Category]int)},
	}
}

// Accumulate folds records into a new accumulation. It stops at the first
// record that is malformed, naming its index.
func Accumulate(records []Record, w Weights) (*Accumulation, error) {
	acc := NewAccumulation(w)
	for i, r := range records {
		if err := acc.Add(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return acc, nil
}

// Add folds one record in. Records that are well formed but do not count
// (self-interactions, empty handles, non-decisive reviews, neutral reactions)
// are counted in Stats and otherwise ignored.
func (a *Accumulation) Add(r Record) error {
	a.Stats.Records++
	if r.Occurrences < 0 {
		return fmt.Errorf("%w: negative occurrences %d", ErrInvalidRecord, r.Occurrences)
	}

	cat := r.Category
	switch cat {
	case CategoryReaction:
		c, ok := ClassifyReaction(r.Reaction)
		if !ok {
			a.Stats.NeutralReaction++
			return nil
		}
		cat = c
	case CategoryMerge, CategoryComment, CategoryMention,
		CategoryReactionPositive, CategoryReactionNegative:
	case CategoryReview:
		if r.State != "" && r.State != StateApproved && r.State != StateChangesRequested {
			a.Stats.IgnoredReview++
			return nil
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, r.Category)
	}

	actor, target := strings.TrimSpace(r.Actor), strings.TrimSpace(r.ActedUpon)
	if actor == "" || target == "" {
		a.Stats.MissingUser++
		return nil
	}
	if actor == target {
		a.Stats.SelfInteraction++
		return nil
	}

	w := a.weights.For(cat)
	if cat != CategoryComment {
		w *= r.Events()
	}
	key := pairKey{actor, target}
	if key.b < key.a {
		key = pairKey{target, actor}
	}
	a.sums[key] += w
	a.users[actor] = struct{}{}
	a.users[target] = struct{}{}
	a.Stats.Kept++
	a.Stats.ByCategory[cat]++
	return nil
}

// Users returns every user that took part in a counted interaction, sorted.
func (a *Accumulation) Users() []string {
	out := make([]string, 0, len(a.users))
	for u := range a.users {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}

// Pairs returns the summed pairs sorted by A, then B.
func (a *Accumulation) Pairs() []Pair {
	out := make([]Pair, 0, len(a.sums))
	for k, w := range a.sums {
		out = append(out, Pair{A: k.a, B: k.b, Weight: w})
	}
	slices.SortFunc(out, func(x, y Pair) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return out
}

// Weight returns the summed weight between two users in either order.
func (a *Accumulation) Weight(u, v string) int {
	if v < u {
		u, v = v, u
	}
	return a.sums[pairKey{u, v}]
}
