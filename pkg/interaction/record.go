// Package interaction turns categorized collaboration events into weighted
// user pairs and builds a [graph.Store] from them.
//
// An event names an actor, the user it acted upon and a [Category]. Each
// category carries a weight; the weights of every event between the same two
// users are summed into a single undirected edge, regardless of who acted on
// whom. Self-interactions never produce an edge.
package interaction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCategory is returned for a category name that does not exist.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidRecord is returned for a record that can never be accumulated,
	// such as one with negative occurrences.
	ErrInvalidRecord = errors.New("invalid record")
)

// Category classifies one interaction event.
type Category string

const (
	// CategoryMerge: the actor merged a pull request opened by the acted-upon user.
	CategoryMerge Category = "merge"
	// CategoryReview: the actor approved or requested changes on the acted-upon
	// user's pull request.
	CategoryReview Category = "review"
	// CategoryComment: the actor commented on content authored by the acted-upon
	// user. One record stands for one distinct commenter/content pair.
	CategoryComment Category = "comment"
	// CategoryMention: the actor mentioned the acted-upon user.
	CategoryMention Category = "mention"
	// CategoryReactionPositive: the actor reacted approvingly to a comment.
	CategoryReactionPositive Category = "reaction_positive"
	// CategoryReactionNegative: the actor reacted disapprovingly to a comment.
	CategoryReactionNegative Category = "reaction_negative"
	// CategoryReaction is an unclassified reaction. Its Record.Reaction
	// content decides whether it counts as positive, negative or not at all.
	CategoryReaction Category = "reaction"
)

// Categories lists every weighted category.
var Categories = []Category{
	CategoryMerge,
	CategoryReview,
	CategoryComment,
	CategoryMention,
	CategoryReactionPositive,
	CategoryReactionNegative,
}

// ParseCategory converts a name to a category. Matching ignores case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryMerge, CategoryReview, CategoryComment, CategoryMention,
		CategoryReactionPositive, CategoryReactionNegative, CategoryReaction:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Review states that count as an interaction. Other states (COMMENTED,
// DISMISSED, PENDING) are dropped.
const (
	StateApproved         = "APPROVED"
	StateChangesRequested = "CHANGES_REQUESTED"
)

var (
	positiveReactions = map[string]bool{"THUMBS_UP": true, "HEART": true, "HOORAY": true, "ROCKET": true}
	negativeReactions = map[string]bool{"THUMBS_DOWN": true, "CONFUSED": true}
)

// ClassifyReaction maps a reaction content such as "THUMBS_UP" to its
// weighted category. Neutral contents (LAUGH, EYES) report false.
func ClassifyReaction(content string) (Category, bool) {
	c := strings.ToUpper(strings.TrimSpace(content))
	switch {
	case positiveReactions[c]:
		return CategoryReactionPositive, true
	case negativeReactions[c]:
		return CategoryReactionNegative, true
	}
	return "", false
}

// Record is one categorized interaction from Actor towards ActedUpon.
type Record struct {
	Category  Category `json:"category"`
	Actor     string   `json:"actor"`
	ActedUpon string   `json:"acted_upon"`
	// Occurrences counts repeated events in one record. Zero means a single
	// event.
	Occurrences int `json:"occurrences,omitempty"`
	// State is the review state. Only consulted for reviews; empty is
	// accepted.
	State string `json:"state,omitempty"`
	// Reaction is the reaction content of an unclassified reaction.
	Reaction string `json:"reaction,omitempty"`
}

// Events returns the number of events the record stands for.
func (r Record) Events() int {
	if r.Occurrences == 0 {
		return 1
	}
	return r.Occurrences
}
