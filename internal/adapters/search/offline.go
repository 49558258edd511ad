package search

import (
	"context"
	"strings"

	"github.com/okian/riddlerush/internal/dataset"
)

// Offline serves candidate terms from a pre-indexed
// category -> letter -> terms dataset. It is the deterministic source
// and the default in tests. A missing category or letter yields an
// empty list, never an error.
type Offline struct {
	answers dataset.OfflineAnswers
}

// NewOffline creates an offline source over the given index.
func NewOffline(answers dataset.OfflineAnswers) *Offline {
	return &Offline{answers: answers}
}

// Lookup returns the terms for a category and letter.
func (o *Offline) Lookup(_ context.Context, searchWord, letter string) ([]string, error) {
	byLetter, ok := o.answers[searchWord]
	if !ok {
		return nil, nil
	}
	terms := byLetter[strings.ToLower(letter)]
	out := make([]string, len(terms))
	copy(out, terms)
	return out, nil
}
