// Package verify decides whether a submitted term is a valid member of a
// category for the active letter, and surfaces alternative valid answers.
package verify

import (
	"context"
	"strings"

	"github.com/okian/riddlerush/internal/domain/model"
	"github.com/okian/riddlerush/pkg/logger"
	"github.com/okian/riddlerush/pkg/metrics"
)

// maxOtherAnswers caps the alternative answers surfaced to the UI.
const maxOtherAnswers = 4

// Source resolves the candidate word list for a category search word.
// Sources are expected to honor ctx for cancellation and timeouts.
type Source interface {
	Lookup(ctx context.Context, searchWord, letter string) ([]string, error)
}

// Verifier dispatches answer checks to the provider backing a category.
// External source failures degrade to an empty candidate list; they are
// logged but never surface as a verification error.
type Verifier struct {
	petscan     Source
	offline     Source
	offlineMode bool
	log         logger.Logger
}

// Option applies a configuration option to the Verifier.
type Option func(*Verifier)

// WithOfflineMode forces petscan categories through the offline dataset.
func WithOfflineMode(enabled bool) Option {
	return func(v *Verifier) {
		v.offlineMode = enabled
	}
}

// WithLogger sets a custom logger for the verifier.
func WithLogger(l logger.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// New creates a Verifier over the given petscan and offline sources.
func New(petscan, offline Source, opts ...Option) *Verifier {
	v := &Verifier{
		petscan: petscan,
		offline: offline,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks a submitted term against the category's word list for the
// active letter and returns up to four alternative valid answers.
func (v *Verifier) Verify(ctx context.Context, category model.Category, letter, term string) (model.VerificationResult, error) {
	var (
		candidates []string
		err        error
	)
	switch category.SearchProvider {
	case model.ProviderPetScan:
		if v.offlineMode {
			candidates, err = v.offline.Lookup(ctx, category.SearchWord, letter)
		} else {
			candidates, err = v.petscan.Lookup(ctx, category.SearchWord, letter)
		}
	case model.ProviderOffline:
		candidates, err = v.offline.Lookup(ctx, category.SearchWord, letter)
	case model.ProviderWikipedia:
		return model.VerificationResult{}, ErrNotImplemented
	default:
		return model.VerificationResult{}, ErrUnknownProvider
	}
	if err != nil {
		// An unreachable or broken source only means "no match found".
		metrics.RecordSourceFailure(string(category.SearchProvider))
		if v.log != nil {
			v.log.Warn(ctx, "candidate lookup failed; treating as empty",
				logger.String("provider", string(category.SearchProvider)),
				logger.String("searchWord", category.SearchWord),
				logger.Error(err),
			)
		}
		candidates = nil
	}
	return buildResult(candidates, letter, term, category), nil
}

// buildResult merges category extras into the candidate list, filters to
// terms starting with the target letter, and derives found/other. The
// found check is an exact match of the raw term against the candidates.
func buildResult(candidates []string, letter, term string, category model.Category) model.VerificationResult {
	merged := candidates
	if len(category.AdditionalData) > 0 {
		merged = append(append([]string(nil), candidates...), category.AdditionalData...)
	}

	prefix := strings.ToUpper(letter)
	filtered := make([]string, 0, len(merged))
	for _, c := range merged {
		if strings.HasPrefix(strings.ToUpper(c), prefix) {
			filtered = append(filtered, c)
		}
	}

	found := false
	other := make([]string, 0, maxOtherAnswers)
	for _, c := range filtered {
		if c == term {
			found = true
			continue
		}
		if len(other) < maxOtherAnswers {
			other = append(other, c)
		}
	}
	return model.VerificationResult{Found: found, Other: other}
}
