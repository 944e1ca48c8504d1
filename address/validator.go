package address

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// lastResortConfidence is the fixed score of an accept-as-typed result.
// It equals the fallback base on purpose: a fallback candidate is only
// emitted above the base, so validation_source stays the one reliable
// discriminator between the two paths.
const lastResortConfidence = 0.5

// Validator resolves a raw address string into ranked, scored candidate
// interpretations. It owns the result cache and the shared network
// session; Close must be called when validation work is done.
type Validator struct {
	cache      Cache
	suggest    *SuggestClient
	normalizer *Normalizer
	session    *Session
}

// ValidatorOption is a functional option for Validator
type ValidatorOption func(*Validator)

// WithCache sets the result cache
func WithCache(cache Cache) ValidatorOption {
	return func(v *Validator) {
		v.cache = cache
	}
}

// WithSuggestClient enables the two-stage pipeline: suggestions are
// fetched first and each surviving suggestion is normalized. Without it
// the raw address goes to the LLM as a single candidate.
func WithSuggestClient(client *SuggestClient) ValidatorOption {
	return func(v *Validator) {
		v.suggest = client
	}
}

// WithNormalizer sets the LLM normalizer
func WithNormalizer(normalizer *Normalizer) ValidatorOption {
	return func(v *Validator) {
		v.normalizer = normalizer
	}
}

// WithSession sets the shared network session
func WithSession(session *Session) ValidatorOption {
	return func(v *Validator) {
		v.session = session
	}
}

// NewValidator creates a validator. A memory cache and a fresh session are
// used unless options supply alternatives.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.cache == nil {
		v.cache = NewMemoryCache()
	}
	if v.session == nil {
		v.session = NewSession()
	}
	return v
}

// Close releases the validator's network session.
func (v *Validator) Close() {
	v.session.Close()
}

// Validate resolves raw into a ranked candidate list. For non-empty input
// the list is never empty: when every automated stage fails the raw input
// is echoed back as a single low-confidence user_input candidate. Faults
// never propagate to the caller; empty input returns an empty list without
// any network calls.
func (v *Validator) Validate(ctx context.Context, raw string) []Candidate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Candidate{}
	}

	key := CacheKey(raw)
	if cached, ok := v.cache.Get(ctx, key); ok {
		return cached
	}

	candidates, err := v.resolve(ctx, raw)

	var results []Candidate
	switch {
	case err != nil:
		log.Printf("Warning: address validation failed unexpectedly: %v", err)
		results = []Candidate{acceptAsTyped(raw)}
	case len(candidates) > 0:
		results = candidates
	default:
		if fallback := FallbackValidate(raw); fallback != nil {
			results = []Candidate{*fallback}
		} else {
			log.Printf("Warning: address could not be verified, accepting as typed: %q", raw)
			results = []Candidate{acceptAsTyped(raw)}
		}
	}

	results = dedupeAndRank(results)
	v.cache.Set(ctx, key, results)
	return results
}

// resolve runs the suggestion and LLM stages. Modeled failures come back
// as an empty slice; only an unexpected panic surfaces as an error.
func (v *Validator) resolve(ctx context.Context, raw string) (candidates []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("panic in validation pipeline: %v", r)
		}
	}()

	if v.normalizer == nil {
		return nil, nil
	}

	// One batch entry per surviving suggestion; a single nil entry means
	// the raw address alone.
	var batch []*Suggestion
	if v.suggest != nil {
		suggestions := v.suggest.FetchSuggestions(ctx, raw)
		for i := range suggestions {
			if suggestions[i].CountryCode != "" && !strings.EqualFold(suggestions[i].CountryCode, targetCountry) {
				continue
			}
			batch = append(batch, &suggestions[i])
		}
	}
	if len(batch) == 0 {
		batch = []*Suggestion{nil}
	}

	// Fire all normalization calls concurrently and wait for the whole
	// batch; a failed slot contributes nothing.
	normalized := make([]*NormalizedAddress, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	for i, suggestion := range batch {
		g.Go(func() error {
			normalized[i] = v.normalizer.Normalize(gctx, raw, suggestion)
			return nil
		})
	}
	_ = g.Wait()

	for i, result := range normalized {
		if result == nil {
			continue
		}
		candidate := Candidate{
			RawInput:         raw,
			FormattedAddress: result.FormattedAddress,
			Confidence:       result.Confidence,
			Components:       result.Components,
			UnitNumber:       result.UnitNumber,
			Source:           SourceLLM,
		}
		if batch[i] != nil {
			// Two-stage pairing: the formatted address and confidence come
			// from the LLM, the components from the originating suggestion.
			candidate.Components = batch[i].Components()
			candidate.UnitNumber = batch[i].Unit
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func acceptAsTyped(raw string) Candidate {
	return Candidate{
		RawInput:         raw,
		FormattedAddress: raw,
		Confidence:       lastResortConfidence,
		Components:       map[string]string{},
		Source:           SourceUserInput,
	}
}

// dedupeAndRank collapses candidates sharing a formatted address, keeping
// the higher-confidence one, then sorts by confidence descending.
func dedupeAndRank(candidates []Candidate) []Candidate {
	best := make(map[string]int, len(candidates))
	deduped := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if i, seen := best[candidate.FormattedAddress]; seen {
			if candidate.Confidence > deduped[i].Confidence {
				deduped[i] = candidate
			}
			continue
		}
		best[candidate.FormattedAddress] = len(deduped)
		deduped = append(deduped, candidate)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Confidence > deduped[j].Confidence
	})
	return deduped
}
