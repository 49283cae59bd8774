// Package metadata resolves parsed media names against TVDB with
// fuzzy-confidence gating.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/watchrr/pkg/medianame"
	"github.com/vmunix/watchrr/pkg/tvdb"
)

// searchLimit caps the number of candidates requested per query.
const searchLimit = 10

// Kind identifies whether a record is a movie or a series.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// Record is a verified metadata match. It is consumed immediately by the
// caller; every bundle re-resolves.
type Record struct {
	Name string
	Year int
	ID   int
	Kind Kind
}

// Expected-absence outcomes. None of these indicate a fault: a bundle
// that cannot be identified is skipped, not failed.
var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrNoResults     = errors.New("no search results")
	ErrWrongType     = errors.New("no results of the required type")
	ErrNoChoices     = errors.New("no usable names in search results")
	ErrLowConfidence = errors.New("best match below confidence threshold")
)

// IsNoMatch reports whether err is one of the expected-absence outcomes.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrNoResults) ||
		errors.Is(err, ErrWrongType) ||
		errors.Is(err, ErrNoChoices) ||
		errors.Is(err, ErrLowConfidence)
}

// Searcher is the metadata lookup collaborator.
type Searcher interface {
	Search(ctx context.Context, query string, year, limit int) ([]tvdb.SearchResult, error)
}

//go:generate mockgen -destination=mocks/searcher.go -package=mocks . Searcher

// Resolver matches parsed names against the lookup service. The client
// handle is constructed once at startup and passed in; there is no hidden
// process-wide state.
type Resolver struct {
	client    Searcher
	threshold int
	log       *slog.Logger
}

// NewResolver creates a resolver with the given confidence threshold (0-100).
func NewResolver(client Searcher, threshold int, log *slog.Logger) *Resolver {
	return &Resolver{
		client:    client,
		threshold: threshold,
		log:       log.With("component", "metadata"),
	}
}

// Resolve queries the lookup service with the parsed title and year,
// filters by the type hint when given, fuzzy-matches the title against
// candidate names and their English translations, and returns the best
// record when its confidence clears the threshold. Expected absence is
// signaled with one of the sentinel errors above.
func (r *Resolver) Resolve(ctx context.Context, parsed medianame.ParsedName, hint Kind) (*Record, error) {
	query := parsed.Title
	if query == "" {
		return nil, ErrEmptyTitle
	}

	results, err := r.client.Search(ctx, query, parsed.Year, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(results) == 0 {
		r.log.Warn("no results", "query", query)
		return nil, ErrNoResults
	}

	if hint != "" {
		filtered := results[:0]
		for _, res := range results {
			if res.Type == string(hint) {
				filtered = append(filtered, res)
			}
		}
		if len(filtered) == 0 {
			r.log.Warn("results filtered out by type", "query", query, "hint", hint)
			return nil, ErrWrongType
		}
		results = filtered
	}

	// Build the choice set keyed by each candidate's display name and,
	// when present and different, its English translation, so both
	// surface as match targets.
	choices := make(map[string]tvdb.SearchResult)
	for _, res := range results {
		if res.Name != "" {
			choices[res.Name] = res
		}
		if eng := res.EnglishName(); eng != "" && eng != res.Name {
			choices[eng] = res
		}
	}
	if len(choices) == 0 {
		r.log.Warn("no usable names in results", "query", query)
		return nil, ErrNoChoices
	}

	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}

	match := medianame.MatchTitle(query, keys)
	if match.Confidence < r.threshold {
		r.log.Warn("low confidence",
			"query", query,
			"best", match.Title,
			"confidence", match.Confidence,
			"threshold", r.threshold)
		return nil, ErrLowConfidence
	}

	selected := choices[match.Title]
	name := selected.Name
	if eng := selected.EnglishName(); eng != "" {
		name = eng
	}

	r.log.Info("confident match",
		"query", query,
		"name", name,
		"matched_on", match.Title,
		"confidence", match.Confidence,
		"kind", selected.Type)

	return &Record{
		Name: name,
		Year: selected.Year,
		ID:   selected.ID,
		Kind: Kind(selected.Type),
	}, nil
}
