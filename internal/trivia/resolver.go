package trivia

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotifyle/internal/shared"
)

// ArtistHit is one search result candidate carrying the primary artist of a hit.
type ArtistHit struct {
	Name string
	ID   int64
}

// ArtistSearcher queries an external search index for artist candidates.
// Implemented by [services.Genius].
type ArtistSearcher interface {
	SearchArtists(ctx context.Context, query string) ([]ArtistHit, error)
}

// ArtistDetail is the descriptive payload for a resolved artist.
type ArtistDetail struct {
	Name        string
	Description string
}

// ArtistDetailer fetches the plain-text biography for a resolved artist id.
// Implemented by [services.Genius].
type ArtistDetailer interface {
	ArtistDetails(ctx context.Context, id int64) (*ArtistDetail, error)
}

// Resolver disambiguates free-text artist names against a search index.
type Resolver struct {
	search ArtistSearcher
}

// NewResolver creates a Resolver backed by the given searcher.
func NewResolver(search ArtistSearcher) *Resolver {
	return &Resolver{search: search}
}

type candidate struct {
	name string
	id   int64
}

// ResolveArtistID resolves name to an external artist identifier.
//
// Candidates are considered in the order the search index returns them:
// an exact case-insensitive name match wins immediately; failing that, a
// candidate set that collapses to one distinct (name, id) pair wins; failing
// that, the most frequent pair (first seen breaks ties) is accepted only if
// its significant words intersect the query's. Deterministic for a fixed
// candidate ordering.
func (r *Resolver) ResolveArtistID(ctx context.Context, name string) (int64, error) {
	hits, err := r.search.SearchArtists(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("%w: artist search: %v", shared.ErrProviderUnavailable, err)
	}
	if len(hits) == 0 {
		return 0, fmt.Errorf("%w: no search results for %q", shared.ErrResolutionFailed, name)
	}

	candidates := make([]candidate, 0, len(hits))
	for _, hit := range hits {
		if hit.Name == "" {
			continue
		}
		candidates = append(candidates, candidate{name: strings.ToLower(hit.Name), id: hit.ID})

		if strings.EqualFold(name, hit.Name) {
			return hit.ID, nil
		}
	}

	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: no usable candidates for %q", shared.ErrResolutionFailed, name)
	}

	if distinct := distinctCount(candidates); distinct == 1 {
		return candidates[0].id, nil
	}

	best, count := mostFrequent(candidates)
	if count == 0 {
		return 0, fmt.Errorf("%w: no majority candidate for %q", shared.ErrResolutionFailed, name)
	}

	// Similarity vote: compare the concatenated significant words of the
	// query and the majority candidate.
	queryWords := wordSet(concatenated(name))
	candidateWords := wordSet(concatenated(best.name))

	for word := range candidateWords {
		if _, ok := queryWords[word]; ok {
			return best.id, nil
		}
	}

	return 0, fmt.Errorf("%w: candidate %q does not resemble %q", shared.ErrResolutionFailed, best.name, name)
}

// distinctCount returns the number of distinct (name, id) pairs.
func distinctCount(candidates []candidate) int {
	seen := make(map[candidate]struct{}, len(candidates))
	for _, c := range candidates {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// mostFrequent returns the most common candidate by occurrence count,
// breaking ties by first appearance.
func mostFrequent(candidates []candidate) (candidate, int) {
	counts := make(map[candidate]int, len(candidates))
	var order []candidate
	for _, c := range candidates {
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	var best candidate
	bestCount := 0
	for _, c := range order {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best, bestCount
}

// concatenated lowers text and removes inner spaces so multi-word names
// compare as a single token.
func concatenated(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "")
}
