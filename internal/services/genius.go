// Genius API client for artist search and biography lookups
//
// Genius API response types based on https://docs.genius.com/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/trivia"
)

const (
	geniusBaseURL = "https://api.genius.com"

	// geniusRateLimit caps requests per second against the Genius API.
	geniusRateLimit = 5.0
)

// geniusSearchResponse is the typed shape of GET /search.
type geniusSearchResponse struct {
	Response *struct {
		Hits []geniusHit `json:"hits"`
	} `json:"response"`
}

type geniusHit struct {
	Result *struct {
		PrimaryArtist *geniusArtistRef `json:"primary_artist"`
	} `json:"result"`
}

type geniusArtistRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// geniusArtistResponse is the typed shape of GET /artists/{id}?text_format=plain.
type geniusArtistResponse struct {
	Response *struct {
		Artist *struct {
			ID          int64  `json:"id"`
			Name        string `json:"name"`
			Description *struct {
				Plain string `json:"plain"`
			} `json:"description"`
		} `json:"artist"`
	} `json:"response"`
}

// GeniusService wraps the Genius API endpoints the trivia pipeline needs,
// throttling outbound requests to geniusRateLimit per second.
// Implements [trivia.ArtistSearcher] and [trivia.ArtistDetailer].
type GeniusService struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var (
	_ trivia.ArtistSearcher = (*GeniusService)(nil)
	_ trivia.ArtistDetailer = (*GeniusService)(nil)
)

// NewGeniusService creates a Genius client with the given bearer token.
// A nil httpClient falls back to [http.DefaultClient].
func NewGeniusService(token string, httpClient *http.Client) (*GeniusService, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing genius client token", shared.ErrMissingCredentials)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeniusService{
		token:      token,
		baseURL:    geniusBaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(geniusRateLimit), 1),
	}, nil
}

func (g *GeniusService) Name() string {
	return "Genius"
}

// SetBaseURL overrides the API base URL, used by tests.
func (g *GeniusService) SetBaseURL(base string) {
	g.baseURL = base
}

// SetRateLimit overrides the request throttle. Non-positive values are
// ignored.
func (g *GeniusService) SetRateLimit(perSecond float64) {
	if perSecond <= 0 {
		return
	}
	g.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Synthesizer builds a question synthesizer backed by this client.
func (g *GeniusService) Synthesizer(rng *rand.Rand) *trivia.Synthesizer {
	return trivia.NewSynthesizer(trivia.NewResolver(g), g, rng)
}

// doRequest performs a rate-limited, authenticated GET request to the Genius API.
func (g *GeniusService) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: genius status %d", shared.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// SearchArtists queries the Genius search index and returns the primary artist
// of each hit, in response order. Hits without a primary artist are skipped.
func (g *GeniusService) SearchArtists(ctx context.Context, query string) ([]trivia.ArtistHit, error) {
	endpoint := fmt.Sprintf("/search?q=%s", url.QueryEscape(query))

	var response geniusSearchResponse
	if err := g.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	if response.Response == nil {
		return nil, nil
	}

	hits := make([]trivia.ArtistHit, 0, len(response.Response.Hits))
	for _, hit := range response.Response.Hits {
		if hit.Result == nil || hit.Result.PrimaryArtist == nil {
			continue
		}
		artist := hit.Result.PrimaryArtist
		hits = append(hits, trivia.ArtistHit{Name: artist.Name, ID: artist.ID})
	}

	return hits, nil
}

// ArtistDetails fetches the plain-text biography for an artist id.
// Fails when the response lacks a name or description.
func (g *GeniusService) ArtistDetails(ctx context.Context, id int64) (*trivia.ArtistDetail, error) {
	endpoint := fmt.Sprintf("/artists/%d?text_format=plain", id)

	var response geniusArtistResponse
	if err := g.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	if response.Response == nil || response.Response.Artist == nil {
		return nil, fmt.Errorf("%w: empty artist response for id %d", shared.ErrProviderUnavailable, id)
	}

	artist := response.Response.Artist
	if artist.Name == "" || artist.Description == nil || artist.Description.Plain == "" {
		return nil, fmt.Errorf("%w: artist %d missing name or description", shared.ErrSynthesisFailed, id)
	}

	return &trivia.ArtistDetail{Name: artist.Name, Description: artist.Description.Plain}, nil
}
