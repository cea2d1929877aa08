package tasks

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/services"
	"github.com/desertthunder/spotifyle/internal/shared"
)

const (
	harvestPages    = 5
	harvestPageSize = 50
)

// TopAssetFetcher defines the slice of the Spotify client the harvest engine
// needs. This abstraction allows for easier testing and decoupling from the
// concrete implementation.
type TopAssetFetcher interface {
	TopTracks(ctx context.Context, timeRange string, limit, offset int) (*services.SpotifyTopTracks, error)
	TopArtists(ctx context.Context, timeRange string, limit, offset int) (*services.SpotifyTopArtists, error)
}

// HarvestResult contains all data from a full harvest run.
type HarvestResult struct {
	Fetched  int // Assets returned by the provider, duplicates included
	Created  int // New asset rows inserted
	Existing int // Assets already in the corpus, re-observed
	Pages    int // Provider pages fetched
}

// HarvestEngine pulls a user's top tracks and artists into the asset corpus.
// Contains dependencies on the Spotify client and the asset repository.
type HarvestEngine struct {
	spotify TopAssetFetcher
	assets  *repositories.AssetRepository
	limiter *rate.Limiter
}

// NewHarvestEngine creates a HarvestEngine with the provided client and
// repository. rateLimit is requests per second; non-positive values fall
// back to 5.
func NewHarvestEngine(spotify TopAssetFetcher, assets *repositories.AssetRepository, rateLimit float64) *HarvestEngine {
	if rateLimit <= 0 {
		rateLimit = 5.0
	}
	return &HarvestEngine{
		spotify: spotify,
		assets:  assets,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
	}
}

// Harvest fetches the user's top tracks and artists across every time range
// and persists them as observed assets.
//
// Each of the three affinity windows is paged five times for both tracks and
// artists. Assets are upserted by URI: an asset another user already surfaced
// is not duplicated, but the harvesting user is always attached as an
// observer so their stage pools include it.
func (e *HarvestEngine) Harvest(ctx context.Context, progress chan<- ProgressUpdate, userID string) (*HarvestResult, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify client not initialized", shared.ErrServiceUnavailable)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", shared.ErrInvalidArgument)
	}

	result := &HarvestResult{}
	totalPages := len(services.TimeRanges) * harvestPages * 2

	step := 0
	for _, timeRange := range services.TimeRanges {
		for page := 0; page < harvestPages; page++ {
			offset := page * harvestPageSize

			step++
			sendProgress(progress, fetchTopUpdate(FetchTopTracks, step, totalPages, timeRange, page))
			if err := e.limiter.Wait(ctx); err != nil {
				return result, err
			}
			tracks, err := e.spotify.TopTracks(ctx, timeRange, harvestPageSize, offset)
			if err != nil {
				return result, fmt.Errorf("%w: top tracks (%s, offset %d): %v", shared.ErrAPIRequest, timeRange, offset, err)
			}
			for _, item := range tracks.Items {
				if err := e.saveAsset(progress, item.Asset(), userID, result); err != nil {
					return result, err
				}
			}

			step++
			sendProgress(progress, fetchTopUpdate(FetchTopArtists, step, totalPages, timeRange, page))
			if err := e.limiter.Wait(ctx); err != nil {
				return result, err
			}
			artists, err := e.spotify.TopArtists(ctx, timeRange, harvestPageSize, offset)
			if err != nil {
				return result, fmt.Errorf("%w: top artists (%s, offset %d): %v", shared.ErrAPIRequest, timeRange, offset, err)
			}
			for _, item := range artists.Items {
				if err := e.saveAsset(progress, item.Asset(), userID, result); err != nil {
					return result, err
				}
			}

			result.Pages += 2
		}
	}

	return result, nil
}

// saveAsset upserts one harvested asset by URI and records the observer.
func (e *HarvestEngine) saveAsset(progress chan<- ProgressUpdate, asset *models.Asset, userID string, result *HarvestResult) error {
	result.Fetched++

	existing, err := e.assets.GetByURI(asset.URI())
	switch {
	case err == nil:
		asset = existing
		result.Existing++
	case errors.Is(err, shared.ErrAssetNotFound):
		if err := e.assets.Create(asset); err != nil {
			return fmt.Errorf("failed to save asset %s: %w", asset.URI(), err)
		}
		result.Created++
		sendProgress(progress, saveAssetsUpdate(result.Created, result.Fetched, asset))
	default:
		return fmt.Errorf("failed to look up asset %s: %w", asset.URI(), err)
	}

	if err := e.assets.Observe(asset.ID(), userID); err != nil {
		return err
	}
	return nil
}
