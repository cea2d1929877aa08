package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/services"
	"github.com/desertthunder/spotifyle/internal/shared"
	internaltest "github.com/desertthunder/spotifyle/internal/testing"
)

// fakeFetcher serves canned top items for page 0 of each time range and empty
// pages otherwise.
type fakeFetcher struct {
	tracks    map[string][]services.SpotifyTrack
	artists   map[string][]services.SpotifyArtist
	trackErr  error
	artistErr error
}

func (f *fakeFetcher) TopTracks(ctx context.Context, timeRange string, limit, offset int) (*services.SpotifyTopTracks, error) {
	if f.trackErr != nil {
		return nil, f.trackErr
	}
	if offset > 0 {
		return &services.SpotifyTopTracks{}, nil
	}
	return &services.SpotifyTopTracks{Items: f.tracks[timeRange]}, nil
}

func (f *fakeFetcher) TopArtists(ctx context.Context, timeRange string, limit, offset int) (*services.SpotifyTopArtists, error) {
	if f.artistErr != nil {
		return nil, f.artistErr
	}
	if offset > 0 {
		return &services.SpotifyTopArtists{}, nil
	}
	return &services.SpotifyTopArtists{Items: f.artists[timeRange]}, nil
}

func fakeTrack(id, name string) services.SpotifyTrack {
	return services.SpotifyTrack{
		ID:         id,
		Name:       name,
		URI:        "spotify:track:" + id,
		PreviewURL: "https://preview.example/" + id + ".mp3",
		Album: services.SpotifyAlbum{
			Images: []services.Image{{URL: "https://img.example/" + id + ".jpg"}},
		},
	}
}

func fakeArtist(id, name string) services.SpotifyArtist {
	return services.SpotifyArtist{
		ID:     id,
		Name:   name,
		URI:    "spotify:artist:" + id,
		Images: []services.Image{{URL: "https://img.example/" + id + ".jpg"}},
	}
}

func TestHarvest(t *testing.T) {
	ctx := context.Background()

	t.Run("Harvests Every Window And Upserts By URI", func(t *testing.T) {
		db := internaltest.MustOpenDB(t)
		repo := repositories.NewAssetRepository(db)
		fetcher := &fakeFetcher{
			tracks: map[string][]services.SpotifyTrack{
				"short_term":  {fakeTrack("t1", "Karma Police"), fakeTrack("t2", "Paranoid Android")},
				"medium_term": {fakeTrack("t1", "Karma Police")},
			},
			artists: map[string][]services.SpotifyArtist{
				"short_term": {fakeArtist("a1", "Radiohead")},
			},
		}
		engine := NewHarvestEngine(fetcher, repo, 1000)

		result, err := engine.Harvest(ctx, nil, "user-1")
		if err != nil {
			t.Fatalf("harvest failed: %v", err)
		}

		if result.Pages != 30 {
			t.Errorf("expected 30 pages (3 windows x 5 pages x 2 kinds), got %d", result.Pages)
		}
		if result.Fetched != 4 {
			t.Errorf("expected 4 fetched items, got %d", result.Fetched)
		}
		if result.Created != 3 {
			t.Errorf("expected 3 created assets, got %d", result.Created)
		}
		if result.Existing != 1 {
			t.Errorf("expected 1 existing asset, got %d", result.Existing)
		}

		tracks, err := repo.ListByKind(models.AssetTrack, "user-1", true, true)
		if err != nil {
			t.Fatalf("failed to list tracks: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 observed tracks, got %d", len(tracks))
		}
	})

	t.Run("Attaches Observer To Existing Assets", func(t *testing.T) {
		db := internaltest.MustOpenDB(t)
		repo := repositories.NewAssetRepository(db)

		image := "https://img.example/a1.jpg"
		seeded := models.NewAsset(models.AssetArtist, "spotify:artist:a1", "Radiohead", &image, nil)
		if err := repo.Create(seeded); err != nil {
			t.Fatalf("failed to seed asset: %v", err)
		}

		fetcher := &fakeFetcher{
			artists: map[string][]services.SpotifyArtist{
				"short_term": {fakeArtist("a1", "Radiohead")},
			},
		}
		engine := NewHarvestEngine(fetcher, repo, 1000)

		result, err := engine.Harvest(ctx, nil, "user-2")
		if err != nil {
			t.Fatalf("harvest failed: %v", err)
		}
		if result.Created != 0 || result.Existing != 1 {
			t.Errorf("expected upsert to reuse the seeded row, got created %d existing %d", result.Created, result.Existing)
		}

		artists, err := repo.ListByKind(models.AssetArtist, "user-2", true, false)
		if err != nil {
			t.Fatalf("failed to list artists: %v", err)
		}
		if len(artists) != 1 {
			t.Errorf("expected the existing asset in user-2's pool, got %d assets", len(artists))
		}
	})

	t.Run("Reports Progress", func(t *testing.T) {
		db := internaltest.MustOpenDB(t)
		repo := repositories.NewAssetRepository(db)
		fetcher := &fakeFetcher{
			tracks: map[string][]services.SpotifyTrack{
				"short_term": {fakeTrack("t1", "Karma Police")},
			},
		}
		engine := NewHarvestEngine(fetcher, repo, 1000)

		progress := make(chan ProgressUpdate, 64)
		if _, err := engine.Harvest(ctx, progress, "user-1"); err != nil {
			t.Fatalf("harvest failed: %v", err)
		}
		close(progress)

		seen := map[Phase]bool{}
		for update := range progress {
			seen[update.Phase] = true
		}
		for _, phase := range []Phase{FetchTopTracks, FetchTopArtists, SaveAssets} {
			if !seen[phase] {
				t.Errorf("expected a %s update", phase)
			}
		}
	})

	t.Run("Propagates Provider Errors", func(t *testing.T) {
		db := internaltest.MustOpenDB(t)
		repo := repositories.NewAssetRepository(db)
		fetcher := &fakeFetcher{trackErr: errors.New("rate limited")}
		engine := NewHarvestEngine(fetcher, repo, 1000)

		_, err := engine.Harvest(ctx, nil, "user-1")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Validates Arguments", func(t *testing.T) {
		db := internaltest.MustOpenDB(t)
		repo := repositories.NewAssetRepository(db)
		engine := NewHarvestEngine(&fakeFetcher{}, repo, 1000)

		if _, err := engine.Harvest(ctx, nil, ""); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for empty user, got %v", err)
		}

		missing := NewHarvestEngine(nil, repo, 1000)
		if _, err := missing.Harvest(ctx, nil, "user-1"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable for missing client, got %v", err)
		}
	})
}
