package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Harvest fetches the authenticated user's top tracks and artists into the
// local asset corpus.
func (r *Runner) Harvest(ctx context.Context, cmd *cli.Command) error {
	userID := cmd.String("user")
	rateLimit := cmd.Float("rate")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if r.config.Credentials.Spotify.AccessToken == "" {
		return fmt.Errorf("%w: run 'spotifyle auth login' first", shared.ErrNotAuthenticated)
	}
	if err := r.spotify.Authenticate(ctx, r.config.Credentials.Spotify.Map()); err != nil {
		return fmt.Errorf("failed to authenticate with Spotify: %w", err)
	}

	if rateLimit == 0 {
		rateLimit = r.config.Game.RateLimit
	}

	db, err := r.openDB()
	if err != nil {
		return err
	}

	engine := tasks.NewHarvestEngine(r.spotify, repositories.NewAssetRepository(db), rateLimit)

	r.writePlain("Harvesting listening history for %s...\n\n", userID)

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchTopTracks, tasks.FetchTopArtists:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SaveAssets:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Harvest(ctx, progressCh, userID)
	close(progressCh)

	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlain("\n")
	r.writePlainHeader("Harvest Complete!")
	r.writePlain("Fetched: %d assets across %d pages\n", result.Fetched, result.Pages)
	r.writePlain("Created: %d new assets\n", result.Created)
	r.writePlain("Existing: %d already in corpus\n", result.Existing)

	return nil
}
