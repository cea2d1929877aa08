package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotifyle/internal/formatter"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/tasks"
	"github.com/urfave/cli/v3"
)

// GameCreate generates a complete game for a publisher.
func (r *Runner) GameCreate(ctx context.Context, cmd *cli.Command) error {
	publisherID := cmd.String("publisher")
	maxStages := int(cmd.Int("max-stages"))
	seed := int64(cmd.Int("seed"))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if maxStages <= 0 {
		maxStages = r.config.Game.MaxStages
	}

	engine, err := r.gameEngine(seed)
	if err != nil {
		return err
	}

	r.writePlain("Generating game for %s...\n\n", publisherID)

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ReserveGame:
				r.writePlain("🎲 %s\n", update.Message)
			case tasks.BuildLockIn, tasks.BuildFindTrackArt, tasks.BuildArtistTrivia:
				r.writePlain("🧩 %s\n", update.Message)
			case tasks.ShuffleStages:
				r.writePlain("\n🔀 %s\n", update.Message)
			case tasks.SaveStages:
				r.writePlain("   %s\n", update.Message)
			case tasks.FinalizeGame:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.CreateGame(ctx, progressCh, publisherID, maxStages)
	close(progressCh)

	if err != nil {
		return fmt.Errorf("game generation failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlain("\n")
	r.writePlainHeader("Game Ready!")
	r.writePlain("Name: %s\n", result.Game.Name())
	r.writePlain("Code: %s\n", result.Game.GameCode())
	r.writePlain("Stages: %d (%d trivia, %d track art, %d lock-in)\n",
		result.StageCount, result.TriviaCount, result.TrackCount, result.LockInCount)
	r.writePlain("Choices: %d\n", result.ChoiceCount)
	r.writePlain("Pools: %d artists, %d tracks\n", result.ArtistPool, result.TrackPool)

	if result.TriviaCount < maxStages {
		r.writePlain("\n⚠ Only %d of %d trivia stages were generated.\n", result.TriviaCount, maxStages)
	}

	return nil
}

// GameList lists a publisher's games.
func (r *Runner) GameList(ctx context.Context, cmd *cli.Command) error {
	publisherID := cmd.String("publisher")
	playableOnly := cmd.Bool("playable")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	db, err := r.openDB()
	if err != nil {
		return err
	}

	games, err := repositories.NewGameRepository(db).ListByPublisher(publisherID, playableOnly)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if useJSON {
		out := make([]map[string]any, 0, len(games))
		for _, g := range games {
			out = append(out, map[string]any{
				"id":        g.ID(),
				"code":      g.GameCode(),
				"name":      g.Name(),
				"processed": g.Processed(),
			})
		}
		return r.writeJSON(out, pretty)
	}

	r.writePlain("Found %d games:\n\n", len(games))
	for i, g := range games {
		r.writePlain("%d. %s\n", i+1, g.Name())
		r.writePlain("   Code: %s\n", g.GameCode())
		if g.Processed() {
			r.writePlain("   Status: playable\n")
		} else {
			r.writePlain("   Status: generating\n")
		}
		r.writePlain("\n")
	}

	return nil
}

// GameShow exports a game's stages and choices in the requested format.
func (r *Runner) GameShow(ctx context.Context, cmd *cli.Command) error {
	code := cmd.StringArg("code")
	format := strings.ToLower(cmd.String("format"))
	outputDir := cmd.String("output")
	pretty := cmd.Bool("pretty")

	if code == "" {
		return fmt.Errorf("%w: game code argument is required", shared.ErrMissingArgument)
	}

	db, err := r.openDB()
	if err != nil {
		return err
	}

	// Exporting only reads persisted stages, no synthesizer needed.
	engine := tasks.NewGameEngine(
		repositories.NewAssetRepository(db),
		repositories.NewGameRepository(db),
		nil,
		r.newRNG(0),
	)

	export, err := engine.ExportByCode(code)
	if err != nil {
		return fmt.Errorf("failed to export game: %w", err)
	}

	switch format {
	case "json":
		return r.writeJSON(export, pretty)
	case "csv":
		result, err := formatter.WriteCSVExport(export, fmt.Sprintf("%s/%s", outputDir, export.Game.GameCode()))
		if err != nil {
			return fmt.Errorf("failed to write CSV export: %w", err)
		}
		r.writePlain("✓ Stages written to %s\n", result.StagesFile)
		r.writePlain("✓ Metadata written to %s\n", result.MetadataFile)
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(export, outputDir)
		if err != nil {
			return fmt.Errorf("failed to write Markdown export: %w", err)
		}
		r.writePlain("✓ Game written to %s\n", path)
	case "txt", "text":
		path, err := formatter.WriteTextExport(export, fmt.Sprintf("%s/%s_stages.txt", outputDir, export.Game.GameCode()))
		if err != nil {
			return fmt.Errorf("failed to write text export: %w", err)
		}
		r.writePlain("✓ Game written to %s\n", path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	return nil
}
