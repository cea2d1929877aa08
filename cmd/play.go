package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlayOpen opens a game for a player and prints its stages.
func (r *Runner) PlayOpen(ctx context.Context, cmd *cli.Command) error {
	code := cmd.StringArg("code")
	playerID := cmd.String("player")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if code == "" {
		return fmt.Errorf("%w: game code argument is required", shared.ErrMissingArgument)
	}

	engine, err := r.playEngine()
	if err != nil {
		return err
	}

	active, err := engine.OpenGame(code, playerID)
	if err != nil {
		return fmt.Errorf("failed to open game: %w", err)
	}

	if useJSON {
		return r.writeJSON(playOut(active), pretty)
	}

	r.writePlainHeader(active.Game.Name())
	r.writePlain("Stages: %d\n\n", len(active.Stages))

	for i, view := range active.Stages {
		if q := view.Stage.Question(); q != nil {
			r.writePlain("%d. [%s] %s\n", i+1, view.Stage.Kind(), *q)
		} else {
			r.writePlain("%d. [%s]\n", i+1, view.Stage.Kind())
		}
		for _, choice := range view.Choices {
			r.writePlain("   - %s\n", choice.ID())
		}
		r.writePlain("\n")
	}

	r.writePlain("Submit answers with: spotifyle play answer --player %s --choice <id> --wager <n>\n", playerID)
	return nil
}

// PlayAnswer submits a wagered answer for a stage.
func (r *Runner) PlayAnswer(ctx context.Context, cmd *cli.Command) error {
	playerID := cmd.String("player")
	choiceID := cmd.String("choice")
	wager := cmd.Int("wager")
	useJSON := cmd.Bool("json")

	engine, err := r.playEngine()
	if err != nil {
		return err
	}

	result, err := engine.SubmitAnswer(playerID, choiceID, int64(wager))
	if err != nil {
		return fmt.Errorf("failed to submit answer: %w", err)
	}

	if useJSON {
		return r.writeJSON(answerOut(result), true)
	}

	if result.Correct {
		r.writePlain("✓ Correct! +%d points\n", result.Delta)
	} else {
		r.writePlain("✗ Wrong. %d points\n", result.Delta)
		if result.CorrectChoice != nil {
			r.writePlain("  Correct choice was %s\n", result.CorrectChoice.ID())
		}
	}
	r.writePlain("Score: %d\n", result.Score)

	return nil
}

// PlayProfile prints a player's points and star balance.
func (r *Runner) PlayProfile(ctx context.Context, cmd *cli.Command) error {
	playerID := cmd.String("player")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	engine, err := r.playEngine()
	if err != nil {
		return err
	}

	summary, err := engine.Summary(playerID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if useJSON {
		return r.writeJSON(summaryOut(summary), pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Player %s", playerID))
	r.writePlain("Points: %d\n", summary.Points)
	r.writePlain("Stars: %d (%d available)\n", summary.Stars, summary.AvailableStars)
	r.writePlain("Biggest gain: %d\n", summary.Profile.BiggestGainer())
	r.writePlain("Biggest loss: %d\n", summary.Profile.BiggestLoser())

	return nil
}

// PlayStar consumes one of the player's available stars.
func (r *Runner) PlayStar(ctx context.Context, cmd *cli.Command) error {
	playerID := cmd.String("player")

	engine, err := r.playEngine()
	if err != nil {
		return err
	}

	summary, err := engine.ConsumeStar(playerID)
	if err != nil {
		return fmt.Errorf("failed to consume star: %w", err)
	}

	r.writePlain("⭐ Star consumed. %d remaining.\n", summary.AvailableStars)
	return nil
}

func playOut(active *tasks.ActiveGame) map[string]any {
	stages := make([]map[string]any, 0, len(active.Stages))
	for _, view := range active.Stages {
		choices := make([]map[string]any, 0, len(view.Choices))
		for _, c := range view.Choices {
			choices = append(choices, map[string]any{"id": c.ID(), "asset_id": c.AssetID()})
		}
		stage := map[string]any{
			"id":      view.Stage.ID(),
			"kind":    view.Stage.Kind().String(),
			"choices": choices,
		}
		if q := view.Stage.Question(); q != nil {
			stage["question"] = *q
		}
		stages = append(stages, stage)
	}

	return map[string]any{
		"game":   map[string]any{"code": active.Game.GameCode(), "name": active.Game.Name()},
		"score":  active.Scoreboard.Score(),
		"stages": stages,
	}
}

func answerOut(result *tasks.AnswerResult) map[string]any {
	out := map[string]any{
		"choice":  result.Choice.ID(),
		"correct": result.Correct,
		"delta":   result.Delta,
		"score":   result.Score,
	}
	if result.CorrectChoice != nil {
		out["correct_choice"] = result.CorrectChoice.ID()
	}
	return out
}

func summaryOut(summary *tasks.PlayerSummary) map[string]any {
	return map[string]any{
		"player_id":       summary.Profile.PlayerID(),
		"points":          summary.Points,
		"stars":           summary.Stars,
		"available_stars": summary.AvailableStars,
		"consumed_stars":  summary.Profile.ConsumedStars(),
	}
}
