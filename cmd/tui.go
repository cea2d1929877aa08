package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for game management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	publisherID := cmd.String("publisher")
	maxStages := int(cmd.Int("max-stages"))
	seed := int64(cmd.Int("seed"))

	if maxStages <= 0 {
		maxStages = r.config.Game.MaxStages
	}

	engine, err := r.gameEngine(seed)
	if err != nil {
		return err
	}

	db, err := r.openDB()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotifyle-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, repositories.NewGameRepository(db), engine, publisherID, maxStages)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
