package tasks

import (
	"fmt"

	"github.com/desertthunder/spotifyle/internal/formatter"
)

// Export resolves a game's stages and choices against the asset corpus for
// display or file export.
func (e *GameEngine) Export(gameID string) (*formatter.GameExport, error) {
	game, err := e.games.Get(gameID)
	if err != nil {
		return nil, err
	}

	stageRows, err := e.games.StagesByGame(gameID)
	if err != nil {
		return nil, err
	}

	export := &formatter.GameExport{
		Game:   game,
		Stages: make([]formatter.StageRow, 0, len(stageRows)),
	}

	for _, stage := range stageRows {
		row := formatter.StageRow{
			Position: stage.Position(),
			Kind:     stage.Kind(),
		}
		if q := stage.Question(); q != nil {
			row.Question = *q
		}

		choices, err := e.games.ChoicesByStage(stage.ID())
		if err != nil {
			return nil, err
		}
		for _, choice := range choices {
			asset, err := e.assets.Get(choice.AssetID())
			if err != nil {
				return nil, fmt.Errorf("failed to resolve choice asset: %w", err)
			}
			row.Choices = append(row.Choices, formatter.ChoiceRow{
				AssetName: asset.Name(),
				AssetURI:  asset.URI(),
				Correct:   choice.Correct(),
			})
		}

		export.Stages = append(export.Stages, row)
	}

	return export, nil
}

// ExportByCode is Export keyed by game code.
func (e *GameEngine) ExportByCode(gameCode string) (*formatter.GameExport, error) {
	game, err := e.games.GetByCode(gameCode)
	if err != nil {
		return nil, err
	}
	return e.Export(game.ID())
}
