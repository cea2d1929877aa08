package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spotifyle/internal/formatter"
	"github.com/desertthunder/spotifyle/internal/models"
)

var (
	_ list.Item = gameItem{}
	_ list.Item = stageItem{}
)

// gameItem wraps [models.Game] to implement [list.Item].
type gameItem struct {
	game *models.Game
}

func (i gameItem) FilterValue() string { return i.game.Name() }
func (i gameItem) Title() string       { return i.game.Name() }
func (i gameItem) Description() string {
	state := "generating"
	if i.game.Processed() {
		state = "playable"
	}
	return fmt.Sprintf("%s • %s", i.game.GameCode(), state)
}

// stageItem wraps a [formatter.StageRow] to implement [list.Item].
type stageItem struct {
	stage formatter.StageRow
}

func (i stageItem) FilterValue() string { return i.stage.Kind.String() }
func (i stageItem) Title() string {
	if i.stage.Question != "" {
		return i.stage.Question
	}
	return i.stage.Kind.String()
}
func (i stageItem) Description() string {
	correct := 0
	for _, c := range i.stage.Choices {
		if c.Correct {
			correct++
		}
	}
	return fmt.Sprintf("%s • %d choices, %d correct", i.stage.Kind, len(i.stage.Choices), correct)
}
