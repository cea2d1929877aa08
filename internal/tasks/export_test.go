package tasks

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/shared"
	internaltest "github.com/desertthunder/spotifyle/internal/testing"
)

func TestExport(t *testing.T) {
	db := internaltest.MustOpenDB(t)
	assets := repositories.NewAssetRepository(db)
	games := repositories.NewGameRepository(db)
	engine := NewGameEngine(assets, games, nil, rand.New(rand.NewSource(1)))

	image := "https://img.example/a1.jpg"
	answer := models.NewAsset(models.AssetArtist, "spotify:artist:a1", "Radiohead", &image, nil)
	decoy := models.NewAsset(models.AssetArtist, "spotify:artist:a2", "Portishead", &image, nil)
	for _, asset := range []*models.Asset{answer, decoy} {
		if err := assets.Create(asset); err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}
	}

	game := models.NewGame(shared.GenerateGameCode(), "pub-1", "OCHRE-SKA-DEADBEEF")
	if err := games.Create(game); err != nil {
		t.Fatalf("failed to create game: %v", err)
	}
	draft := models.StageDraft{
		Kind:     models.ArtistTrivia,
		Question: "They formed in ____.",
		Choices: []models.ChoiceDraft{
			{AssetID: answer.ID(), Correct: true},
			{AssetID: decoy.ID()},
		},
	}
	if _, err := games.AppendStage(game.ID(), 0, draft); err != nil {
		t.Fatalf("failed to append stage: %v", err)
	}

	t.Run("Resolves Stages Against The Corpus", func(t *testing.T) {
		export, err := engine.ExportByCode(game.GameCode())
		if err != nil {
			t.Fatalf("failed to export game: %v", err)
		}
		if export.Game.ID() != game.ID() {
			t.Error("expected the export to carry the game")
		}
		if len(export.Stages) != 1 {
			t.Fatalf("expected 1 stage, got %d", len(export.Stages))
		}

		stage := export.Stages[0]
		if stage.Question != "They formed in ____." {
			t.Errorf("unexpected question: %s", stage.Question)
		}
		if len(stage.Choices) != 2 {
			t.Fatalf("expected 2 choices, got %d", len(stage.Choices))
		}
		if stage.Choices[0].AssetName != "Radiohead" || !stage.Choices[0].Correct {
			t.Errorf("expected Radiohead flagged correct, got %+v", stage.Choices[0])
		}
		if stage.Choices[1].AssetURI != "spotify:artist:a2" {
			t.Errorf("expected resolved URI for the decoy, got %s", stage.Choices[1].AssetURI)
		}
	})

	t.Run("Unknown Code Fails", func(t *testing.T) {
		if _, err := engine.ExportByCode(shared.GenerateGameCode()); !errors.Is(err, shared.ErrGameNotFound) {
			t.Errorf("expected ErrGameNotFound, got %v", err)
		}
	})
}
