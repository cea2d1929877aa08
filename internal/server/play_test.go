package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/tasks"
	internaltest "github.com/desertthunder/spotifyle/internal/testing"
)

// newPlayServer persists a processed one-stage game for pub-1 and serves it
// through a PlayHandler behind a BasicRouter.
func newPlayServer(t *testing.T) (*httptest.Server, *models.Game) {
	t.Helper()

	db := internaltest.MustOpenDB(t)
	assets := repositories.NewAssetRepository(db)
	games := repositories.NewGameRepository(db)
	boards := repositories.NewScoreboardRepository(db)

	draft := models.StageDraft{Kind: models.FindTrackArt, Question: "Find the track."}
	for i := 0; i < 4; i++ {
		image := fmt.Sprintf("https://img.example/%d.jpg", i)
		asset := models.NewAsset(models.AssetTrack, fmt.Sprintf("spotify:track:s%d", i), fmt.Sprintf("Track %d", i), &image, nil)
		if err := assets.Create(asset); err != nil {
			t.Fatalf("failed to create asset: %v", err)
		}
		draft.Choices = append(draft.Choices, models.ChoiceDraft{AssetID: asset.ID(), Correct: i == 0})
	}

	game := models.NewGame(shared.GenerateGameCode(), "pub-1", "COBALT-GRIME-DEADBEEF")
	if err := games.Create(game); err != nil {
		t.Fatalf("failed to create game: %v", err)
	}
	if _, err := games.AppendStage(game.ID(), 0, draft); err != nil {
		t.Fatalf("failed to append stage: %v", err)
	}
	if err := games.SetProcessed(game.ID(), true); err != nil {
		t.Fatalf("failed to mark game processed: %v", err)
	}

	router := NewBasicRouter()
	router.Handler(NewPlayHandler(tasks.NewPlayEngine(games, boards)))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, game
}

func getJSON(t *testing.T, rawURL string, out any) int {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, rawURL string, out any) int {
	t.Helper()
	resp, err := http.Post(rawURL, "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestPlayHandler(t *testing.T) {
	t.Run("Open Game Returns Stages", func(t *testing.T) {
		server, game := newPlayServer(t)

		var out ActiveGameOut
		status := getJSON(t, server.URL+"/play?game_code="+game.GameCode()+"&player_id=player-1", &out)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if out.Game.GameCode != game.GameCode() {
			t.Errorf("unexpected game code %s", out.Game.GameCode)
		}
		if out.Score != 0 {
			t.Errorf("expected zero opening score, got %d", out.Score)
		}
		if len(out.Stages) != 1 || len(out.Stages[0].Choices) != 4 {
			t.Fatalf("unexpected stage shape: %+v", out.Stages)
		}
	})

	t.Run("Replay Is Rejected", func(t *testing.T) {
		server, game := newPlayServer(t)
		playURL := server.URL + "/play?game_code=" + game.GameCode() + "&player_id=player-1"

		if status := getJSON(t, playURL, nil); status != http.StatusOK {
			t.Fatalf("expected 200 on first open, got %d", status)
		}
		if status := getJSON(t, playURL, nil); status != http.StatusBadRequest {
			t.Errorf("expected 400 on replay, got %d", status)
		}
	})

	t.Run("Unknown Game Is Not Found", func(t *testing.T) {
		server, _ := newPlayServer(t)

		status := getJSON(t, server.URL+"/play?game_code="+shared.GenerateGameCode()+"&player_id=player-1", nil)
		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})

	t.Run("Submit Answer Scores The Pick", func(t *testing.T) {
		server, game := newPlayServer(t)

		var active ActiveGameOut
		if status := getJSON(t, server.URL+"/play?game_code="+game.GameCode()+"&player_id=player-1", &active); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		var correctID string
		for _, c := range active.Stages[0].Choices {
			if c.Correct {
				correctID = c.ID
			}
		}

		var out AnswerOut
		answerURL := server.URL + "/play/answer?" + url.Values{
			"player_id": {"player-1"},
			"choice_id": {correctID},
			"wager":     {"5"},
		}.Encode()
		if status := postJSON(t, answerURL, &out); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if !out.Correct || out.Delta != 5 || out.Score != 5 {
			t.Errorf("expected correct +5, got %+v", out)
		}
		if out.CorrectChoice == nil || out.CorrectChoice.ID != correctID {
			t.Error("expected the correct choice revealed")
		}
	})

	t.Run("Invalid Wager Is Rejected", func(t *testing.T) {
		server, _ := newPlayServer(t)

		status := postJSON(t, server.URL+"/play/answer?player_id=player-1&choice_id=x&wager=lots", nil)
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("Profile Reports Standing", func(t *testing.T) {
		server, game := newPlayServer(t)

		if status := getJSON(t, server.URL+"/play?game_code="+game.GameCode()+"&player_id=player-1", nil); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		var out SummaryOut
		if status := getJSON(t, server.URL+"/play/profile?player_id=pub-1", &out); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if out.Stars != 1 || out.AvailableStars != 1 {
			t.Errorf("expected the publisher's star, got %+v", out)
		}
	})

	t.Run("Star Consumption Depletes", func(t *testing.T) {
		server, game := newPlayServer(t)

		if status := getJSON(t, server.URL+"/play?game_code="+game.GameCode()+"&player_id=player-1", nil); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		var out SummaryOut
		if status := postJSON(t, server.URL+"/play/star?player_id=pub-1", &out); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if out.AvailableStars != 0 || out.ConsumedStars != 1 {
			t.Errorf("expected star spent, got %+v", out)
		}
		if status := postJSON(t, server.URL+"/play/star?player_id=pub-1", nil); status != http.StatusBadRequest {
			t.Errorf("expected 400 once depleted, got %d", status)
		}
	})

	t.Run("Method Mismatch Is Rejected", func(t *testing.T) {
		server, _ := newPlayServer(t)

		if status := postJSON(t, server.URL+"/play?game_code=x&player_id=y", nil); status != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", status)
		}
		if status := getJSON(t, server.URL+"/play/star?player_id=x", nil); status != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", status)
		}
	})
}
