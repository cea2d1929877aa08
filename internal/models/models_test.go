package models

import (
	"strings"
	"testing"
)

func TestGameValidate(t *testing.T) {
	code := strings.Repeat("AB12", 8)

	tc := []struct {
		name    string
		game    *Game
		wantErr bool
	}{
		{"valid game", NewGame(code, "pub-1", "TEAL-SKA-AB12AB12"), false},
		{"short code", NewGame("AB12", "pub-1", "TEAL-SKA-AB12"), true},
		{"missing publisher", NewGame(code, "", "TEAL-SKA-AB12AB12"), true},
		{"missing name", NewGame(code, "pub-1", ""), true},
	}

	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			err := c.game.Validate()
			if c.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !c.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestAssetMedia(t *testing.T) {
	image := "https://img.example/a.jpg"
	empty := ""

	t.Run("HasImage", func(t *testing.T) {
		if !NewAsset(AssetArtist, "spotify:artist:a", "A", &image, nil).HasImage() {
			t.Error("expected image presence")
		}
		if NewAsset(AssetArtist, "spotify:artist:b", "B", &empty, nil).HasImage() {
			t.Error("expected empty image string treated as absent")
		}
		if NewAsset(AssetArtist, "spotify:artist:c", "C", nil, nil).HasImage() {
			t.Error("expected nil image treated as absent")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := NewAsset(AssetTrack, "spotify:track:a", "A", nil, nil).Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
		if err := NewAsset(AssetTrack, "", "A", nil, nil).Validate(); err == nil {
			t.Error("expected error for missing uri")
		}
		if err := NewAsset(AssetKind("playlist"), "spotify:track:a", "A", nil, nil).Validate(); err == nil {
			t.Error("expected error for unknown kind")
		}
	})
}

func TestStageDraftCorrectCount(t *testing.T) {
	draft := StageDraft{
		Kind: LockIn,
		Choices: []ChoiceDraft{
			{AssetID: "a", Correct: true},
			{AssetID: "b"},
			{AssetID: "c", Correct: true},
		},
	}
	if draft.CorrectCount() != 2 {
		t.Errorf("expected 2 correct choices, got %d", draft.CorrectCount())
	}
}

func TestScoreboard(t *testing.T) {
	board := NewScoreboard("game-1", "player-1")

	board.AddScore(5)
	board.AddScore(-2)
	if board.Score() != 3 {
		t.Errorf("expected accumulated score 3, got %d", board.Score())
	}

	if err := board.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
	if err := NewScoreboard("", "player-1").Validate(); err == nil {
		t.Error("expected error for missing game id")
	}
}

func TestPlayerProfile(t *testing.T) {
	t.Run("RecordWager Tracks Extremes", func(t *testing.T) {
		profile := NewPlayerProfile("player-1")
		for _, delta := range []int64{3, 8, -2, 5, -6} {
			profile.RecordWager(delta)
		}
		if profile.BiggestGainer() != 8 {
			t.Errorf("expected biggest gainer 8, got %d", profile.BiggestGainer())
		}
		if profile.BiggestLoser() != -6 {
			t.Errorf("expected biggest loser -6, got %d", profile.BiggestLoser())
		}
	})

	t.Run("ConsumeStar Increments", func(t *testing.T) {
		profile := NewPlayerProfile("player-1")
		profile.ConsumeStar()
		profile.ConsumeStar()
		if profile.ConsumedStars() != 2 {
			t.Errorf("expected 2 consumed stars, got %d", profile.ConsumedStars())
		}
	})
}

func TestPuzzleKind(t *testing.T) {
	tc := []struct {
		kind PuzzleKind
		name string
	}{
		{ArtistTrivia, "artist_trivia"},
		{FindTrackArt, "find_track_art"},
		{LockIn, "lock_in"},
		{PuzzleKind(0), "unknown"},
	}
	for _, c := range tc {
		if c.kind.String() != c.name {
			t.Errorf("expected %s, got %s", c.name, c.kind.String())
		}
	}

	if PuzzleKind(0).Valid() || !LockIn.Valid() {
		t.Error("unexpected kind validity")
	}
}
