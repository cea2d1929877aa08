package tasks

import (
	"fmt"

	"github.com/desertthunder/spotifyle/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReserveGame Phase = iota
	BuildLockIn
	BuildFindTrackArt
	BuildArtistTrivia
	ShuffleStages
	SaveStages
	FinalizeGame
	FetchTopTracks
	FetchTopArtists
	SaveAssets
)

func (p Phase) String() string {
	switch p {
	case ReserveGame:
		return "reserve_game"
	case BuildLockIn:
		return "build_lock_in"
	case BuildFindTrackArt:
		return "build_find_track_art"
	case BuildArtistTrivia:
		return "build_artist_trivia"
	case ShuffleStages:
		return "shuffle_stages"
	case SaveStages:
		return "save_stages"
	case FinalizeGame:
		return "finalize_game"
	case FetchTopTracks:
		return "fetch_top_tracks"
	case FetchTopArtists:
		return "fetch_top_artists"
	case SaveAssets:
		return "save_assets"
	default:
		return ""
	}
}

func reserveGameUpdate(game *models.Game) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReserveGame,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reserved game %s (%s)", game.Name(), game.GameCode()),
		Data:    game,
	}
}

func stagingUpdate(phase Phase, step, total int) ProgressUpdate {
	var label string
	switch phase {
	case BuildLockIn:
		label = "lock-in"
	case BuildFindTrackArt:
		label = "track art"
	default:
		label = "artist trivia"
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Building %s stages...", step, total, label),
	}
}

func shuffleStagesUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ShuffleStages,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Shuffling %d stages...", count),
	}
}

func saveStageUpdate(step, total int, kind models.PuzzleKind) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveStages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Saving %s stage...", step, total, kind),
	}
}

func finalizeGameUpdate(game *models.Game, saved int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FinalizeGame,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Game %s ready (%d rows saved)", game.GameCode(), saved),
		Data:    game,
	}
}

func fetchTopUpdate(phase Phase, step, total int, timeRange string, page int) ProgressUpdate {
	kind := "tracks"
	if phase == FetchTopArtists {
		kind = "artists"
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching top %s (%s, page %d)...", step, total, kind, timeRange, page+1),
	}
}

func saveAssetsUpdate(step, total int, asset *models.Asset) ProgressUpdate {
	if asset == nil {
		return ProgressUpdate{
			Phase:   SaveAssets,
			Step:    step,
			Total:   total,
			Message: "Saving harvested assets...",
		}
	}
	return ProgressUpdate{
		Phase:   SaveAssets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, asset.Kind(), asset.Name()),
	}
}
