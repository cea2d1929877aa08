// package tasks implements the long-running game pipeline operations.
//
// The core abstractions are GameEngine, which orchestrates stage generation
// and persistence for a new game, HarvestEngine, which pulls a user's top
// listening data into the asset corpus, and PlayEngine, which drives a
// player's session. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/stages"
	"github.com/desertthunder/spotifyle/internal/trivia"
)

// GameRunResult contains all data from a full game creation run.
type GameRunResult struct {
	Game        *models.Game // Created game, processed on success
	StageCount  int          // Stages persisted
	ChoiceCount int          // Choices persisted
	TriviaCount int          // Artist trivia stages (may fall short of max)
	TrackCount  int          // Find-the-track stages
	LockInCount int          // Lock-in stages
	ArtistPool  int          // Eligible artist assets at generation time
	TrackPool   int          // Eligible track assets at generation time
}

// GameEngine orchestrates game creation: code and name reservation, the three
// stage generators, the final shuffle and durable persistence.
type GameEngine struct {
	assets     *repositories.AssetRepository
	games      *repositories.GameRepository
	synth      trivia.QuestionSynthesizer
	rng        *rand.Rand
	choiceSize int
}

// NewGameEngine creates a GameEngine with the provided repositories,
// question synthesizer and random source.
func NewGameEngine(assets *repositories.AssetRepository, games *repositories.GameRepository, synth trivia.QuestionSynthesizer, rng *rand.Rand) *GameEngine {
	return &GameEngine{
		assets:     assets,
		games:      games,
		synth:      synth,
		rng:        rng,
		choiceSize: stages.DefaultChoiceSize,
	}
}

// SetChoiceSize overrides the number of options per find-the-track stage.
func (e *GameEngine) SetChoiceSize(n int) {
	if n > 0 {
		e.choiceSize = n
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// CreateGame builds and persists a complete game for the publisher.
//
// The game row is inserted unprocessed before any stage work starts; the
// processed flag flips only after every stage and choice is saved, so a crash
// mid-run leaves an unplayable game rather than a partial one. Publishers with
// an unprocessed game in flight are rejected with ErrGameNotProcessed.
//
// Lock-in and find-the-track stages generate first; artist trivia runs last
// because each of its stages costs external lookups. A single shuffle over the
// concatenated drafts fixes the play order.
func (e *GameEngine) CreateGame(ctx context.Context, progress chan<- ProgressUpdate, publisherID string, maxStages int) (*GameRunResult, error) {
	if publisherID == "" {
		return nil, fmt.Errorf("%w: publisher id is required", shared.ErrInvalidArgument)
	}
	if maxStages <= 0 {
		return nil, fmt.Errorf("%w: max stages must be positive, got %d", shared.ErrInvalidArgument, maxStages)
	}

	pending, err := e.games.HasUnprocessed(publisherID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending games: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("%w: publisher %s has a game still generating", shared.ErrGameNotProcessed, publisherID)
	}

	game, err := e.reserveGame(publisherID)
	if err != nil {
		return nil, err
	}
	sendProgress(progress, reserveGameUpdate(game))

	result := &GameRunResult{Game: game}

	tracks, err := e.assets.ListByKind(models.AssetTrack, publisherID, true, true)
	if err != nil {
		return result, fmt.Errorf("failed to load track pool: %w", err)
	}
	artists, err := e.assets.ListByKind(models.AssetArtist, publisherID, true, false)
	if err != nil {
		return result, fmt.Errorf("failed to load artist pool: %w", err)
	}
	result.TrackPool = len(tracks)
	result.ArtistPool = len(artists)

	sendProgress(progress, stagingUpdate(BuildLockIn, 1, 3))
	lockIn, err := stages.GenerateLockIn(e.rng, tracks, maxStages)
	if err != nil {
		return result, fmt.Errorf("lock-in generation failed: %w", err)
	}

	sendProgress(progress, stagingUpdate(BuildFindTrackArt, 2, 3))
	trackArt, err := stages.GenerateFindTrackArt(e.rng, tracks, maxStages, e.choiceSize)
	if err != nil {
		return result, fmt.Errorf("find-the-track generation failed: %w", err)
	}

	sendProgress(progress, stagingUpdate(BuildArtistTrivia, 3, 3))
	artistTrivia, err := stages.GenerateArtistTrivia(ctx, e.rng, artists, maxStages, e.synth)
	if err != nil {
		return result, fmt.Errorf("artist trivia generation failed: %w", err)
	}

	result.LockInCount = len(lockIn)
	result.TrackCount = len(trackArt)
	result.TriviaCount = len(artistTrivia)

	drafts := make([]models.StageDraft, 0, len(artistTrivia)+len(trackArt)+len(lockIn))
	drafts = append(drafts, artistTrivia...)
	drafts = append(drafts, trackArt...)
	drafts = append(drafts, lockIn...)

	sendProgress(progress, shuffleStagesUpdate(len(drafts)))
	e.rng.Shuffle(len(drafts), func(i, j int) {
		drafts[i], drafts[j] = drafts[j], drafts[i]
	})

	saved := 0
	for i, draft := range drafts {
		sendProgress(progress, saveStageUpdate(i+1, len(drafts), draft.Kind))
		if _, err := e.games.AppendStage(game.ID(), i, draft); err != nil {
			return result, fmt.Errorf("failed to save stage %d: %w", i, err)
		}
		saved += 1 + len(draft.Choices)
		result.StageCount++
		result.ChoiceCount += len(draft.Choices)
	}

	if err := e.games.SetProcessed(game.ID(), true); err != nil {
		return result, fmt.Errorf("failed to mark game processed: %w", err)
	}
	game.SetProcessed(true)

	sendProgress(progress, finalizeGameUpdate(game, saved))
	return result, nil
}

// reserveGame inserts an unprocessed game row with a unique code, retrying
// with a fresh code when a concurrent creator wins the insert race.
func (e *GameEngine) reserveGame(publisherID string) (*models.Game, error) {
	for range codeRetryLimit {
		code, err := uniqueGameCode(e.games)
		if err != nil {
			return nil, err
		}

		game := models.NewGame(code, publisherID, composeGameName(e.rng, code))
		game.SetTaskID(shared.GenerateID())

		err = e.games.Create(game)
		if err == nil {
			return game, nil
		}
		if !errors.Is(err, shared.ErrDuplicateGameCode) {
			return nil, fmt.Errorf("failed to insert game: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: gave up reserving a game row", shared.ErrDuplicateGameCode)
}
