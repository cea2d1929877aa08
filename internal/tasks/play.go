package tasks

import (
	"fmt"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/repositories"
	"github.com/desertthunder/spotifyle/internal/shared"
)

// StageView couples a persisted stage with its choices for play or display.
type StageView struct {
	Stage   *models.Stage
	Choices []*models.Choice
}

// ActiveGame is a fully loaded game handed to a player on open.
type ActiveGame struct {
	Game       *models.Game
	Scoreboard *models.Scoreboard
	Stages     []StageView
}

// AnswerResult reports the outcome of a submitted answer.
type AnswerResult struct {
	Choice        *models.Choice // The player's pick
	CorrectChoice *models.Choice // Single correct option, nil for lock-in stages
	Correct       bool           // Whether the pick was correct
	Delta         int64          // Signed score change applied
	Score         int64          // Scoreboard total after the change
}

// PlayerSummary aggregates a player's standing across all games.
type PlayerSummary struct {
	Profile        *models.PlayerProfile
	Points         int64 // Sum of scores across every scoreboard
	Stars          int   // Attempts on games the player published
	AvailableStars int   // Stars minus consumed stars
}

// PlayEngine drives a player's session against persisted games.
// Contains dependencies on the game and scoreboard repositories.
type PlayEngine struct {
	games  *repositories.GameRepository
	boards *repositories.ScoreboardRepository
}

// NewPlayEngine creates a PlayEngine with the provided repositories.
func NewPlayEngine(games *repositories.GameRepository, boards *repositories.ScoreboardRepository) *PlayEngine {
	return &PlayEngine{games: games, boards: boards}
}

// OpenGame loads a processed game by code and opens a zero-score scoreboard
// for the player. A player gets exactly one attempt per game; reopening a
// game that already has a scoreboard fails with ErrAlreadyPlayed.
func (e *PlayEngine) OpenGame(gameCode, playerID string) (*ActiveGame, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", shared.ErrInvalidArgument)
	}

	game, err := e.games.GetByCode(gameCode)
	if err != nil {
		return nil, err
	}
	if !game.Processed() {
		return nil, fmt.Errorf("%w: game %s is still generating", shared.ErrGameNotProcessed, gameCode)
	}

	board, created, err := e.boards.GetOrCreate(game.ID(), playerID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("%w: player %s already attempted %s", shared.ErrAlreadyPlayed, playerID, gameCode)
	}

	stageRows, err := e.games.StagesByGame(game.ID())
	if err != nil {
		return nil, err
	}

	active := &ActiveGame{
		Game:       game,
		Scoreboard: board,
		Stages:     make([]StageView, 0, len(stageRows)),
	}
	for _, stage := range stageRows {
		choices, err := e.games.ChoicesByStage(stage.ID())
		if err != nil {
			return nil, err
		}
		active.Stages = append(active.Stages, StageView{Stage: stage, Choices: choices})
	}

	return active, nil
}

// SubmitAnswer scores a player's pick against the wagered amount.
//
// Artist trivia and find-the-track stages have a single correct option, which
// is returned alongside the verdict. Lock-in stages score each choice on its
// own flag. A correct pick adds the wager to the scoreboard, a wrong one
// subtracts it, and the profile's gainer/loser extremes track the applied
// delta.
func (e *PlayEngine) SubmitAnswer(playerID, choiceID string, wager int64) (*AnswerResult, error) {
	if wager < 0 {
		return nil, fmt.Errorf("%w: wager must be non-negative, got %d", shared.ErrInvalidArgument, wager)
	}

	choice, err := e.games.GetChoice(choiceID)
	if err != nil {
		return nil, err
	}
	stage, err := e.games.GetStage(choice.StageID())
	if err != nil {
		return nil, err
	}
	board, err := e.boards.Get(stage.GameID(), playerID)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{Choice: choice, Correct: choice.Correct()}

	if stage.Kind() != models.LockIn {
		siblings, err := e.games.ChoicesByStage(stage.ID())
		if err != nil {
			return nil, err
		}
		for _, c := range siblings {
			if c.Correct() {
				result.CorrectChoice = c
				break
			}
		}
	}

	result.Delta = wager
	if !result.Correct {
		result.Delta = -wager
	}

	board.AddScore(result.Delta)
	if err := e.boards.Update(board); err != nil {
		return nil, err
	}
	result.Score = board.Score()

	profile, err := e.boards.GetProfile(playerID)
	if err != nil {
		return nil, err
	}
	profile.RecordWager(result.Delta)
	if err := e.boards.UpdateProfile(profile); err != nil {
		return nil, err
	}

	return result, nil
}

// Summary aggregates the player's points and star balance.
func (e *PlayEngine) Summary(playerID string) (*PlayerSummary, error) {
	profile, err := e.boards.GetProfile(playerID)
	if err != nil {
		return nil, err
	}
	points, err := e.boards.Points(playerID)
	if err != nil {
		return nil, err
	}
	stars, err := e.boards.Stars(playerID)
	if err != nil {
		return nil, err
	}

	return &PlayerSummary{
		Profile:        profile,
		Points:         points,
		Stars:          stars,
		AvailableStars: stars - profile.ConsumedStars(),
	}, nil
}

// ConsumeStar spends one of the player's stars, e.g. to skip a stage.
// Fails with ErrNoStars when the balance is exhausted.
func (e *PlayEngine) ConsumeStar(playerID string) (*PlayerSummary, error) {
	summary, err := e.Summary(playerID)
	if err != nil {
		return nil, err
	}
	if summary.AvailableStars < 1 {
		return nil, fmt.Errorf("%w: player %s", shared.ErrNoStars, playerID)
	}

	summary.Profile.ConsumeStar()
	if err := e.boards.UpdateProfile(summary.Profile); err != nil {
		return nil, err
	}
	summary.AvailableStars--

	return summary, nil
}
