package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/shared"
)

// GameRepository implements models.Repository[*models.Game] and owns the
// stage/choice rows hanging off each game.
//
// The games table carries a UNIQUE constraint on game_code; Create surfaces a
// collision as [shared.ErrDuplicateGameCode] so the engine can regenerate and
// retry instead of relying solely on its pre-check loop.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository with the given database connection
func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = "id, sequence, game_code, publisher_id, name, processed, task_id, created_at, updated_at, deleted_at"

// Create inserts a new [models.Game] with generated ID and sequence.
// Returns [shared.ErrDuplicateGameCode] when the game code is already taken.
func (r *GameRepository) Create(game *models.Game) error {
	sequence, err := NextSequence(r.db, "games")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	game.SetID(id)
	game.SetSequence(sequence)

	if err := game.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO games (id, sequence, game_code, publisher_id, name, processed, task_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		game.GameCode(),
		game.PublisherID(),
		game.Name(),
		game.Processed(),
		game.TaskID(),
		game.CreatedAt(),
		game.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateGameCode, game.GameCode())
		}
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

// Get retrieves a game by ID, excluding soft-deleted games
func (r *GameRepository) Get(id string) (*models.Game, error) {
	query := fmt.Sprintf("SELECT %s FROM games WHERE id = ? AND deleted_at IS NULL", gameColumns)
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByCode retrieves a game by its game code
func (r *GameRepository) GetByCode(code string) (*models.Game, error) {
	query := fmt.Sprintf("SELECT %s FROM games WHERE game_code = ? AND deleted_at IS NULL", gameColumns)
	return r.scanOne(r.db.QueryRow(query, code))
}

// CodeExists reports whether any game, including soft-deleted ones, holds the code.
func (r *GameRepository) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM games WHERE game_code = ?)", code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check game code: %w", err)
	}
	return exists, nil
}

// HasUnprocessed reports whether the publisher already has a game still generating.
func (r *GameRepository) HasUnprocessed(publisherID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM games WHERE publisher_id = ? AND processed = 0 AND deleted_at IS NULL)"
	if err := r.db.QueryRow(query, publisherID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check unprocessed games: %w", err)
	}
	return exists, nil
}

// SetProcessed flips the processed flag, the gate that makes a game playable.
func (r *GameRepository) SetProcessed(id string, processed bool) error {
	query := `
		UPDATE games
		SET processed = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, processed, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update processed flag: %w", err)
	}

	return requireAffected(result, "game", id)
}

// ListByPublisher retrieves a publisher's games, newest first.
// When playableOnly is set, unprocessed games are excluded.
func (r *GameRepository) ListByPublisher(publisherID string, playableOnly bool) ([]*models.Game, error) {
	query := fmt.Sprintf("SELECT %s FROM games WHERE publisher_id = ? AND deleted_at IS NULL", gameColumns)
	if playableOnly {
		query += " AND processed = 1"
	}
	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, publisherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Update modifies an existing game's name and processed flag
func (r *GameRepository) Update(game *models.Game) error {
	if err := game.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	game.SetUpdatedAt(now)

	query := `
		UPDATE games
		SET name = ?, processed = ?, task_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, game.Name(), game.Processed(), game.TaskID(), now, game.ID())
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return requireAffected(result, "game", game.ID())
}

// Delete soft-deletes a game by ID
func (r *GameRepository) Delete(id string) error {
	query := `
		UPDATE games
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return requireAffected(result, "game", id)
}

// List retrieves all games matching the given criteria, excluding soft-deleted games
func (r *GameRepository) List(criteria map[string]any) ([]*models.Game, error) {
	query := fmt.Sprintf("SELECT %s FROM games WHERE deleted_at IS NULL", gameColumns)

	args := []any{}

	if publisher, ok := criteria["publisher_id"].(string); ok && publisher != "" {
		query += " AND publisher_id = ?"
		args = append(args, publisher)
	}

	if processed, ok := criteria["processed"].(bool); ok {
		query += " AND processed = ?"
		args = append(args, processed)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// AppendStage persists a stage and its choices under a game in one transaction.
// Returns the persisted stage with its generated ID.
func (r *GameRepository) AppendStage(gameID string, position int, draft models.StageDraft) (*models.Stage, error) {
	var question *string
	if draft.Question != "" {
		q := draft.Question
		question = &q
	}

	stage := models.NewStage(gameID, draft.Kind, question, position)
	stage.SetID(shared.GenerateID())

	if err := stage.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO stages (id, game_id, puzzle_kind, question, position, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		stage.ID(), stage.GameID(), int(stage.Kind()), stage.Question(), stage.Position(), stage.CreatedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert stage: %w", err)
	}

	for _, c := range draft.Choices {
		choice := models.NewChoice(stage.ID(), c.AssetID, c.Correct)
		choice.SetID(shared.GenerateID())

		if err := choice.Validate(); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		_, err = tx.Exec(
			"INSERT INTO choices (id, stage_id, asset_id, correct, created_at) VALUES (?, ?, ?, ?, ?)",
			choice.ID(), choice.StageID(), choice.AssetID(), choice.Correct(), choice.CreatedAt(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stage: %w", err)
	}

	return stage, nil
}

// StagesByGame retrieves a game's stages in serving (position) order.
func (r *GameRepository) StagesByGame(gameID string) ([]*models.Stage, error) {
	query := `
		SELECT id, game_id, puzzle_kind, question, position, created_at
		FROM stages
		WHERE game_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stages: %w", err)
	}
	defer rows.Close()

	var stages []*models.Stage
	for rows.Next() {
		stage, err := scanStage(rows.Scan)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stages, nil
}

// GetStage retrieves a stage by ID.
func (r *GameRepository) GetStage(id string) (*models.Stage, error) {
	row := r.db.QueryRow("SELECT id, game_id, puzzle_kind, question, position, created_at FROM stages WHERE id = ?", id)
	stage, err := scanStage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stage not found")
	}
	return stage, err
}

// ChoicesByStage retrieves a stage's choices.
func (r *GameRepository) ChoicesByStage(stageID string) ([]*models.Choice, error) {
	query := "SELECT id, stage_id, asset_id, correct, created_at FROM choices WHERE stage_id = ?"

	rows, err := r.db.Query(query, stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	var choices []*models.Choice
	for rows.Next() {
		choice, err := scanChoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return choices, nil
}

// GetChoice retrieves a choice by ID.
func (r *GameRepository) GetChoice(id string) (*models.Choice, error) {
	row := r.db.QueryRow("SELECT id, stage_id, asset_id, correct, created_at FROM choices WHERE id = ?", id)
	choice, err := scanChoice(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("choice not found")
	}
	return choice, err
}

// collect scans all rows into games.
func (r *GameRepository) collect(rows *sql.Rows) ([]*models.Game, error) {
	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return games, nil
}

// scanOne scans a single [sql.Row] into a [models.Game]
func (r *GameRepository) scanOne(row *sql.Row) (*models.Game, error) {
	game, err := scanGame(row.Scan)
	if err == sql.ErrNoRows {
		return nil, shared.ErrGameNotFound
	}
	return game, err
}

// scanGame scans game columns via the given scan function.
func scanGame(scan func(...any) error) (*models.Game, error) {
	var (
		id          string
		sequence    int
		gameCode    string
		publisherID string
		name        string
		processed   bool
		taskID      sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := scan(&id, &sequence, &gameCode, &publisherID, &name, &processed, &taskID, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}

	game := models.NewGame(gameCode, publisherID, name)
	game.SetID(id)
	game.SetSequence(sequence)
	game.SetProcessed(processed)
	if taskID.Valid {
		game.SetTaskID(taskID.String)
	}
	game.SetCreatedAt(createdAt)
	game.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		game.SetDeletedAt(&deletedAt.Time)
	}

	return game, nil
}

// scanStage scans stage columns via the given scan function.
func scanStage(scan func(...any) error) (*models.Stage, error) {
	var (
		id        string
		gameID    string
		kind      int
		question  sql.NullString
		position  int
		createdAt time.Time
	)

	err := scan(&id, &gameID, &kind, &question, &position, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan stage: %w", err)
	}

	stage := models.NewStage(gameID, models.PuzzleKind(kind), nullable(question), position)
	stage.SetID(id)
	stage.SetCreatedAt(createdAt)

	return stage, nil
}

// scanChoice scans choice columns via the given scan function.
func scanChoice(scan func(...any) error) (*models.Choice, error) {
	var (
		id        string
		stageID   string
		assetID   string
		correct   bool
		createdAt time.Time
	)

	err := scan(&id, &stageID, &assetID, &correct, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan choice: %w", err)
	}

	choice := models.NewChoice(stageID, assetID, correct)
	choice.SetID(id)
	choice.SetCreatedAt(createdAt)

	return choice, nil
}
