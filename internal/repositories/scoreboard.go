package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/shared"
)

// ScoreboardRepository persists per-game player scores and the star economy
// counters aggregated on player profiles.
type ScoreboardRepository struct {
	db *sql.DB
}

// NewScoreboardRepository creates a new ScoreboardRepository with the given database connection
func NewScoreboardRepository(db *sql.DB) *ScoreboardRepository {
	return &ScoreboardRepository{db: db}
}

// GetOrCreate returns the scoreboard for (gameID, playerID), creating a
// zero-score row when none exists. The created flag reports whether this call
// inserted the row; callers use it to reject replays.
func (r *ScoreboardRepository) GetOrCreate(gameID, playerID string) (*models.Scoreboard, bool, error) {
	existing, err := r.get(gameID, playerID)
	if err == nil {
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	board := models.NewScoreboard(gameID, playerID)
	board.SetID(shared.GenerateID())

	if err := board.Validate(); err != nil {
		return nil, false, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO scoreboards (id, game_id, player_id, score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, board.ID(), board.GameID(), board.PlayerID(), board.Score(), board.CreatedAt(), board.UpdatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent open; surface the existing row.
			board, err := r.get(gameID, playerID)
			return board, false, err
		}
		return nil, false, fmt.Errorf("failed to insert scoreboard: %w", err)
	}

	return board, true, nil
}

// Get retrieves the scoreboard for (gameID, playerID). Returns
// [shared.ErrScoreboardNotFound] when the player has not opened the game.
func (r *ScoreboardRepository) Get(gameID, playerID string) (*models.Scoreboard, error) {
	board, err := r.get(gameID, playerID)
	if err == sql.ErrNoRows {
		return nil, shared.ErrScoreboardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scoreboard: %w", err)
	}
	return board, nil
}

// Update persists a scoreboard's score.
func (r *ScoreboardRepository) Update(board *models.Scoreboard) error {
	now := time.Now()
	board.SetUpdatedAt(now)

	query := `
		UPDATE scoreboards
		SET score = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, board.Score(), now, board.ID())
	if err != nil {
		return fmt.Errorf("failed to update scoreboard: %w", err)
	}

	return requireAffected(result, "scoreboard", board.ID())
}

// Points sums a player's scores across all games they have played.
func (r *ScoreboardRepository) Points(playerID string) (int64, error) {
	var points sql.NullInt64
	err := r.db.QueryRow("SELECT SUM(score) FROM scoreboards WHERE player_id = ?", playerID).Scan(&points)
	if err != nil {
		return 0, fmt.Errorf("failed to sum scores: %w", err)
	}
	if !points.Valid {
		return 0, nil
	}
	return points.Int64, nil
}

// Stars counts attempts on games the player published. Each scoreboard on a
// published game earns the publisher one star.
func (r *ScoreboardRepository) Stars(playerID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM scoreboards s
		JOIN games g ON g.id = s.game_id
		WHERE g.publisher_id = ?
	`

	var stars int
	if err := r.db.QueryRow(query, playerID).Scan(&stars); err != nil {
		return 0, fmt.Errorf("failed to count stars: %w", err)
	}
	return stars, nil
}

// GetProfile returns the player's profile, creating an empty one when absent.
func (r *ScoreboardRepository) GetProfile(playerID string) (*models.PlayerProfile, error) {
	row := r.db.QueryRow(
		"SELECT player_id, consumed_stars, biggest_gainer, biggest_loser, created_at, updated_at FROM player_profiles WHERE player_id = ?",
		playerID,
	)

	var (
		id            string
		consumedStars int
		biggestGainer int64
		biggestLoser  int64
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(&id, &consumedStars, &biggestGainer, &biggestLoser, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		profile := models.NewPlayerProfile(playerID)
		query := `
			INSERT INTO player_profiles (player_id, consumed_stars, biggest_gainer, biggest_loser, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		if _, err := r.db.Exec(query, profile.PlayerID(), 0, 0, 0, profile.CreatedAt(), profile.UpdatedAt()); err != nil {
			return nil, fmt.Errorf("failed to insert profile: %w", err)
		}
		return profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	profile := models.NewPlayerProfile(id)
	profile.SetConsumedStars(consumedStars)
	profile.SetBiggestGainer(biggestGainer)
	profile.SetBiggestLoser(biggestLoser)
	profile.SetUpdatedAt(updatedAt)

	return profile, nil
}

// UpdateProfile persists a player's star economy counters.
func (r *ScoreboardRepository) UpdateProfile(profile *models.PlayerProfile) error {
	now := time.Now()
	profile.SetUpdatedAt(now)

	query := `
		UPDATE player_profiles
		SET consumed_stars = ?, biggest_gainer = ?, biggest_loser = ?, updated_at = ?
		WHERE player_id = ?
	`

	result, err := r.db.Exec(query, profile.ConsumedStars(), profile.BiggestGainer(), profile.BiggestLoser(), now, profile.PlayerID())
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return requireAffected(result, "profile", profile.PlayerID())
}

// get retrieves a scoreboard row, returning sql.ErrNoRows untouched so
// GetOrCreate can branch on it.
func (r *ScoreboardRepository) get(gameID, playerID string) (*models.Scoreboard, error) {
	row := r.db.QueryRow(
		"SELECT id, game_id, player_id, score, created_at, updated_at FROM scoreboards WHERE game_id = ? AND player_id = ?",
		gameID, playerID,
	)

	var (
		id        string
		gID       string
		pID       string
		score     int64
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &gID, &pID, &score, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	board := models.NewScoreboard(gID, pID)
	board.SetID(id)
	board.SetScore(score)
	board.SetUpdatedAt(updatedAt)

	return board, nil
}
