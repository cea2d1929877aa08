package models

import (
	"fmt"
	"time"
)

// Scoreboard records a single player's score for a single game.
// A player gets exactly one scoreboard per game; replays are rejected.
type Scoreboard struct {
	id        string
	gameID    string
	playerID  string
	score     int64
	createdAt time.Time
	updatedAt time.Time
}

// NewScoreboard creates a zero-score Scoreboard for the given game and player.
func NewScoreboard(gameID, playerID string) *Scoreboard {
	now := time.Now()
	return &Scoreboard{
		gameID:    gameID,
		playerID:  playerID,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Scoreboard) ID() string           { return s.id }
func (s *Scoreboard) GameID() string       { return s.gameID }
func (s *Scoreboard) PlayerID() string     { return s.playerID }
func (s *Scoreboard) Score() int64         { return s.score }
func (s *Scoreboard) CreatedAt() time.Time { return s.createdAt }
func (s *Scoreboard) UpdatedAt() time.Time { return s.updatedAt }

func (s *Scoreboard) SetID(id string)          { s.id = id }
func (s *Scoreboard) SetScore(score int64)     { s.score = score }
func (s *Scoreboard) SetUpdatedAt(t time.Time) { s.updatedAt = t }

// AddScore applies a signed wager delta to the score.
func (s *Scoreboard) AddScore(delta int64) {
	s.score += delta
	s.updatedAt = time.Now()
}

// Validate checks required references.
func (s *Scoreboard) Validate() error {
	if s.gameID == "" {
		return fmt.Errorf("scoreboard game id is required")
	}
	if s.playerID == "" {
		return fmt.Errorf("scoreboard player id is required")
	}
	return nil
}

// PlayerProfile tracks the star economy for a player across games.
//
// Stars are earned when other players attempt a game the player published
// and spent to skip questions.
type PlayerProfile struct {
	playerID      string
	consumedStars int
	biggestGainer int64
	biggestLoser  int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPlayerProfile creates an empty profile for the given player.
func NewPlayerProfile(playerID string) *PlayerProfile {
	now := time.Now()
	return &PlayerProfile{
		playerID:  playerID,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *PlayerProfile) ID() string           { return p.playerID }
func (p *PlayerProfile) PlayerID() string     { return p.playerID }
func (p *PlayerProfile) ConsumedStars() int   { return p.consumedStars }
func (p *PlayerProfile) BiggestGainer() int64 { return p.biggestGainer }
func (p *PlayerProfile) BiggestLoser() int64  { return p.biggestLoser }
func (p *PlayerProfile) CreatedAt() time.Time { return p.createdAt }
func (p *PlayerProfile) UpdatedAt() time.Time { return p.updatedAt }

func (p *PlayerProfile) SetConsumedStars(n int)   { p.consumedStars = n }
func (p *PlayerProfile) SetBiggestGainer(n int64) { p.biggestGainer = n }
func (p *PlayerProfile) SetBiggestLoser(n int64)  { p.biggestLoser = n }
func (p *PlayerProfile) SetUpdatedAt(t time.Time) { p.updatedAt = t }

// RecordWager updates the biggest gainer/loser extremes for a signed wager outcome.
func (p *PlayerProfile) RecordWager(wager int64) {
	if wager > p.biggestGainer {
		p.biggestGainer = wager
	}
	if wager < p.biggestLoser {
		p.biggestLoser = wager
	}
	p.updatedAt = time.Now()
}

// ConsumeStar increments the consumed star counter.
func (p *PlayerProfile) ConsumeStar() {
	p.consumedStars++
	p.updatedAt = time.Now()
}

// Validate checks required references.
func (p *PlayerProfile) Validate() error {
	if p.playerID == "" {
		return fmt.Errorf("profile player id is required")
	}
	return nil
}
