package models

import (
	"fmt"
	"time"
)

// PuzzleKind enumerates the quiz screen variants.
type PuzzleKind int

const (
	ArtistTrivia PuzzleKind = 1 // fill-in-the-blank artist bio question
	FindTrackArt PuzzleKind = 2 // pick the named track among decoys
	LockIn       PuzzleKind = 3 // label 8 tracks correct/incorrect
)

func (k PuzzleKind) String() string {
	switch k {
	case ArtistTrivia:
		return "artist_trivia"
	case FindTrackArt:
		return "find_track_art"
	case LockIn:
		return "lock_in"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known puzzle kind.
func (k PuzzleKind) Valid() bool {
	return k == ArtistTrivia || k == FindTrackArt || k == LockIn
}

// Game is the aggregate root for a generated trivia session.
//
// The processed flag gates availability: a game is never playable until all
// stages and choices have been durably persisted.
type Game struct {
	id          string
	sequence    int
	gameCode    string
	publisherID string
	name        string
	processed   bool
	taskID      string
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewGame creates an unprocessed Game reserving the given code and name.
func NewGame(gameCode, publisherID, name string) *Game {
	now := time.Now()
	return &Game{
		gameCode:    gameCode,
		publisherID: publisherID,
		name:        name,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (g *Game) ID() string            { return g.id }
func (g *Game) Sequence() int         { return g.sequence }
func (g *Game) GameCode() string      { return g.gameCode }
func (g *Game) PublisherID() string   { return g.publisherID }
func (g *Game) Name() string          { return g.name }
func (g *Game) Processed() bool       { return g.processed }
func (g *Game) TaskID() string        { return g.taskID }
func (g *Game) CreatedAt() time.Time  { return g.createdAt }
func (g *Game) UpdatedAt() time.Time  { return g.updatedAt }
func (g *Game) DeletedAt() *time.Time { return g.deletedAt }

func (g *Game) SetID(id string)           { g.id = id }
func (g *Game) SetSequence(seq int)       { g.sequence = seq }
func (g *Game) SetProcessed(p bool)       { g.processed = p }
func (g *Game) SetTaskID(id string)       { g.taskID = id }
func (g *Game) SetCreatedAt(t time.Time)  { g.createdAt = t }
func (g *Game) SetUpdatedAt(t time.Time)  { g.updatedAt = t }
func (g *Game) SetDeletedAt(t *time.Time) { g.deletedAt = t }

// Validate checks required fields and the game code length.
func (g *Game) Validate() error {
	if g.gameCode == "" {
		return fmt.Errorf("game code is required")
	}
	if len(g.gameCode) != 32 {
		return fmt.Errorf("game code must be 32 characters, got %d", len(g.gameCode))
	}
	if g.publisherID == "" {
		return fmt.Errorf("publisher id is required")
	}
	if g.name == "" {
		return fmt.Errorf("game name is required")
	}
	return nil
}

// Stage is one persisted quiz screen belonging to a game.
// Position records the final shuffle order, which is significant for play.
type Stage struct {
	id        string
	gameID    string
	kind      PuzzleKind
	question  *string
	position  int
	createdAt time.Time
}

// NewStage creates a Stage for the given game. A nil question is persisted as NULL.
func NewStage(gameID string, kind PuzzleKind, question *string, position int) *Stage {
	return &Stage{
		gameID:    gameID,
		kind:      kind,
		question:  question,
		position:  position,
		createdAt: time.Now(),
	}
}

func (s *Stage) ID() string           { return s.id }
func (s *Stage) GameID() string       { return s.gameID }
func (s *Stage) Kind() PuzzleKind     { return s.kind }
func (s *Stage) Question() *string    { return s.question }
func (s *Stage) Position() int        { return s.position }
func (s *Stage) CreatedAt() time.Time { return s.createdAt }
func (s *Stage) UpdatedAt() time.Time { return s.createdAt }

func (s *Stage) SetID(id string)          { s.id = id }
func (s *Stage) SetCreatedAt(t time.Time) { s.createdAt = t }

// Validate checks required references and the puzzle kind enum.
func (s *Stage) Validate() error {
	if s.gameID == "" {
		return fmt.Errorf("stage game id is required")
	}
	if !s.kind.Valid() {
		return fmt.Errorf("invalid puzzle kind: %d", s.kind)
	}
	if s.position < 0 {
		return fmt.Errorf("stage position must be non-negative")
	}
	return nil
}

// Choice is a persisted answer option referencing an asset.
type Choice struct {
	id        string
	stageID   string
	assetID   string
	correct   bool
	createdAt time.Time
}

// NewChoice creates a Choice linking a stage to an asset.
func NewChoice(stageID, assetID string, correct bool) *Choice {
	return &Choice{
		stageID:   stageID,
		assetID:   assetID,
		correct:   correct,
		createdAt: time.Now(),
	}
}

func (c *Choice) ID() string           { return c.id }
func (c *Choice) StageID() string      { return c.stageID }
func (c *Choice) AssetID() string      { return c.assetID }
func (c *Choice) Correct() bool        { return c.correct }
func (c *Choice) CreatedAt() time.Time { return c.createdAt }
func (c *Choice) UpdatedAt() time.Time { return c.createdAt }

func (c *Choice) SetID(id string)          { c.id = id }
func (c *Choice) SetCreatedAt(t time.Time) { c.createdAt = t }

// Validate checks required references.
func (c *Choice) Validate() error {
	if c.stageID == "" {
		return fmt.Errorf("choice stage id is required")
	}
	if c.assetID == "" {
		return fmt.Errorf("choice asset id is required")
	}
	return nil
}

// ChoiceDraft is an in-memory candidate answer built during stage generation.
// Only the chosen subset of drafts is persisted.
type ChoiceDraft struct {
	AssetID string
	Correct bool
}

// StageDraft is an in-memory quiz screen produced by a stage generator,
// persisted by the game engine after the final shuffle.
type StageDraft struct {
	Kind     PuzzleKind
	Question string
	Choices  []ChoiceDraft
}

// CorrectCount returns the number of correct choices in the draft.
func (d StageDraft) CorrectCount() int {
	n := 0
	for _, c := range d.Choices {
		if c.Correct {
			n++
		}
	}
	return n
}
