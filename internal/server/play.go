package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/tasks"
)

// GameOut is the wire representation of a game.
type GameOut struct {
	ID        string `json:"id"`
	GameCode  string `json:"game_code"`
	Name      string `json:"name"`
	Publisher string `json:"publisher_id"`
}

// ChoiceOut is the wire representation of an answer option.
type ChoiceOut struct {
	ID      string `json:"id"`
	AssetID string `json:"asset_id"`
	Correct bool   `json:"correct"`
}

// StageOut is the wire representation of a quiz screen.
type StageOut struct {
	ID         string      `json:"id"`
	PuzzleKind int         `json:"puzzle_kind"`
	Question   *string     `json:"question"`
	Position   int         `json:"position"`
	Choices    []ChoiceOut `json:"choices"`
}

// ActiveGameOut is returned when a player opens a game.
type ActiveGameOut struct {
	Game   GameOut    `json:"game"`
	Score  int64      `json:"score"`
	Stages []StageOut `json:"stages"`
}

// AnswerOut reports the verdict of a submitted answer.
type AnswerOut struct {
	Choice        ChoiceOut  `json:"players_choice"`
	CorrectChoice *ChoiceOut `json:"correct_choice,omitempty"`
	Correct       bool       `json:"answered_correct"`
	Delta         int64      `json:"delta"`
	Score         int64      `json:"score"`
}

// SummaryOut is the wire representation of a player's standing.
type SummaryOut struct {
	PlayerID       string `json:"player_id"`
	Points         int64  `json:"points"`
	Stars          int    `json:"stars"`
	AvailableStars int    `json:"available_stars"`
	ConsumedStars  int    `json:"consumed_stars"`
	BiggestGainer  int64  `json:"biggest_gainer"`
	BiggestLoser   int64  `json:"biggest_loser"`
}

// PlayHandler exposes the player-facing endpoints over a [tasks.PlayEngine].
// Implements the Handler interface for registration with a Router.
type PlayHandler struct {
	engine *tasks.PlayEngine
}

// NewPlayHandler creates a PlayHandler backed by the given engine.
func NewPlayHandler(engine *tasks.PlayEngine) *PlayHandler {
	return &PlayHandler{engine: engine}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlayHandler) Routes() []string {
	return []string{"/play", "/play/answer", "/play/profile", "/play/star"}
}

// ServeHTTP dispatches to the play endpoints.
func (h *PlayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/play":
		h.openGame(w, r)
	case "/play/answer":
		h.submitAnswer(w, r)
	case "/play/profile":
		h.profile(w, r)
	case "/play/star":
		h.consumeStar(w, r)
	default:
		http.NotFound(w, r)
	}
}

// openGame handles GET /play?game_code=...&player_id=...
func (h *PlayHandler) openGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	active, err := h.engine.OpenGame(r.URL.Query().Get("game_code"), r.URL.Query().Get("player_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := ActiveGameOut{
		Game:   gameOut(active.Game),
		Score:  active.Scoreboard.Score(),
		Stages: make([]StageOut, 0, len(active.Stages)),
	}
	for _, view := range active.Stages {
		stage := StageOut{
			ID:         view.Stage.ID(),
			PuzzleKind: int(view.Stage.Kind()),
			Question:   view.Stage.Question(),
			Position:   view.Stage.Position(),
			Choices:    make([]ChoiceOut, 0, len(view.Choices)),
		}
		for _, c := range view.Choices {
			stage.Choices = append(stage.Choices, choiceOut(c))
		}
		out.Stages = append(out.Stages, stage)
	}

	writeJSON(w, http.StatusOK, out)
}

// submitAnswer handles POST /play/answer?player_id=...&choice_id=...&wager=...
func (h *PlayHandler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	wager, err := strconv.ParseInt(r.URL.Query().Get("wager"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid wager", http.StatusBadRequest)
		return
	}

	result, err := h.engine.SubmitAnswer(r.URL.Query().Get("player_id"), r.URL.Query().Get("choice_id"), wager)
	if err != nil {
		writeError(w, err)
		return
	}

	out := AnswerOut{
		Choice:  choiceOut(result.Choice),
		Correct: result.Correct,
		Delta:   result.Delta,
		Score:   result.Score,
	}
	if result.CorrectChoice != nil {
		correct := choiceOut(result.CorrectChoice)
		out.CorrectChoice = &correct
	}

	writeJSON(w, http.StatusOK, out)
}

// profile handles GET /play/profile?player_id=...
func (h *PlayHandler) profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.engine.Summary(r.URL.Query().Get("player_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryOut(summary))
}

// consumeStar handles POST /play/star?player_id=...
func (h *PlayHandler) consumeStar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.engine.ConsumeStar(r.URL.Query().Get("player_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryOut(summary))
}

func gameOut(g *models.Game) GameOut {
	return GameOut{
		ID:        g.ID(),
		GameCode:  g.GameCode(),
		Name:      g.Name(),
		Publisher: g.PublisherID(),
	}
}

func choiceOut(c *models.Choice) ChoiceOut {
	return ChoiceOut{ID: c.ID(), AssetID: c.AssetID(), Correct: c.Correct()}
}

func summaryOut(s *tasks.PlayerSummary) SummaryOut {
	return SummaryOut{
		PlayerID:       s.Profile.PlayerID(),
		Points:         s.Points,
		Stars:          s.Stars,
		AvailableStars: s.AvailableStars,
		ConsumedStars:  s.Profile.ConsumedStars(),
		BiggestGainer:  s.Profile.BiggestGainer(),
		BiggestLoser:   s.Profile.BiggestLoser(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrGameNotFound), errors.Is(err, shared.ErrScoreboardNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrAlreadyPlayed), errors.Is(err, shared.ErrNoStars),
		errors.Is(err, shared.ErrGameNotProcessed), errors.Is(err, shared.ErrInvalidArgument):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
