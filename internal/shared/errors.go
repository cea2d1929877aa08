package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and provider errors
	ErrAPIRequest          = fmt.Errorf("API request failed")
	ErrServiceUnavailable  = fmt.Errorf("service unavailable")
	ErrProviderUnavailable = fmt.Errorf("provider unavailable")

	// Trivia pipeline errors
	ErrResolutionFailed = fmt.Errorf("artist resolution failed")
	ErrSynthesisFailed  = fmt.Errorf("question synthesis failed")
	ErrInsufficientPool = fmt.Errorf("insufficient asset pool")

	// Game errors
	ErrAssetNotFound      = fmt.Errorf("asset not found")
	ErrDuplicateGameCode  = fmt.Errorf("duplicate game code")
	ErrGameNotFound       = fmt.Errorf("game not found")
	ErrScoreboardNotFound = fmt.Errorf("scoreboard not found")
	ErrGameNotProcessed   = fmt.Errorf("game not processed")
	ErrAlreadyPlayed      = fmt.Errorf("game already attempted")
	ErrNoStars            = fmt.Errorf("no stars available")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
