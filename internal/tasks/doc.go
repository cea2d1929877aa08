// Package tasks orchestrates the game pipeline with real-time progress reporting.
//
// # Core Operations
//
// Three engines cover the pipeline:
//
//  1. [HarvestEngine.Harvest] : Pull a user's listening corpus
//     - Fetches top tracks and artists across all three affinity windows
//     - Pages each window five times, rate limited
//     - Upserts assets by URI and attaches the user as observer
//
//  2. [GameEngine.CreateGame] : Build and persist a game
//     - Reserves a unique game code and a generated display name
//     - Runs the three stage generators, artist trivia last
//     - Shuffles the combined drafts once, saves stages and choices in order
//     - Flips the processed flag only after everything is durable
//
//  3. [PlayEngine] : Drive a player's attempt
//     - [PlayEngine.OpenGame] opens a one-shot scoreboard and loads stages
//     - [PlayEngine.SubmitAnswer] applies wager scoring
//     - [PlayEngine.ConsumeStar] spends stars earned from published games
//
// # Progress Reporting
//
// All long-running operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// The engines depend on:
//   - [repositories.AssetRepository] and [repositories.GameRepository] : persistence
//   - [trivia.QuestionSynthesizer] : artist trivia question pipeline
//   - [TopAssetFetcher] : the Spotify client surface the harvest needs
package tasks
