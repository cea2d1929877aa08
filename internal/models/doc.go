// Package models defines domain entities and persistence interfaces for the Spotifyle trivia backend.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): in-memory shapes used during stage generation
//   - [StageDraft] : A generated quiz screen before persistence
//   - [ChoiceDraft] : A candidate answer referencing an Asset, tagged correct or not
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Asset] : Spotify-sourced music entities (artists, tracks, albums, shows, episodes)
//   - [Game] : Aggregate root reserving a unique game code, gated by the processed flag
//   - [Stage] : One quiz screen with a puzzle kind, optional question, and position
//   - [Choice] : A persisted answer option linking a stage to an asset
//   - [Scoreboard] : Per-player score for a single game
//   - [PlayerProfile] : Star economy counters across games
//
// All persistent entities implement the Model interface providing ID generation, timestamps, and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
