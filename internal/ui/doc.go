// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over a publisher's games:
//  1. [GameListView] : Browse published games with processing state
//  2. [StageListView] : Inspect a game's stages and choices
//  3. [ConfirmView] : Confirm creation of a new game
//  4. [CreateView] : Monitor real-time generation progress
//  5. [ResultView] : Display the created game's stage breakdown
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the GameEngine, providing non-blocking status reporting during generation.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
