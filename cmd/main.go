package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/spotifyle/internal/services"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService *services.SpotifyService
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			spotifyService = svc
		}
	}

	var geniusService *services.GeniusService
	if config.Credentials.Genius.ClientToken != "" {
		if svc, err := services.NewGeniusService(config.Credentials.Genius.ClientToken, nil); err == nil {
			geniusService = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Spotify: spotifyService,
		Genius:  geniusService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "spotifyle",
		Usage:    "Generate and play trivia games from Spotify listening history",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
