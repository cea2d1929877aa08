// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a starter configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing configuration file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// harvestCommand pulls listening history into the local asset corpus.
func harvestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "harvest",
		Usage: "Fetch top tracks and artists into the asset corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "Spotify user ID to attach assets to",
				Required: true,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Maximum Spotify requests per second",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Harvest,
	}
}

// gameCommand handles game generation and inspection.
func gameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "game",
		Usage: "Generate and inspect trivia games",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Generate a new game from the publisher's asset corpus",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "publisher",
						Aliases:  []string{"p"},
						Usage:    "Publisher user ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-stages",
						Usage: "Maximum stages per puzzle kind",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "Seed for deterministic generation (0 = random)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.GameCreate,
			},
			{
				Name:  "list",
				Usage: "List games for a publisher",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "publisher",
						Aliases:  []string{"p"},
						Usage:    "Publisher user ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "playable",
						Usage: "Only show fully generated games",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.GameList,
			},
			{
				Name:  "show",
				Usage: "Export a game's stages and choices",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "code",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory for file formats",
						Value:   ".",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.GameShow,
			},
		},
	}
}

// playCommand handles gameplay operations against the local database.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play trivia games",
		Commands: []*cli.Command{
			{
				Name:  "open",
				Usage: "Open a game and create a scoreboard",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "code",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "player",
						Usage:    "Player user ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlayOpen,
			},
			{
				Name:  "answer",
				Usage: "Submit an answer for a stage",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "player",
						Usage:    "Player user ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "choice",
						Usage:    "Choice ID to submit",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "wager",
						Usage: "Points wagered on the answer",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlayAnswer,
			},
			{
				Name:  "profile",
				Usage: "Show a player's points and stars",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "player",
						Usage:    "Player user ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlayProfile,
			},
			{
				Name:  "star",
				Usage: "Consume one of a player's available stars",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "player",
						Usage:    "Player user ID",
						Required: true,
					},
				},
				Action: r.PlayStar,
			},
		},
	}
}

// serveCommand runs the HTTP play API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP play API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive game management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for game management",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "publisher",
				Aliases:  []string{"p"},
				Usage:    "Publisher user ID",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "max-stages",
				Usage: "Maximum stages per puzzle kind",
				Value: 5,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Seed for deterministic generation (0 = random)",
			},
		},
		Action: r.TUI,
	}
}
