package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (TOML or YAML)",
			Sources: cli.EnvVars("MEDIABATCH_CONFIG"),
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Override the configured log level (debug, info, warn, error)",
		},
	}
}

func stationFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "station",
		Aliases:  []string{"s"},
		Usage:    "Station id or short name",
		Required: true,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API and the regeneration workers",
		Action: r.Serve,
	}
}

func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Apply one operation to a selection of station files",
		Flags: []cli.Flag{
			stationFlag(),
			&cli.StringFlag{
				Name:     "files",
				Aliases:  []string{"f"},
				Usage:    "Pipe-delimited paths relative to the media root",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "do",
				Usage:    "Operation: delete, playlist or move",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Target playlist id, or \"new\" (repeatable)",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Name of the playlist created for \"new\"",
			},
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"d"},
				Usage:   "Destination directory for move",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Batch,
	}
}

func verifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Compare a station catalog with its media files",
		Flags: []cli.Flag{
			stationFlag(),
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "Remove orphaned records and rewrite the storage usage",
			},
		},
		Action: r.Verify,
	}
}

func stationCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "station",
		Aliases: []string{"st"},
		Usage:   "Manage stations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a station and its media directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "short-name",
						Usage:    "URL-safe short name",
						Required: true,
					},
				},
				Action: r.StationCreate,
			},
			{
				Name:  "list",
				Usage: "List stations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.StationList,
			},
		},
	}
}

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Apply catalog migrations and print the schema version",
		Action: r.Migrate,
	}
}

func hashKeyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "hash-key",
		Usage: "Hash an API key for server.api_key_hashes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "key",
				Usage: "Key to hash; a new one is generated when empty",
			},
		},
		Action: r.HashKey,
	}
}
