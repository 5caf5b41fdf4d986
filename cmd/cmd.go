// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func databaseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "Path to SQLite database (overrides configuration)",
	}
}

// setupCommand initializes configuration and the database schema
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.BoolFlag{
				Name:  "create-config",
				Usage: "Write an example config.toml to the config path",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand starts the HTTP conversion service
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the conversion web service",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides configuration)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides configuration)",
			},
		},
		Action: r.Serve,
	}
}

// convertCommand runs a single conversion from the terminal
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a YouTube playlist to a Spotify playlist",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.StringFlag{
				Name:     "url",
				Usage:    "YouTube playlist URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "account",
				Usage:    "Spotify account ID that owns the new playlist",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "token",
				Usage:    "Spotify access token for the account",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Name for the new playlist",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Description for the new playlist",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Make the new playlist public",
			},
		},
		Action: r.Convert,
	}
}

// statusCommand reports a single conversion's state
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the state of a conversion",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Conversion ID",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Status,
	}
}

// jobsCommand lists an account's conversions
func jobsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "jobs",
		Usage: "List an account's conversions, newest first",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.StringFlag{
				Name:     "account",
				Usage:    "Spotify account ID",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Jobs,
	}
}
