// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password (8 characters minimum)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "birth-date",
						Usage: "Birth date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "gender",
						Usage: "Gender identity",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Sign in and persist the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear the persisted token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show current session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// profileCommand handles the signed-in account's profile
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and edit your profile",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the signed-in account",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Apply a partial profile update (unset flags are left unchanged)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name",
					},
					&cli.StringFlag{
						Name:  "bio",
						Usage: "Profile bio",
					},
					&cli.StringFlag{
						Name:  "birth-date",
						Usage: "Birth date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "gender",
						Usage: "Gender identity",
					},
					&cli.StringFlag{
						Name:  "looking-for",
						Usage: "Who you want to see in discovery",
					},
					&cli.FloatFlag{
						Name:  "lat",
						Usage: "Latitude for nearby matching",
					},
					&cli.FloatFlag{
						Name:  "lon",
						Usage: "Longitude for nearby matching",
					},
				},
				Action: r.ProfileUpdate,
			},
			{
				Name:  "view",
				Usage: "View another user's record by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ProfileView,
			},
		},
	}
}

// lastfmCommand handles Last.fm account linking and scrobble sync
func lastfmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lastfm",
		Aliases: []string{"fm"},
		Usage:   "Last.fm listening history operations",
		Commands: []*cli.Command{
			{
				Name:  "connect",
				Usage: "Link a Last.fm account and import its history",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Action: r.LastfmConnect,
			},
			{
				Name:   "sync",
				Usage:  "Re-import listening history for the linked account",
				Action: r.LastfmSync,
			},
		},
	}
}

// discoverCommand handles the discovery feed
func discoverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "discover",
		Aliases: []string{"d"},
		Usage:   "Browse discovery candidates",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the current candidate feed",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Read the last snapshot instead of the backend",
					},
				},
				Action: r.DiscoverList,
			},
			{
				Name:  "like",
				Usage: "Like a candidate by user id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.DiscoverLike,
			},
			{
				Name:  "prefetch",
				Usage: "Warm the feed and offline cache, optionally fetching full records",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "details",
						Usage: "Fetch each candidate's full user record",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent detail fetch workers",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Detail fetches per second",
						Value: 5,
					},
				},
				Action: r.DiscoverPrefetch,
			},
		},
	}
}

// matchesCommand handles the match list
func matchesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "matches",
		Aliases: []string{"m"},
		Usage:   "Manage your matches",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List current matches",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "offline",
						Usage: "Read the last snapshot instead of the backend",
					},
				},
				Action: r.MatchesList,
			},
			{
				Name:    "delete",
				Aliases: []string{"unmatch"},
				Usage:   "Remove a match by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.MatchesDelete,
			},
			{
				Name:  "export",
				Usage: "Export matches to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output file path",
						Required: true,
					},
				},
				Action: r.MatchesExport,
			},
		},
	}
}

// setupCommand handles setup operations for the config file and offline cache.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the offline cache database and run migrations",
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
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive swiping.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal interface",
		Action:  r.TUI,
	}
}
