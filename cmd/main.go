package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/duet/internal/repositories"
	"github.com/desertthunder/duet/internal/shared"
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

	// The offline cache is optional: a failed open only disables snapshots.
	var local *repositories.SnapshotAdapter
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			local = repositories.NewSnapshotAdapter(db)
		} else {
			logger.Debug("offline cache migrations failed", "error", err)
		}
	} else {
		logger.Debug("offline cache unavailable", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Local:  local,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "duet",
		Usage:    "Find your musical match from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error("not signed in, run 'duet auth login'")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
