package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/duet/internal/shared"
	"github.com/desertthunder/duet/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LastfmConnect links a Last.fm account, imports its listening history and
// refreshes the local profile.
func (r *Runner) LastfmConnect(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: Last.fm username", shared.ErrMissingArgument)
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := r.drainProgress(progress)

	outcome, err := r.engine.ConnectAndSync(ctx, username, progress)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("✓ Connected Last.fm account %q\n", outcome.Username)
	r.writePlain("Imported %d artists\n", outcome.ArtistsCount)
	if outcome.Message != "" {
		r.writePlain("%s\n", outcome.Message)
	}
	return nil
}

// LastfmSync re-imports listening history for the already-linked account.
func (r *Runner) LastfmSync(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := r.drainProgress(progress)

	outcome, err := r.engine.Sync(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("✓ Synced %d artists\n", outcome.ArtistsCount)
	if outcome.Message != "" {
		r.writePlain("%s\n", outcome.Message)
	}
	return nil
}
