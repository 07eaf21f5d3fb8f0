package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/duet/internal/formatter"
	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/shared"
	"github.com/desertthunder/duet/internal/tasks"
	"github.com/urfave/cli/v3"
)

// DiscoverList prints the candidate feed, from the backend or from the last
// offline snapshot.
func (r *Runner) DiscoverList(ctx context.Context, cmd *cli.Command) error {
	var (
		profiles []models.UserProfile
		err      error
	)

	if cmd.Bool("offline") {
		if r.local == nil {
			return fmt.Errorf("%w: offline cache not configured, run 'duet setup database'", shared.ErrMissingConfig)
		}
		profiles, err = r.local.Profiles()
	} else {
		if err := r.requireSession(); err != nil {
			return err
		}
		profiles, err = r.engine.Discover(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profiles, cmd.Bool("pretty"))
	}

	text, err := formatter.ProfilesToText(profiles)
	if err != nil {
		return err
	}
	return r.writePlain("%s", string(text))
}

// DiscoverLike likes a candidate by id and reports whether it completed a
// mutual match.
func (r *Runner) DiscoverLike(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	userID := cmd.StringArg("id")
	if userID == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	result, err := r.engine.Like(ctx, userID)
	if err != nil {
		return err
	}

	if result.Matched {
		r.writePlain("✓ It's a match!\n")
		if result.Match != nil && result.Match.CompatibilityScore != nil {
			r.writePlain("Compatibility: %.0f%%\n", *result.Match.CompatibilityScore)
		}
		return nil
	}

	r.writePlain("✓ Liked\n")
	return nil
}

// DiscoverPrefetch warms the feed and the offline cache, optionally fetching
// each candidate's full user record through a worker pool.
func (r *Runner) DiscoverPrefetch(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	opts := tasks.PrefetchOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
		Details:    cmd.Bool("details"),
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := r.drainProgress(progress)

	result, err := r.engine.Prefetch(ctx, progress, opts)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("Prefetched %d candidates", result.TotalProfiles)
	if opts.Details {
		r.writePlain("Details: %d fetched, %d failed\n", result.DetailsOK, result.DetailsFailed)
		for _, detail := range result.Details {
			if detail.Error != nil {
				r.writePlain("  ✗ %s: %v\n", detail.Name, detail.Error)
			}
		}
	}
	return nil
}
