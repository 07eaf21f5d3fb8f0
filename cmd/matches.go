package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/duet/internal/formatter"
	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/shared"
	"github.com/urfave/cli/v3"
)

// MatchesList prints the match list, from the backend or from the last
// offline snapshot.
func (r *Runner) MatchesList(ctx context.Context, cmd *cli.Command) error {
	var (
		matches []models.Match
		err     error
	)

	if cmd.Bool("offline") {
		if r.local == nil {
			return fmt.Errorf("%w: offline cache not configured, run 'duet setup database'", shared.ErrMissingConfig)
		}
		matches, err = r.local.Matches()
		if err == nil {
			if at, err := r.local.MatchSnapshotAt(); err == nil && !at.IsZero() {
				r.writePlain("Snapshot from %s\n\n", at.Format("2006-01-02 15:04"))
			}
		}
	} else {
		if err := r.requireSession(); err != nil {
			return err
		}
		matches, err = r.engine.Matches(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(matches, cmd.Bool("pretty"))
	}

	if len(matches) == 0 {
		return r.writePlain("No matches yet. Keep swiping with 'duet tui'.\n")
	}

	currentUserID := ""
	if user := r.sessions.CurrentUser(); user != nil {
		currentUserID = user.ID
	}

	r.writePlainHeader(fmt.Sprintf("Matches (%d)", len(matches)))
	for i, match := range matches {
		score := ""
		if match.CompatibilityScore != nil {
			score = fmt.Sprintf(" (%.0f%% compatible)", *match.CompatibilityScore)
		}
		r.writePlain("%d. %s%s since %s\n", i+1, match.OtherUserID(currentUserID), score, match.CreatedAt)
	}
	return nil
}

// MatchesDelete removes a match by id.
func (r *Runner) MatchesDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	matchID := cmd.StringArg("id")
	if matchID == "" {
		return fmt.Errorf("%w: match id", shared.ErrMissingArgument)
	}

	ack, err := r.engine.DeleteMatch(ctx, matchID)
	if err != nil {
		return err
	}

	if ack.Message != "" {
		return r.writePlain("✓ %s\n", ack.Message)
	}
	return r.writePlain("✓ Match removed\n")
}

// MatchesExport writes the match list to a file in the requested format.
func (r *Runner) MatchesExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	matches, err := r.engine.Matches(ctx)
	if err != nil {
		return err
	}

	currentUserID := ""
	if user := r.sessions.CurrentUser(); user != nil {
		currentUserID = user.ID
	}

	format := cmd.String("format")
	outputPath := cmd.String("output")

	if err := formatter.WriteExport(matches, currentUserID, format, outputPath); err != nil {
		return err
	}

	r.writePlain("✓ Exported %d matches to %s\n", len(matches), outputPath)
	return nil
}
