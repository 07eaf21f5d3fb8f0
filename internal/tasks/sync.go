package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/duet/internal/cache"
)

// SyncOutcome contains all data from a Last.fm connect-and-sync operation.
type SyncOutcome struct {
	Username     string // Linked Last.fm username ("" when only syncing)
	ArtistsCount int    // Artists imported by the sync
	Message      string // Server message from the sync step
}

// ConnectAndSync links a Last.fm account, pulls its listening history into
// the backend, and refreshes the local user record so the Last.fm fields are
// visible immediately. Progress is reported per phase; progress may be nil.
func (e *Engine) ConnectAndSync(ctx context.Context, username string, progress chan<- ProgressUpdate) (*SyncOutcome, error) {
	e.sendProgress(progress, ProgressUpdate{
		Phase:   ConnectAccount,
		Step:    1,
		Total:   3,
		Message: fmt.Sprintf("Connecting Last.fm account %q...", username),
	})

	if _, err := e.api.ConnectLastfm(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to connect Last.fm account: %w", err)
	}

	outcome, err := e.syncScrobbles(ctx, progress, 2, 3)
	if err != nil {
		return nil, err
	}
	outcome.Username = username

	e.sendProgress(progress, ProgressUpdate{
		Phase:   RefreshUser,
		Step:    3,
		Total:   3,
		Message: "Refreshing profile...",
	})

	// The user record now carries lastfm_username/lastfm_connected_at.
	e.cache.Invalidate(cache.KeyMe)
	if _, err := e.Me(ctx); err != nil {
		e.logger.Warn("failed to refresh user after sync", "error", err)
	}

	return outcome, nil
}

// Sync pulls listening history for an already-connected Last.fm account.
func (e *Engine) Sync(ctx context.Context, progress chan<- ProgressUpdate) (*SyncOutcome, error) {
	return e.syncScrobbles(ctx, progress, 1, 1)
}

func (e *Engine) syncScrobbles(ctx context.Context, progress chan<- ProgressUpdate, step, total int) (*SyncOutcome, error) {
	e.sendProgress(progress, ProgressUpdate{
		Phase:   SyncScrobbles,
		Step:    step,
		Total:   total,
		Message: "Syncing scrobbles from Last.fm...",
	})

	result, err := e.api.SyncLastfm(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sync scrobbles: %w", err)
	}

	return &SyncOutcome{
		ArtistsCount: result.ArtistsCount,
		Message:      result.Message,
	}, nil
}
