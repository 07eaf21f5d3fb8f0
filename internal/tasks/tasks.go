package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/duet/internal/cache"
	"github.com/desertthunder/duet/internal/feed"
	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/services"
	"github.com/desertthunder/duet/internal/session"
	"github.com/desertthunder/duet/internal/shared"
)

// likeTimeout bounds the fire-and-forget like request once the caller has
// already moved on.
const likeTimeout = 10 * time.Second

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ConnectAccount Phase = iota
	SyncScrobbles
	RefreshUser
	FetchDiscover
	FetchDetails
	Snapshot
)

func (p Phase) String() string {
	switch p {
	case ConnectAccount:
		return "connect"
	case SyncScrobbles:
		return "sync"
	case RefreshUser:
		return "refresh"
	case FetchDiscover:
		return "discover"
	case FetchDetails:
		return "details"
	case Snapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Snapshotter persists server responses into the local offline cache.
// Implemented by repositories.SnapshotAdapter; nil disables snapshotting.
type Snapshotter interface {
	SaveMatches(matches []models.Match) error
	SaveProfiles(profiles []models.UserProfile) error
}

// Engine orchestrates cached reads and mutations against the duet backend.
type Engine struct {
	api      services.API
	cache    *cache.Cache
	sessions *session.Store
	local    Snapshotter
	logger   *log.Logger
}

// NewEngine creates an Engine. local may be nil (no offline snapshots);
// the logger defaults to stderr.
func NewEngine(api services.API, c *cache.Cache, sessions *session.Store, local Snapshotter, logger *log.Logger) *Engine {
	if c == nil {
		c = cache.New()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{api: api, cache: c, sessions: sessions, local: local, logger: logger}
}

// Cache exposes the underlying fetch cache for loading/error indicators.
func (e *Engine) Cache() *cache.Cache { return e.cache }

func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Me returns the authenticated user's record through the "me" cache key and
// refreshes the session store's copy.
func (e *Engine) Me(ctx context.Context) (*models.User, error) {
	user, err := cache.Fetch(ctx, e.cache, cache.KeyMe, e.api.Me)
	if err != nil {
		return user, err
	}
	if e.sessions != nil {
		e.sessions.SetUser(user)
	}
	return user, nil
}

// Matches returns the match list through the "matches" cache key. Fresh
// results are snapshotted into the offline cache, best-effort.
func (e *Engine) Matches(ctx context.Context) ([]models.Match, error) {
	matches, err := cache.Fetch(ctx, e.cache, cache.KeyMatches, e.api.Matches)
	if err != nil {
		return matches, err
	}
	if e.local != nil {
		if err := e.local.SaveMatches(matches); err != nil {
			e.logger.Warn("failed to snapshot matches", "error", err)
		}
	}
	return matches, nil
}

// Discover returns the candidate list through the "discover" cache key.
func (e *Engine) Discover(ctx context.Context) ([]models.UserProfile, error) {
	profiles, err := cache.Fetch(ctx, e.cache, cache.KeyDiscover, e.api.Discover)
	if err != nil {
		return profiles, err
	}
	if e.local != nil {
		if err := e.local.SaveProfiles(profiles); err != nil {
			e.logger.Warn("failed to snapshot profiles", "error", err)
		}
	}
	return profiles, nil
}

// Like records a like towards toUserID. On success the "matches" and
// "discover" keys are invalidated; a failed mutation invalidates nothing.
func (e *Engine) Like(ctx context.Context, toUserID string) (*models.LikeResult, error) {
	result, err := e.api.CreateLike(ctx, toUserID)
	if err != nil {
		return nil, err
	}
	e.cache.Invalidate(cache.KeyMatches, cache.KeyDiscover)
	return result, nil
}

// LikeAsync fires the like mutation without awaiting it, for use as
// [feed.LikeFunc]. The deck advances regardless of the outcome; a failed like
// is only visible through the log and the absence of cache invalidation.
func (e *Engine) LikeAsync(profile models.UserProfile) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), likeTimeout)
		defer cancel()

		result, err := e.Like(ctx, profile.ID)
		if err != nil {
			e.logger.Warn("like failed", "user", profile.ID, "error", err)
			return
		}
		if result.Matched {
			e.logger.Info("matched!", "user", profile.ID, "name", profile.Name)
		}
	}()
}

// DeleteMatch removes a match. On success the "matches" key is invalidated.
func (e *Engine) DeleteMatch(ctx context.Context, matchID string) (*models.Ack, error) {
	ack, err := e.api.DeleteMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	e.cache.Invalidate(cache.KeyMatches)
	return ack, nil
}

// UpdateProfile applies a partial update to the authenticated user and
// replaces the session store's user copy with the server's response.
func (e *Engine) UpdateProfile(ctx context.Context, update models.UpdateUser) (*models.User, error) {
	user, err := e.api.UpdateMe(ctx, update)
	if err != nil {
		return nil, err
	}
	if e.sessions != nil {
		e.sessions.SetUser(user)
	}
	e.cache.Invalidate(cache.KeyMe)
	return user, nil
}

// NewDeck fetches the discovery candidates and wraps them in a [feed.Deck]
// whose like action is the fire-and-forget mutation.
func (e *Engine) NewDeck(ctx context.Context) (*feed.Deck, error) {
	profiles, err := e.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discovery feed: %w", err)
	}
	return feed.NewDeck(profiles, e.LikeAsync), nil
}
