package services

import (
	"context"

	"github.com/desertthunder/duet/internal/models"
)

// API defines the operations exposed by the duet backend.
type API interface {
	// SetToken installs the bearer credential attached to subsequent requests.
	// An empty token reverts to unauthenticated requests.
	SetToken(token string)

	// Register creates a new account. Returns the created-user confirmation.
	Register(ctx context.Context, create models.CreateUser) (*models.AuthUser, error)

	// Login exchanges credentials for a session token and trimmed user record.
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)

	// Logout invalidates the session server-side.
	Logout(ctx context.Context) (*models.Ack, error)

	// Me retrieves the authenticated user's full record.
	Me(ctx context.Context) (*models.User, error)

	// UpdateMe applies a partial profile update and returns the updated record.
	UpdateMe(ctx context.Context, update models.UpdateUser) (*models.User, error)

	// User retrieves another user's record by id.
	User(ctx context.Context, userID string) (*models.User, error)

	// ConnectLastfm links a Last.fm username to the authenticated account.
	ConnectLastfm(ctx context.Context, username string) (*models.Ack, error)

	// SyncLastfm pulls listening history from Last.fm into the backend.
	SyncLastfm(ctx context.Context) (*models.SyncResult, error)

	// CreateLike records a like towards another user. The result reports
	// whether the like completed a mutual match.
	CreateLike(ctx context.Context, toUserID string) (*models.LikeResult, error)

	// Matches lists the authenticated user's matches.
	Matches(ctx context.Context) ([]models.Match, error)

	// DeleteMatch removes a match ("unmatch").
	DeleteMatch(ctx context.Context, matchID string) (*models.Ack, error)

	// Discover retrieves the ordered discovery candidate list.
	Discover(ctx context.Context) ([]models.UserProfile, error)
}
