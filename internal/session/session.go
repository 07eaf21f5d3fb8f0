package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/services"
	"github.com/desertthunder/duet/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Store is the in-memory session state.
//
// Invariant: Authenticated() is true iff a token is set. All multi-field
// transitions (login, logout) happen under one lock acquisition, so observers
// never see a token without its user or vice versa.
type Store struct {
	api    services.API
	tokens TokenStore
	logger *log.Logger

	mu            sync.RWMutex
	token         string
	user          *models.User
	authenticated bool
	initialized   bool
}

// NewStore creates a session store. The logger defaults to stderr.
func NewStore(api services.API, tokens TokenStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{api: api, tokens: tokens, logger: logger}
}

// Initialize restores the session from the persisted token. A stored token is
// trusted without a backend round-trip, except that a JWT whose exp claim has
// already passed is discarded instead of restored. Idempotent.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true

	token, err := s.tokens.Load()
	if errors.Is(err, shared.ErrNoToken) {
		return nil
	}
	if err != nil {
		return err
	}

	if tokenExpired(token) {
		s.logger.Warn("stored session token is expired, discarding")
		if err := s.tokens.Clear(); err != nil {
			s.logger.Warn("failed to clear expired token", "error", err)
		}
		return nil
	}

	s.token = token
	s.authenticated = true
	s.api.SetToken(token)
	return nil
}

// Login authenticates against the backend. On success the token is persisted
// and {token, user, authenticated} are replaced in a single transition. On
// failure the session is left untouched and the error propagates.
func (s *Store) Login(ctx context.Context, email, password string) error {
	auth, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	// Persisted writes are best-effort: a failed save costs a re-login after
	// restart, not the current session.
	if err := s.tokens.Save(auth.Token); err != nil {
		s.logger.Warn("failed to persist session token", "error", err)
	}

	user := &models.User{ID: auth.User.ID, Email: auth.User.Email, Name: auth.User.Name}

	s.mu.Lock()
	s.token = auth.Token
	s.user = user
	s.authenticated = true
	s.initialized = true
	s.mu.Unlock()

	s.api.SetToken(auth.Token)
	return nil
}

// Logout clears the session. The backend logout call is fire-and-forget; the
// local clear always succeeds regardless of its outcome.
func (s *Store) Logout(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := s.api.Logout(ctx); err != nil {
		s.logger.Debug("backend logout failed", "error", err)
	}

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted token", "error", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	s.api.SetToken("")
}

// SetUser replaces only the user field, used after profile edits.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Token returns the current session token ("" when unauthenticated).
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns the cached user record, which may be nil even when
// authenticated (a restored session has a token but no user until /users/me
// is fetched).
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a session token is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// tokenExpired reports whether token is a JWT with an exp claim in the past.
// The signature is not verified; this is a local staleness check, not
// validation. Opaque tokens are trusted on presence alone.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
