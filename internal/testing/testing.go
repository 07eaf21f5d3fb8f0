// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/duet/internal/models"
)

// MockAPI is a configurable test double for [services.API]
//
// Each endpoint has a corresponding Fn field; unset endpoints return zero
// values. Calls records invoked method names in order and is safe for use
// from concurrent fetches.
type MockAPI struct {
	mu    sync.Mutex
	Calls []string

	SetTokenFn      func(token string)
	RegisterFn      func(ctx context.Context, create models.CreateUser) (*models.AuthUser, error)
	LoginFn         func(ctx context.Context, email, password string) (*models.AuthResponse, error)
	LogoutFn        func(ctx context.Context) (*models.Ack, error)
	MeFn            func(ctx context.Context) (*models.User, error)
	UpdateMeFn      func(ctx context.Context, update models.UpdateUser) (*models.User, error)
	UserFn          func(ctx context.Context, userID string) (*models.User, error)
	ConnectLastfmFn func(ctx context.Context, username string) (*models.Ack, error)
	SyncLastfmFn    func(ctx context.Context) (*models.SyncResult, error)
	CreateLikeFn    func(ctx context.Context, toUserID string) (*models.LikeResult, error)
	MatchesFn       func(ctx context.Context) ([]models.Match, error)
	DeleteMatchFn   func(ctx context.Context, matchID string) (*models.Ack, error)
	DiscoverFn      func(ctx context.Context) ([]models.UserProfile, error)
}

func (m *MockAPI) record(name string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, name)
	m.mu.Unlock()
}

// CallCount returns how many times the named method was invoked.
func (m *MockAPI) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.Calls {
		if call == name {
			count++
		}
	}
	return count
}

func (m *MockAPI) SetToken(token string) {
	m.record("SetToken")
	if m.SetTokenFn != nil {
		m.SetTokenFn(token)
	}
}

func (m *MockAPI) Register(ctx context.Context, create models.CreateUser) (*models.AuthUser, error) {
	m.record("Register")
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, create)
	}
	return &models.AuthUser{}, nil
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	m.record("Login")
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return &models.AuthResponse{}, nil
}

func (m *MockAPI) Logout(ctx context.Context) (*models.Ack, error) {
	m.record("Logout")
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx)
	}
	return &models.Ack{}, nil
}

func (m *MockAPI) Me(ctx context.Context) (*models.User, error) {
	m.record("Me")
	if m.MeFn != nil {
		return m.MeFn(ctx)
	}
	return &models.User{}, nil
}

func (m *MockAPI) UpdateMe(ctx context.Context, update models.UpdateUser) (*models.User, error) {
	m.record("UpdateMe")
	if m.UpdateMeFn != nil {
		return m.UpdateMeFn(ctx, update)
	}
	return &models.User{}, nil
}

func (m *MockAPI) User(ctx context.Context, userID string) (*models.User, error) {
	m.record("User")
	if m.UserFn != nil {
		return m.UserFn(ctx, userID)
	}
	return &models.User{ID: userID}, nil
}

func (m *MockAPI) ConnectLastfm(ctx context.Context, username string) (*models.Ack, error) {
	m.record("ConnectLastfm")
	if m.ConnectLastfmFn != nil {
		return m.ConnectLastfmFn(ctx, username)
	}
	return &models.Ack{}, nil
}

func (m *MockAPI) SyncLastfm(ctx context.Context) (*models.SyncResult, error) {
	m.record("SyncLastfm")
	if m.SyncLastfmFn != nil {
		return m.SyncLastfmFn(ctx)
	}
	return &models.SyncResult{}, nil
}

func (m *MockAPI) CreateLike(ctx context.Context, toUserID string) (*models.LikeResult, error) {
	m.record("CreateLike")
	if m.CreateLikeFn != nil {
		return m.CreateLikeFn(ctx, toUserID)
	}
	return &models.LikeResult{Liked: true}, nil
}

func (m *MockAPI) Matches(ctx context.Context) ([]models.Match, error) {
	m.record("Matches")
	if m.MatchesFn != nil {
		return m.MatchesFn(ctx)
	}
	return []models.Match{}, nil
}

func (m *MockAPI) DeleteMatch(ctx context.Context, matchID string) (*models.Ack, error) {
	m.record("DeleteMatch")
	if m.DeleteMatchFn != nil {
		return m.DeleteMatchFn(ctx, matchID)
	}
	return &models.Ack{}, nil
}

func (m *MockAPI) Discover(ctx context.Context) ([]models.UserProfile, error) {
	m.record("Discover")
	if m.DiscoverFn != nil {
		return m.DiscoverFn(ctx)
	}
	return []models.UserProfile{}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
