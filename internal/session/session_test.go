package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/shared"
	tu "github.com/desertthunder/duet/internal/testing"
	"github.com/golang-jwt/jwt/v5"
)

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		t.Run("success installs token, user and persists", func(t *testing.T) {
			var installed string
			api := &tu.MockAPI{
				SetTokenFn: func(token string) { installed = token },
				LoginFn: func(ctx context.Context, email, password string) (*models.AuthResponse, error) {
					return &models.AuthResponse{
						Token: "tok-123",
						User:  models.AuthUser{ID: "u1", Email: email, Name: "Alice"},
					}, nil
				},
			}
			tokens := NewMemoryTokenStore()
			store := NewStore(api, tokens, nil)

			if err := store.Login(ctx, "alice@example.com", "hunter22"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !store.Authenticated() {
				t.Error("expected authenticated session")
			}
			if store.Token() != "tok-123" {
				t.Errorf("expected token tok-123, got %q", store.Token())
			}
			if user := store.CurrentUser(); user == nil || user.Name != "Alice" {
				t.Errorf("expected user Alice, got %+v", user)
			}
			if installed != "tok-123" {
				t.Errorf("expected token installed on the API client, got %q", installed)
			}
			if saved, err := tokens.Load(); err != nil || saved != "tok-123" {
				t.Errorf("expected persisted token, got %q (%v)", saved, err)
			}
		})

		t.Run("failure leaves the session untouched", func(t *testing.T) {
			api := &tu.MockAPI{
				LoginFn: func(ctx context.Context, email, password string) (*models.AuthResponse, error) {
					return nil, shared.ErrAuthFailed
				},
			}
			store := NewStore(api, NewMemoryTokenStore(), nil)

			err := store.Login(ctx, "alice@example.com", "wrong")

			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Fatalf("expected auth failure, got %v", err)
			}
			if store.Authenticated() {
				t.Error("expected unauthenticated session after failed login")
			}
			if store.Token() != "" {
				t.Errorf("expected empty token, got %q", store.Token())
			}
			if store.CurrentUser() != nil {
				t.Error("expected no user after failed login")
			}
		})

		t.Run("persist failure does not fail the login", func(t *testing.T) {
			api := &tu.MockAPI{
				LoginFn: func(ctx context.Context, email, password string) (*models.AuthResponse, error) {
					return &models.AuthResponse{Token: "tok-123", User: models.AuthUser{ID: "u1"}}, nil
				},
			}
			store := NewStore(api, failingTokenStore{}, nil)

			if err := store.Login(ctx, "alice@example.com", "hunter22"); err != nil {
				t.Fatalf("expected login to succeed despite save failure, got %v", err)
			}
			if !store.Authenticated() {
				t.Error("expected authenticated session")
			}
		})
	})

	t.Run("Logout", func(t *testing.T) {
		t.Run("clears state and the persisted token", func(t *testing.T) {
			var installed string
			api := &tu.MockAPI{
				SetTokenFn: func(token string) { installed = token },
				LoginFn: func(ctx context.Context, email, password string) (*models.AuthResponse, error) {
					return &models.AuthResponse{Token: "tok-123", User: models.AuthUser{ID: "u1"}}, nil
				},
			}
			tokens := NewMemoryTokenStore()
			store := NewStore(api, tokens, nil)

			if err := store.Login(ctx, "alice@example.com", "hunter22"); err != nil {
				t.Fatalf("login failed: %v", err)
			}
			store.Logout(ctx)

			if store.Authenticated() {
				t.Error("expected unauthenticated session")
			}
			if store.Token() != "" {
				t.Errorf("expected empty token, got %q", store.Token())
			}
			if store.CurrentUser() != nil {
				t.Error("expected no user after logout")
			}
			if installed != "" {
				t.Errorf("expected token cleared on the API client, got %q", installed)
			}
			if _, err := tokens.Load(); !errors.Is(err, shared.ErrNoToken) {
				t.Errorf("expected persisted token removed, got %v", err)
			}
		})

		t.Run("backend failure still clears locally", func(t *testing.T) {
			api := &tu.MockAPI{
				LoginFn: func(ctx context.Context, email, password string) (*models.AuthResponse, error) {
					return &models.AuthResponse{Token: "tok-123", User: models.AuthUser{ID: "u1"}}, nil
				},
				LogoutFn: func(ctx context.Context) (*models.Ack, error) {
					return nil, shared.ErrServiceUnavailable
				},
			}
			store := NewStore(api, NewMemoryTokenStore(), nil)

			if err := store.Login(ctx, "alice@example.com", "hunter22"); err != nil {
				t.Fatalf("login failed: %v", err)
			}
			store.Logout(ctx)

			if store.Authenticated() {
				t.Error("expected unauthenticated session despite backend failure")
			}
		})
	})

	t.Run("Initialize", func(t *testing.T) {
		t.Run("no stored token leaves the session signed out", func(t *testing.T) {
			store := NewStore(&tu.MockAPI{}, NewMemoryTokenStore(), nil)

			if err := store.Initialize(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if store.Authenticated() {
				t.Error("expected unauthenticated session")
			}
		})

		t.Run("restores a stored token without a backend call", func(t *testing.T) {
			var installed string
			api := &tu.MockAPI{SetTokenFn: func(token string) { installed = token }}
			tokens := NewMemoryTokenStore()
			if err := tokens.Save("tok-restored"); err != nil {
				t.Fatalf("failed to seed token: %v", err)
			}
			store := NewStore(api, tokens, nil)

			if err := store.Initialize(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !store.Authenticated() {
				t.Error("expected authenticated session")
			}
			if installed != "tok-restored" {
				t.Errorf("expected restored token installed, got %q", installed)
			}
			if store.CurrentUser() != nil {
				t.Error("expected no user until /users/me is fetched")
			}
			if api.CallCount("Me") != 0 {
				t.Error("expected restore without a backend round-trip")
			}
		})

		t.Run("idempotent", func(t *testing.T) {
			tokens := NewMemoryTokenStore()
			if err := tokens.Save("tok-restored"); err != nil {
				t.Fatalf("failed to seed token: %v", err)
			}
			api := &tu.MockAPI{}
			store := NewStore(api, tokens, nil)

			if err := store.Initialize(); err != nil {
				t.Fatalf("first initialize failed: %v", err)
			}
			if err := store.Initialize(); err != nil {
				t.Fatalf("second initialize failed: %v", err)
			}

			if api.CallCount("SetToken") != 1 {
				t.Errorf("expected token installed once, got %d", api.CallCount("SetToken"))
			}
		})

		t.Run("discards an expired JWT", func(t *testing.T) {
			tokens := NewMemoryTokenStore()
			if err := tokens.Save(signedJWT(t, time.Now().Add(-time.Hour))); err != nil {
				t.Fatalf("failed to seed token: %v", err)
			}
			store := NewStore(&tu.MockAPI{}, tokens, nil)

			if err := store.Initialize(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if store.Authenticated() {
				t.Error("expected expired token to be discarded")
			}
			if _, err := tokens.Load(); !errors.Is(err, shared.ErrNoToken) {
				t.Errorf("expected expired token cleared from the store, got %v", err)
			}
		})

		t.Run("restores an unexpired JWT", func(t *testing.T) {
			tokens := NewMemoryTokenStore()
			if err := tokens.Save(signedJWT(t, time.Now().Add(time.Hour))); err != nil {
				t.Fatalf("failed to seed token: %v", err)
			}
			store := NewStore(&tu.MockAPI{}, tokens, nil)

			if err := store.Initialize(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !store.Authenticated() {
				t.Error("expected authenticated session")
			}
		})

		t.Run("trusts opaque tokens on presence alone", func(t *testing.T) {
			tokens := NewMemoryTokenStore()
			if err := tokens.Save("not-a-jwt"); err != nil {
				t.Fatalf("failed to seed token: %v", err)
			}
			store := NewStore(&tu.MockAPI{}, tokens, nil)

			if err := store.Initialize(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !store.Authenticated() {
				t.Error("expected opaque token to be trusted")
			}
		})
	})

	t.Run("SetUser", func(t *testing.T) {
		store := NewStore(&tu.MockAPI{}, NewMemoryTokenStore(), nil)

		store.SetUser(&models.User{ID: "u1", Name: "Alice"})

		if user := store.CurrentUser(); user == nil || user.Name != "Alice" {
			t.Errorf("expected user Alice, got %+v", user)
		}
	})
}

func TestFileTokenStore(t *testing.T) {
	t.Run("round-trips a token", func(t *testing.T) {
		store := NewFileTokenStore(t.TempDir() + "/token")

		if err := store.Save("tok-123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		token, err := store.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if token != "tok-123" {
			t.Errorf("expected tok-123, got %q", token)
		}
	})

	t.Run("missing file reports ErrNoToken", func(t *testing.T) {
		store := NewFileTokenStore(t.TempDir() + "/absent")

		if _, err := store.Load(); !errors.Is(err, shared.ErrNoToken) {
			t.Errorf("expected ErrNoToken, got %v", err)
		}
	})

	t.Run("empty file reports ErrNoToken", func(t *testing.T) {
		store := NewFileTokenStore(t.TempDir() + "/token")
		if err := store.Save(""); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		if _, err := store.Load(); !errors.Is(err, shared.ErrNoToken) {
			t.Errorf("expected ErrNoToken, got %v", err)
		}
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := NewFileTokenStore(t.TempDir() + "/token")

		if err := store.Clear(); err != nil {
			t.Errorf("expected no error clearing an absent token, got %v", err)
		}

		if err := store.Save("tok-123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Errorf("clear failed: %v", err)
		}
		if _, err := store.Load(); !errors.Is(err, shared.ErrNoToken) {
			t.Errorf("expected ErrNoToken after clear, got %v", err)
		}
	})
}

// failingTokenStore rejects every save.
type failingTokenStore struct{}

func (failingTokenStore) Load() (string, error) { return "", shared.ErrNoToken }
func (failingTokenStore) Save(string) error     { return errors.New("disk full") }
func (failingTokenStore) Clear() error          { return nil }
