package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:3000/api"

var _ API = (*Client)(nil)

// Client implements [API] over HTTP/JSON.
//
// The bearer credential is attached via an [oauth2.StaticTokenSource] client
// wrapping the base transport. SetToken swaps the whole client under mu, so
// in-flight requests keep the credential they started with.
type Client struct {
	baseURL    string
	baseClient *http.Client
	limiter    *rate.Limiter

	mu         sync.RWMutex
	httpClient *http.Client
}

// NewClient creates a new API client. An empty baseURL falls back to the
// local development server; a nil client falls back to [http.DefaultClient].
// ratePerSec <= 0 disables client-side rate limiting.
func NewClient(baseURL string, client *http.Client, ratePerSec float64) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}

	return &Client{
		baseURL:    baseURL,
		baseClient: client,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// SetToken installs the bearer credential for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token == "" {
		c.httpClient = c.baseClient
		return
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.baseClient)
	c.httpClient = oauth2.NewClient(ctx, src)
}

// client snapshots the current HTTP client so a request observes one
// credential for its whole lifetime.
func (c *Client) client() *http.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.httpClient
}

// doRequest performs a JSON request against the backend and decodes the
// response into result when non-nil. Non-2xx statuses are mapped onto the
// sentinel errors in [shared].
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client().Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// statusError maps an error response onto a sentinel error, preserving the
// server's message body when present.
func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	detail := ""
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			detail = payload.Error
		} else {
			detail = payload.Message
		}
	}
	if detail == "" {
		detail = fmt.Sprintf("status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", shared.ErrConflict, detail)
	default:
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, detail)
	}
}

// Register creates a new account via POST /auth/register.
// The create payload is validated client-side before any network call.
func (c *Client) Register(ctx context.Context, create models.CreateUser) (*models.AuthUser, error) {
	if err := create.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var user models.AuthUser
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", create, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a session token via POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := models.LoginRequest{Email: email, Password: password}

	var auth models.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Logout invalidates the session via POST /auth/logout.
func (c *Client) Logout(ctx context.Context) (*models.Ack, error) {
	var ack models.Ack
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// Me retrieves the authenticated user via GET /users/me.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe applies a partial profile update via PUT /users/me.
func (c *Client) UpdateMe(ctx context.Context, update models.UpdateUser) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodPut, "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// User retrieves a user by id via GET /users/{id}.
func (c *Client) User(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	var user models.User
	endpoint := fmt.Sprintf("/users/%s", url.PathEscape(userID))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ConnectLastfm links a Last.fm username via POST /lastfm/connect.
func (c *Client) ConnectLastfm(ctx context.Context, username string) (*models.Ack, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: Last.fm username", shared.ErrMissingArgument)
	}

	body := map[string]string{"username": username}
	var ack models.Ack
	if err := c.doRequest(ctx, http.MethodPost, "/lastfm/connect", body, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// SyncLastfm pulls listening history via POST /lastfm/sync.
func (c *Client) SyncLastfm(ctx context.Context) (*models.SyncResult, error) {
	var result models.SyncResult
	if err := c.doRequest(ctx, http.MethodPost, "/lastfm/sync", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateLike records a like via POST /likes.
func (c *Client) CreateLike(ctx context.Context, toUserID string) (*models.LikeResult, error) {
	if toUserID == "" {
		return nil, fmt.Errorf("%w: target user id", shared.ErrMissingArgument)
	}

	body := map[string]string{"to_user_id": toUserID}
	var result models.LikeResult
	if err := c.doRequest(ctx, http.MethodPost, "/likes", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Matches lists the user's matches via GET /matches.
func (c *Client) Matches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := c.doRequest(ctx, http.MethodGet, "/matches", nil, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// DeleteMatch removes a match via DELETE /matches/{id}.
func (c *Client) DeleteMatch(ctx context.Context, matchID string) (*models.Ack, error) {
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id", shared.ErrMissingArgument)
	}

	var ack models.Ack
	endpoint := fmt.Sprintf("/matches/%s", url.PathEscape(matchID))
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// Discover retrieves the candidate list via GET /discover.
func (c *Client) Discover(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := c.doRequest(ctx, http.MethodGet, "/discover", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
