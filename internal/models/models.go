package models

import (
	"fmt"
	"strings"
)

// User represents the authenticated account as returned by /users/me.
type User struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	Name              string   `json:"name"`
	Bio               string   `json:"bio,omitempty"`
	BirthDate         string   `json:"birth_date,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	LookingFor        string   `json:"looking_for,omitempty"`
	LastfmUsername    string   `json:"lastfm_username,omitempty"`
	LastfmConnectedAt string   `json:"lastfm_connected_at,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// UserProfile represents a discovery candidate.
//
// Ephemeral: fetched per discovery session and removed from the deck once
// acted upon. CompatibilityScore is on a 0-100 scale, computed server-side.
type UserProfile struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Age                int      `json:"age,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	Photos             []string `json:"photos"`
	TopArtists         []string `json:"top_artists"`
	CommonArtists      []string `json:"common_artists"`
	CompatibilityScore float64  `json:"compatibility_score"`
}

// Match represents a mutual like between two users.
type Match struct {
	ID                 string   `json:"id"`
	User1ID            string   `json:"user1_id"`
	User2ID            string   `json:"user2_id"`
	CompatibilityScore *float64 `json:"compatibility_score,omitempty"`
	CreatedAt          string   `json:"created_at"`
}

// OtherUserID returns the participant that is not the given user.
func (m Match) OtherUserID(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// Like represents a directional like relation, created via POST /likes.
type Like struct {
	ID         string `json:"id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	CreatedAt  string `json:"created_at"`
}

// CreateUser is the request body for POST /auth/register.
type CreateUser struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date,omitempty"`
	Gender    string `json:"gender,omitempty"`
}

// Validate checks registration input client-side, before any network call.
func (c CreateUser) Validate() error {
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return fmt.Errorf("invalid email address: %q", c.Email)
	}
	if len(c.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// UpdateUser is the request body for PUT /users/me. Zero-valued fields are
// omitted so the server treats the update as partial.
type UpdateUser struct {
	Name       string   `json:"name,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	BirthDate  string   `json:"birth_date,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	LookingFor string   `json:"looking_for,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the trimmed user object embedded in [AuthResponse].
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is the response body of POST /auth/login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// LikeResult is the response body of POST /likes. Match is non-nil only when
// the like completed a mutual pair.
type LikeResult struct {
	Liked   bool   `json:"liked"`
	Matched bool   `json:"matched"`
	Match   *Match `json:"match,omitempty"`
}

// SyncResult is the response body of POST /lastfm/sync.
type SyncResult struct {
	ArtistsCount int    `json:"artists_count"`
	Message      string `json:"message"`
}

// Ack is the generic message-only acknowledgement body used by logout,
// match deletion and Last.fm connect.
type Ack struct {
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}
