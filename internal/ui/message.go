package ui

import (
	"github.com/desertthunder/duet/internal/feed"
	"github.com/desertthunder/duet/internal/models"
)

// loginDoneMsg reports the outcome of a login attempt.
type loginDoneMsg struct {
	err error
}

// userFetchedMsg carries the /users/me response after session restore.
type userFetchedMsg struct {
	user *models.User
	err  error
}

// deckReadyMsg carries a freshly built discovery deck.
type deckReadyMsg struct {
	deck *feed.Deck
	err  error
}

// matchesFetchedMsg carries the match list for the matches view.
type matchesFetchedMsg struct {
	matches []models.Match
	err     error
}

// likeSettledMsg reports the backend outcome of a like that the deck already
// advanced past. A mutual match raises the celebration banner.
type likeSettledMsg struct {
	profile models.UserProfile
	result  *models.LikeResult
	err     error
}

// matchDeletedMsg reports the outcome of an unmatch request.
type matchDeletedMsg struct {
	matchID string
	err     error
}
