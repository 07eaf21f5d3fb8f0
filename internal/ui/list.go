package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/duet/internal/models"
)

var (
	_ list.Item = matchItem{}
)

// matchItem wraps [models.Match] to implement [list.Item].
type matchItem struct {
	match         models.Match
	currentUserID string
}

func (i matchItem) FilterValue() string { return i.match.OtherUserID(i.currentUserID) }
func (i matchItem) Title() string       { return i.match.OtherUserID(i.currentUserID) }
func (i matchItem) Description() string {
	desc := fmt.Sprintf("matched %s", i.match.CreatedAt)
	if i.match.CompatibilityScore != nil {
		desc = fmt.Sprintf("%.0f%% compatible • %s", *i.match.CompatibilityScore, desc)
	}
	return desc
}
