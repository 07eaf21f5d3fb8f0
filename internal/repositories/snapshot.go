package repositories

import (
	"database/sql"
	"time"

	"github.com/desertthunder/duet/internal/models"
)

// SnapshotAdapter implements tasks.Snapshotter over the match and profile
// repositories, stamping each snapshot with the current time.
type SnapshotAdapter struct {
	matches  *MatchRepository
	profiles *ProfileRepository
	now      func() time.Time
}

// NewSnapshotAdapter creates a SnapshotAdapter over the given database.
func NewSnapshotAdapter(db *sql.DB) *SnapshotAdapter {
	return &SnapshotAdapter{
		matches:  NewMatchRepository(db),
		profiles: NewProfileRepository(db),
		now:      time.Now,
	}
}

// SaveMatches replaces the stored match snapshot.
func (a *SnapshotAdapter) SaveMatches(matches []models.Match) error {
	return a.matches.Replace(matches, a.now())
}

// SaveProfiles replaces the stored discovery snapshot.
func (a *SnapshotAdapter) SaveProfiles(profiles []models.UserProfile) error {
	return a.profiles.Replace(profiles, a.now())
}

// Matches returns the stored match snapshot for offline reads.
func (a *SnapshotAdapter) Matches() ([]models.Match, error) {
	return a.matches.List()
}

// Profiles returns the stored discovery snapshot for offline reads.
func (a *SnapshotAdapter) Profiles() ([]models.UserProfile, error) {
	return a.profiles.List()
}

// MatchSnapshotAt returns when the match snapshot was taken.
func (a *SnapshotAdapter) MatchSnapshotAt() (time.Time, error) {
	return a.matches.SnapshotAt()
}
