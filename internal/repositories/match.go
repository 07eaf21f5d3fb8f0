package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/duet/internal/models"
)

// MatchRepository persists snapshots of the /matches response.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new [MatchRepository] with the given database connection
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Replace swaps the stored snapshot for the given match list in one
// transaction, preserving the server's ordering via sequence numbers.
func (r *MatchRepository) Replace(matches []models.Match, snapshotAt time.Time) error {
	sequences := make([]int, len(matches))
	for i := range matches {
		sequence, err := NextSequence(r.db, "matches")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}
		sequences[i] = sequence
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}

	query := `
		INSERT INTO matches (id, sequence, user1_id, user2_id, compatibility_score, created_at, snapshot_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for i, match := range matches {
		var score sql.NullFloat64
		if match.CompatibilityScore != nil {
			score = sql.NullFloat64{Float64: *match.CompatibilityScore, Valid: true}
		}

		_, err := tx.Exec(query, match.ID, sequences[i], match.User1ID, match.User2ID, score, match.CreatedAt, snapshotAt)
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	return tx.Commit()
}

// List retrieves the stored snapshot in its original server ordering.
func (r *MatchRepository) List() ([]models.Match, error) {
	query := `
		SELECT id, user1_id, user2_id, compatibility_score, created_at
		FROM matches
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var (
			match models.Match
			score sql.NullFloat64
		)

		if err := rows.Scan(&match.ID, &match.User1ID, &match.User2ID, &score, &match.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if score.Valid {
			match.CompatibilityScore = &score.Float64
		}

		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return matches, nil
}

// SnapshotAt returns when the stored snapshot was taken, or the zero time
// when no snapshot exists.
func (r *MatchRepository) SnapshotAt() (time.Time, error) {
	var at time.Time
	err := r.db.QueryRow("SELECT snapshot_at FROM matches ORDER BY snapshot_at DESC LIMIT 1").Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query snapshot time: %w", err)
	}
	return at, nil
}
