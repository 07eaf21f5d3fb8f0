package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/duet/internal/models"
)

// ProfileRepository persists snapshots of the /discover response.
//
// String slices (photos, artists) are stored as JSON arrays in TEXT columns.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new [ProfileRepository] with the given database connection
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Replace swaps the stored snapshot for the given candidate list in one
// transaction, preserving the server's ordering via sequence numbers.
func (r *ProfileRepository) Replace(profiles []models.UserProfile, snapshotAt time.Time) error {
	sequences := make([]int, len(profiles))
	for i := range profiles {
		sequence, err := NextSequence(r.db, "profiles")
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

	if _, err := tx.Exec("DELETE FROM profiles"); err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}

	query := `
		INSERT INTO profiles (id, sequence, name, age, bio, photos, top_artists, common_artists, compatibility_score, snapshot_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for i, profile := range profiles {
		photos, err := encodeStrings(profile.Photos)
		if err != nil {
			return err
		}
		topArtists, err := encodeStrings(profile.TopArtists)
		if err != nil {
			return err
		}
		commonArtists, err := encodeStrings(profile.CommonArtists)
		if err != nil {
			return err
		}

		_, err = tx.Exec(query,
			profile.ID, sequences[i], profile.Name, profile.Age, profile.Bio,
			photos, topArtists, commonArtists, profile.CompatibilityScore, snapshotAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
	}

	return tx.Commit()
}

// List retrieves the stored snapshot in its original server ordering.
func (r *ProfileRepository) List() ([]models.UserProfile, error) {
	query := `
		SELECT id, name, age, bio, photos, top_artists, common_artists, compatibility_score
		FROM profiles
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		var (
			profile                           models.UserProfile
			photos, topArtists, commonArtists string
		)

		err := rows.Scan(
			&profile.ID, &profile.Name, &profile.Age, &profile.Bio,
			&photos, &topArtists, &commonArtists, &profile.CompatibilityScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}

		if profile.Photos, err = decodeStrings(photos); err != nil {
			return nil, err
		}
		if profile.TopArtists, err = decodeStrings(topArtists); err != nil {
			return nil, err
		}
		if profile.CommonArtists, err = decodeStrings(commonArtists); err != nil {
			return nil, err
		}

		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return profiles, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(data), nil
}

func decodeStrings(data string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to decode string list: %w", err)
	}
	return values, nil
}
