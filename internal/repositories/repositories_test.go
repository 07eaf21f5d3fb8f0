package repositories

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestNextSequence(t *testing.T) {
	db := newTestDB(t)

	first, err := NextSequence(db, "matches")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := NextSequence(db, "matches")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if second != first+1 {
		t.Errorf("expected monotonically increasing sequence, got %d then %d", first, second)
	}
}

func TestMatchRepository(t *testing.T) {
	score := 87.5

	t.Run("Replace and List preserve server ordering", func(t *testing.T) {
		repo := NewMatchRepository(newTestDB(t))
		matches := []models.Match{
			{ID: "m3", User1ID: "u1", User2ID: "u4", CreatedAt: "2026-08-03"},
			{ID: "m1", User1ID: "u1", User2ID: "u2", CompatibilityScore: &score, CreatedAt: "2026-08-01"},
			{ID: "m2", User1ID: "u1", User2ID: "u3", CreatedAt: "2026-08-02"},
		}

		if err := repo.Replace(matches, time.Now()); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(stored) != 3 {
			t.Fatalf("expected 3 matches, got %d", len(stored))
		}
		for i, want := range []string{"m3", "m1", "m2"} {
			if stored[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, stored[i].ID)
			}
		}
		if stored[1].CompatibilityScore == nil || *stored[1].CompatibilityScore != score {
			t.Errorf("expected score %.1f preserved, got %v", score, stored[1].CompatibilityScore)
		}
		if stored[0].CompatibilityScore != nil {
			t.Error("expected nil score preserved")
		}
	})

	t.Run("Replace swaps the previous snapshot", func(t *testing.T) {
		repo := NewMatchRepository(newTestDB(t))

		if err := repo.Replace([]models.Match{{ID: "m1", User1ID: "u1", User2ID: "u2", CreatedAt: "2026-08-01"}}, time.Now()); err != nil {
			t.Fatalf("first replace failed: %v", err)
		}
		if err := repo.Replace([]models.Match{{ID: "m2", User1ID: "u1", User2ID: "u3", CreatedAt: "2026-08-02"}}, time.Now()); err != nil {
			t.Fatalf("second replace failed: %v", err)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(stored) != 1 || stored[0].ID != "m2" {
			t.Errorf("expected only the new snapshot, got %+v", stored)
		}
	})

	t.Run("SnapshotAt", func(t *testing.T) {
		repo := NewMatchRepository(newTestDB(t))

		at, err := repo.SnapshotAt()
		if err != nil {
			t.Fatalf("expected no error on empty table, got %v", err)
		}
		if !at.IsZero() {
			t.Errorf("expected zero time for empty snapshot, got %v", at)
		}

		taken := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		if err := repo.Replace([]models.Match{{ID: "m1", User1ID: "u1", User2ID: "u2", CreatedAt: "2026-08-01"}}, taken); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		at, err = repo.SnapshotAt()
		if err != nil {
			t.Fatalf("snapshot time failed: %v", err)
		}
		if !at.Equal(taken) {
			t.Errorf("expected %v, got %v", taken, at)
		}
	})
}

func TestProfileRepository(t *testing.T) {
	t.Run("round-trips string lists", func(t *testing.T) {
		repo := NewProfileRepository(newTestDB(t))
		profiles := []models.UserProfile{
			{
				ID:                 "u2",
				Name:               "Bea",
				Age:                29,
				Bio:                "always at a show",
				Photos:             []string{"a.jpg", "b.jpg"},
				TopArtists:         []string{"Big Thief", "Wilco"},
				CommonArtists:      []string{"Big Thief"},
				CompatibilityScore: 91,
			},
			{
				ID:                 "u3",
				Name:               "Cal",
				CompatibilityScore: 44,
			},
		}

		if err := repo.Replace(profiles, time.Now()); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(stored) != 2 {
			t.Fatalf("expected 2 profiles, got %d", len(stored))
		}

		bea := stored[0]
		if bea.ID != "u2" || bea.Name != "Bea" || bea.Age != 29 {
			t.Errorf("unexpected first profile %+v", bea)
		}
		if len(bea.TopArtists) != 2 || bea.TopArtists[0] != "Big Thief" {
			t.Errorf("expected top artists preserved, got %v", bea.TopArtists)
		}
		if len(bea.CommonArtists) != 1 {
			t.Errorf("expected common artists preserved, got %v", bea.CommonArtists)
		}

		// nil slices come back as empty lists, not NULLs.
		cal := stored[1]
		if cal.Photos == nil || len(cal.Photos) != 0 {
			t.Errorf("expected empty photo list, got %v", cal.Photos)
		}
	})

	t.Run("preserves ordering across replaces", func(t *testing.T) {
		repo := NewProfileRepository(newTestDB(t))

		first := []models.UserProfile{{ID: "u2", Name: "Bea"}, {ID: "u3", Name: "Cal"}}
		if err := repo.Replace(first, time.Now()); err != nil {
			t.Fatalf("first replace failed: %v", err)
		}

		second := []models.UserProfile{{ID: "u4", Name: "Dee"}, {ID: "u2", Name: "Bea"}}
		if err := repo.Replace(second, time.Now()); err != nil {
			t.Fatalf("second replace failed: %v", err)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(stored) != 2 || stored[0].ID != "u4" || stored[1].ID != "u2" {
			t.Errorf("expected new snapshot ordering, got %+v", stored)
		}
	})
}

func TestSnapshotAdapter(t *testing.T) {
	db := newTestDB(t)
	adapter := NewSnapshotAdapter(db)
	taken := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	adapter.now = func() time.Time { return taken }

	if err := adapter.SaveMatches([]models.Match{{ID: "m1", User1ID: "u1", User2ID: "u2", CreatedAt: "2026-08-01"}}); err != nil {
		t.Fatalf("save matches failed: %v", err)
	}
	if err := adapter.SaveProfiles([]models.UserProfile{{ID: "u2", Name: "Bea"}}); err != nil {
		t.Fatalf("save profiles failed: %v", err)
	}

	matches, err := adapter.Matches()
	if err != nil {
		t.Fatalf("read matches failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "m1" {
		t.Errorf("unexpected matches %+v", matches)
	}

	profiles, err := adapter.Profiles()
	if err != nil {
		t.Fatalf("read profiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "Bea" {
		t.Errorf("unexpected profiles %+v", profiles)
	}

	at, err := adapter.MatchSnapshotAt()
	if err != nil {
		t.Fatalf("snapshot time failed: %v", err)
	}
	if !at.Equal(taken) {
		t.Errorf("expected %v, got %v", taken, at)
	}
}
