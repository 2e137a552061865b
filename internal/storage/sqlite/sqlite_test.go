package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mmynk/roster/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "roster.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Load on a fresh database is empty", func(t *testing.T) {
		students, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(students) != 0 {
			t.Errorf("Expected 0 students, got %d", len(students))
		}
	})

	t.Run("Save then Load preserves order and duplicates", func(t *testing.T) {
		original := []*models.Student{
			models.NewStudent("2", "Bob", "M", "C1", [models.CourseCount]int{80, 85, 83}),
			models.NewStudent("1", "Alice", "F", "C1", [models.CourseCount]int{90, 90, 90}),
			models.NewStudent("2", "Bob, Jr.", "M", "C2", [models.CourseCount]int{-1, 0, 100}),
		}

		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != len(original) {
			t.Fatalf("Student count mismatch: got %d, want %d", len(loaded), len(original))
		}
		for i := range original {
			if loaded[i].ID() != original[i].ID() || loaded[i].Name() != original[i].Name() {
				t.Errorf("Student %d mismatch: got %s/%s, want %s/%s",
					i, loaded[i].ID(), loaded[i].Name(), original[i].ID(), original[i].Name())
			}
			if loaded[i].Scores() != original[i].Scores() {
				t.Errorf("Student %d scores mismatch: got %v, want %v", i, loaded[i].Scores(), original[i].Scores())
			}
			if loaded[i].TotalScore() != original[i].TotalScore() {
				t.Errorf("Student %d total mismatch: got %d, want %d", i, loaded[i].TotalScore(), original[i].TotalScore())
			}
		}
	})

	t.Run("Save replaces previous roster", func(t *testing.T) {
		if err := store.Save(ctx, []*models.Student{
			models.NewStudent("9", "Zed", "M", "C9", [models.CourseCount]int{1, 2, 3}),
		}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != 1 || loaded[0].ID() != "9" {
			t.Errorf("Expected only student 9, got %d students", len(loaded))
		}
	})

	t.Run("Each save records a snapshot", func(t *testing.T) {
		snapshots, err := store.ListSnapshots(ctx)
		if err != nil {
			t.Fatalf("ListSnapshots failed: %v", err)
		}
		if len(snapshots) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
		}
		if snapshots[0].StudentCount != 1 || snapshots[1].StudentCount != 3 {
			t.Errorf("Unexpected snapshot counts: %d, %d", snapshots[0].StudentCount, snapshots[1].StudentCount)
		}
		for _, snapshot := range snapshots {
			if _, err := uuid.Parse(snapshot.ID); err != nil {
				t.Errorf("Snapshot ID %q is not a UUID: %v", snapshot.ID, err)
			}
			if snapshot.CreatedAt == 0 {
				t.Error("Expected CreatedAt to be set")
			}
		}
	})
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roster.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Save(ctx, []*models.Student{
		models.NewStudent("1", "Alice", "F", "C1", [models.CourseCount]int{90, 90, 90}),
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].TotalScore() != 270 {
		t.Errorf("Expected student 1 with total 270 after reopen")
	}
}
