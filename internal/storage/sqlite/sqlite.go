// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Snapshot describes one completed save.
type Snapshot struct {
	ID           string
	CreatedAt    int64
	StudentCount int
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load retrieves the roster in saved order.
func (s *SQLiteStore) Load(ctx context.Context) ([]*models.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id, name, gender, class_name, score1, score2, score3
		 FROM students ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		var (
			id, name, gender, className string
			scores                      [models.CourseCount]int
		)
		if err := rows.Scan(&id, &name, &gender, &className, &scores[0], &scores[1], &scores[2]); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, models.NewStudent(id, name, gender, className, scores))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}

	return students, nil
}

// Save replaces the stored roster with students and records a snapshot row,
// all in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, students []*models.Student) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		return fmt.Errorf("failed to clear students: %w", err)
	}

	for i, student := range students {
		scores := student.Scores()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO students (position, student_id, name, gender, class_name, score1, score2, score3)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, student.ID(), student.Name(), student.Gender(), student.ClassName(),
			scores[0], scores[1], scores[2],
		)
		if err != nil {
			return fmt.Errorf("failed to insert student: %w", err)
		}
	}

	snapshot := Snapshot{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now().Unix(),
		StudentCount: len(students),
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, created_at, student_count) VALUES (?, ?, ?)",
		snapshot.ID, snapshot.CreatedAt, snapshot.StudentCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("Roster saved to SQLite", "snapshot_id", snapshot.ID, "students", snapshot.StudentCount)
	return nil
}

// ListSnapshots returns the recorded saves, most recent first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, student_count FROM snapshots ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snapshot Snapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.CreatedAt, &snapshot.StudentCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}
