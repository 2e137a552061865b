// Package storage provides abstractions for persisting the roster between runs.
package storage

import (
	"context"

	"github.com/mmynk/roster/internal/models"
)

// Store defines the interface for roster persistence.
// The roster is always loaded and saved as a whole; there are no incremental
// writes. This abstraction allows swapping the flat file for SQLite without
// changing the service layer.
type Store interface {
	// Load returns every persisted student in saved order.
	// A store that does not exist yet yields an empty slice, not an error.
	Load(ctx context.Context) ([]*models.Student, error)

	// Save replaces the persisted roster with students, in order.
	Save(ctx context.Context, students []*models.Student) error

	// Close releases any resources held by the store.
	Close() error
}
