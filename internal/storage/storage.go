// Package storage defines the persistence contract for the user record store.
package storage

import (
	"context"

	apperrors "github.com/louisbranch/userdesk/internal/platform/errors"
	"github.com/louisbranch/userdesk/internal/user"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// RecordStore persists the authoritative user records.
//
// Deletion is idempotent: removing a missing id is a no-op, never ErrNotFound.
type RecordStore interface {
	// InsertUser stores a new record and returns it with the assigned id.
	InsertUser(ctx context.Context, u user.User) (user.User, error)
	// InsertUserWithID stores a record under an already-assigned id. Seed path only.
	InsertUserWithID(ctx context.Context, u user.User) error
	// UpdateUser overwrites both name fields of the row matching the id.
	UpdateUser(ctx context.Context, u user.User) error
	// DeleteUser removes the row matching the id when present.
	DeleteUser(ctx context.Context, id int64) error
	// GetUser returns the row matching the id.
	GetUser(ctx context.Context, id int64) (user.User, error)
	// ListUsers returns every row ordered by id ascending.
	ListUsers(ctx context.Context) ([]user.User, error)
	// CountUsers returns the number of stored rows.
	CountUsers(ctx context.Context) (int64, error)
	// ResetUserSequence restarts id assignment at 1 for an empty table.
	ResetUserSequence(ctx context.Context) error
}
