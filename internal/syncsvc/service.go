// Package syncsvc mediates every user mutation across the record store and
// the JSON mirror.
//
// The record store is the source of truth; the mirror is a dependent,
// rebuildable copy serving by-id reads. Mutations write the record store
// first and then reconcile the mirror. A mirror failure after a successful
// record write leaves the record store ahead; the error is logged and
// returned, never rolled back.
package syncsvc

import (
	"context"
	"errors"
	"fmt"
	"log"

	apperrors "github.com/louisbranch/userdesk/internal/platform/errors"
	"github.com/louisbranch/userdesk/internal/storage"
	"github.com/louisbranch/userdesk/internal/user"
)

// MirrorStore persists the denormalized snapshot of user records.
type MirrorStore interface {
	Load(ctx context.Context) ([]user.User, error)
	Save(ctx context.Context, users []user.User) error
	Exists() bool
}

// Service keeps the mirror consistent with the record store.
type Service struct {
	records storage.RecordStore
	mirror  MirrorStore
}

// New creates a sync service over the given stores.
func New(records storage.RecordStore, mirror MirrorStore) (*Service, error) {
	if records == nil {
		return nil, fmt.Errorf("record store is required")
	}
	if mirror == nil {
		return nil, fmt.Errorf("mirror store is required")
	}
	return &Service{records: records, mirror: mirror}, nil
}

// Create validates and inserts a new record into the record store, then
// appends the stored record (with its assigned id) to the mirror snapshot.
func (s *Service) Create(ctx context.Context, u user.User) (user.User, error) {
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}

	stored, err := s.records.InsertUser(ctx, u)
	if err != nil {
		return user.User{}, apperrors.Wrap(apperrors.CodePersistence, "insert user record", err)
	}

	snapshot, err := s.mirror.Load(ctx)
	if err != nil {
		log.Printf("mirror load after insert of user %d failed, stores diverged: %v", stored.ID, err)
		return user.User{}, err
	}
	snapshot = append(snapshot, stored)
	if err := s.mirror.Save(ctx, snapshot); err != nil {
		log.Printf("mirror save after insert of user %d failed, stores diverged: %v", stored.ID, err)
		return user.User{}, err
	}
	return stored, nil
}

// Update overwrites both name fields of the record matching the id in the
// record store and in the mirror snapshot.
//
// When the mirror holds no entry for the id, the mirror write is silently
// skipped while the record store update stands.
func (s *Service) Update(ctx context.Context, u user.User) error {
	if err := u.ValidateStored(); err != nil {
		return err
	}

	if err := s.records.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return apperrors.Wrap(apperrors.CodePersistence, "update user record", err)
	}

	snapshot, err := s.mirror.Load(ctx)
	if err != nil {
		return err
	}
	for i := range snapshot {
		if snapshot[i].ID != u.ID {
			continue
		}
		snapshot[i].FirstName = u.FirstName
		snapshot[i].LastName = u.LastName
		return s.mirror.Save(ctx, snapshot)
	}
	return nil
}

// Delete removes the record matching the id from the mirror snapshot and the
// record store. Both removals are independently idempotent; a missing id is a
// no-op, never a not-found error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	snapshot, err := s.mirror.Load(ctx)
	if err != nil {
		return err
	}
	kept := snapshot[:0]
	for _, entry := range snapshot {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	if len(kept) != len(snapshot) {
		if err := s.mirror.Save(ctx, kept); err != nil {
			return err
		}
	}

	if err := s.records.DeleteUser(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodePersistence, "delete user record", err)
	}
	return nil
}

// GetAll returns the full mirror snapshot, re-read from durable storage.
func (s *Service) GetAll(ctx context.Context) ([]user.User, error) {
	return s.mirror.Load(ctx)
}

// Get returns the mirror entry matching the id.
func (s *Service) Get(ctx context.Context, id int64) (user.User, error) {
	snapshot, err := s.mirror.Load(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, entry := range snapshot {
		if entry.ID == id {
			return entry, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

// InitializeMirror bulk-loads all record store rows into the mirror when the
// snapshot file has never been written. Run once at process start.
func (s *Service) InitializeMirror(ctx context.Context) error {
	if s.mirror.Exists() {
		return nil
	}
	users, err := s.records.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users for mirror init: %w", err)
	}
	return s.mirror.Save(ctx, users)
}

// SeedMirror persists an exact collection whose ids are already assigned,
// bypassing the per-record create path. Seeder use only.
func (s *Service) SeedMirror(ctx context.Context, users []user.User) error {
	return s.mirror.Save(ctx, users)
}
