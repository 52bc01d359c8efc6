// Package mirror persists the denormalized JSON copy of user records.
//
// The mirror is a rebuildable cache keyed by id. The whole collection is
// written as one pretty-printed JSON array by whole-file overwrite; there is
// no partial-write protection, so a crash mid-write can corrupt the file.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/louisbranch/userdesk/internal/platform/errors"
	"github.com/louisbranch/userdesk/internal/user"
)

// Store reads and writes one mirror snapshot file.
type Store struct {
	path string
}

// NewStore creates a mirror store bound to the given file path.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("mirror path is required")
	}
	return &Store{path: filepath.Clean(path)}, nil
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Exists reports whether the snapshot file has ever been written.
func (s *Store) Exists() bool {
	if s == nil {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// Load parses the persisted snapshot. A missing file yields an empty
// collection, not an error. Every call re-reads durable state.
func (s *Store) Load(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("mirror store is not configured")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []user.User{}, nil
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, "read mirror snapshot", err)
	}

	var users []user.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, "decode mirror snapshot", err)
	}
	if users == nil {
		users = []user.User{}
	}
	return users, nil
}

// Save overwrites the snapshot with the given collection.
func (s *Store) Save(ctx context.Context, users []user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("mirror store is not configured")
	}
	if users == nil {
		users = []user.User{}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("create mirror directory %s: %v", dir, err)
			return apperrors.Wrap(apperrors.CodePersistence, "create mirror directory", err)
		}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.CodePersistence, "encode mirror snapshot", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("write mirror snapshot %s: %v", s.path, err)
		return apperrors.Wrap(apperrors.CodePersistence, "write mirror snapshot", err)
	}
	return nil
}
