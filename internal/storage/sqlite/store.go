// Package sqlite provides the SQLite-backed user record store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/louisbranch/userdesk/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/userdesk/internal/storage"
	"github.com/louisbranch/userdesk/internal/storage/sqlite/migrations"
	"github.com/louisbranch/userdesk/internal/user"
	_ "modernc.org/sqlite"
)

// Store persists user records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite record store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// InsertUser inserts one record and returns it with the assigned id.
func (s *Store) InsertUser(ctx context.Context, u user.User) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return user.User{}, fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (first_name, last_name) VALUES (?, ?)`,
		u.FirstName,
		u.LastName,
	)
	if err != nil {
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return user.User{}, fmt.Errorf("resolve inserted user id: %w", err)
	}
	u.ID = id
	return u, nil
}

// InsertUserWithID inserts one record under an already-assigned id.
func (s *Store) InsertUserWithID(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if u.ID <= 0 {
		return fmt.Errorf("user id must be positive")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (id, first_name, last_name) VALUES (?, ?, ?)`,
		u.ID,
		u.FirstName,
		u.LastName,
	)
	if err != nil {
		return fmt.Errorf("insert user %d: %w", u.ID, err)
	}
	return nil
}

// UpdateUser overwrites both name fields of the row matching the id.
func (s *Store) UpdateUser(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE users SET first_name = ?, last_name = ? WHERE id = ?`,
		u.FirstName,
		u.LastName,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteUser removes the row matching the id. A missing row is a no-op.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// GetUser returns the row matching the id.
func (s *Store) GetUser(ctx context.Context, id int64) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return user.User{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, first_name, last_name FROM users WHERE id = ?`,
		id,
	)
	var u user.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// ListUsers returns every row ordered by id ascending.
func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, first_name, last_name FROM users ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of stored rows.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int64
	row := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// ResetUserSequence restarts AUTOINCREMENT id assignment at 1.
//
// Only meaningful on an empty table; the seeder calls it before loading the
// fixed dataset so seed ids start at 1.
func (s *Store) ResetUserSequence(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	_, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'users'`)
	if err != nil {
		// sqlite_sequence only exists once the first AUTOINCREMENT insert ran.
		if strings.Contains(strings.ToLower(err.Error()), "no such table") {
			return nil
		}
		return fmt.Errorf("reset user sequence: %w", err)
	}
	return nil
}
