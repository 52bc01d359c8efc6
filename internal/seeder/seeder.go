// Package seeder bootstraps empty stores with the fixed initial dataset and
// provisions the administrative account through the identity provider.
package seeder

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/userdesk/internal/identity"
	"github.com/louisbranch/userdesk/internal/storage"
	"github.com/louisbranch/userdesk/internal/user"
)

// MirrorSeeder persists a known collection into the mirror, bypassing the
// per-record create path.
type MirrorSeeder interface {
	SeedMirror(ctx context.Context, users []user.User) error
}

// Seeder populates both stores once, at process start.
type Seeder struct {
	records  storage.RecordStore
	mirror   MirrorSeeder
	provider identity.Provider
}

// New creates a seeder. The identity provider may be nil; admin provisioning
// is then skipped.
func New(records storage.RecordStore, mirror MirrorSeeder, provider identity.Provider) (*Seeder, error) {
	if records == nil {
		return nil, fmt.Errorf("record store is required")
	}
	if mirror == nil {
		return nil, fmt.Errorf("mirror seeder is required")
	}
	return &Seeder{records: records, mirror: mirror, provider: provider}, nil
}

// Run seeds empty stores with the fixed dataset. A non-empty record store
// makes the whole run a no-op, so restarts are safe.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.records.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("check existing records: %w", err)
	}
	if count > 0 {
		return s.ensureAdmin(ctx)
	}

	if err := s.records.ResetUserSequence(ctx); err != nil {
		return fmt.Errorf("reset id sequence: %w", err)
	}

	users := Dataset()
	for _, u := range users {
		if err := s.records.InsertUserWithID(ctx, u); err != nil {
			return fmt.Errorf("seed record %d: %w", u.ID, err)
		}
	}
	if err := s.mirror.SeedMirror(ctx, users); err != nil {
		return fmt.Errorf("seed mirror: %w", err)
	}
	log.Printf("seeded %d user records", len(users))

	return s.ensureAdmin(ctx)
}

func (s *Seeder) ensureAdmin(ctx context.Context) error {
	if s.provider == nil {
		log.Print("no identity provider configured, skipping admin provisioning")
		return nil
	}
	if err := identity.EnsureAdmin(ctx, s.provider); err != nil {
		return fmt.Errorf("provision admin account: %w", err)
	}
	return nil
}

// Dataset returns the fixed initial records with their assigned ids.
func Dataset() []user.User {
	names := []struct{ first, last string }{
		{"Irena", "Novotná"},
		{"Libor", "Veselý"},
		{"Jitka", "Svobodná"},
		{"David", "Opletal"},
		{"Michaela", "Vyskočilová"},
		{"Radim", "Procházka"},
		{"Eva", "Králová"},
		{"Jan", "Dvořák"},
		{"Lenka", "Malá"},
		{"Tomáš", "Švec"},
		{"Petra", "Horáková"},
		{"Marek", "Kučera"},
		{"Alena", "Nováková"},
		{"Petr", "Jelínek"},
		{"Hana", "Benešová"},
		{"Jakub", "Mach"},
		{"Lucie", "Holubová"},
		{"Karel", "Růžička"},
		{"Tereza", "Vlčková"},
		{"Jiří", "Černý"},
		{"Klára", "Kolářová"},
		{"Martin", "Navrátil"},
		{"Veronika", "Zemanová"},
		{"Zdeněk", "Fiala"},
	}
	users := make([]user.User, len(names))
	for i, n := range names {
		users[i] = user.User{ID: int64(i + 1), FirstName: n.first, LastName: n.last}
	}
	return users
}
