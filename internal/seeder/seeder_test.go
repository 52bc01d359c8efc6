package seeder

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/userdesk/internal/mirror"
	"github.com/louisbranch/userdesk/internal/storage/sqlite"
	"github.com/louisbranch/userdesk/internal/syncsvc"
	"github.com/louisbranch/userdesk/internal/user"
)

func TestRunSeedsBothStores(t *testing.T) {
	t.Parallel()

	records, svc := openTempStores(t)
	seeder, err := New(records, svc, nil)
	if err != nil {
		t.Fatalf("new seeder: %v", err)
	}

	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("run seeder: %v", err)
	}

	count, err := records.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 24 {
		t.Fatalf("record count = %d, want 24", count)
	}

	mirrored, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(mirrored) != 24 {
		t.Fatalf("mirror count = %d, want 24", len(mirrored))
	}
	if mirrored[0].ID != 1 || mirrored[0].LastName != "Novotná" {
		t.Fatalf("mirrored[0] = %+v, want Irena Novotná with id 1", mirrored[0])
	}
	if mirrored[23].ID != 24 || mirrored[23].LastName != "Fiala" {
		t.Fatalf("mirrored[23] = %+v, want Zdeněk Fiala with id 24", mirrored[23])
	}
}

func TestRunSkipsPopulatedStore(t *testing.T) {
	t.Parallel()

	records, svc := openTempStores(t)
	existing, err := svc.Create(context.Background(), user.User{FirstName: "Pavel", LastName: "Krátký"})
	if err != nil {
		t.Fatalf("create existing record: %v", err)
	}

	seeder, err := New(records, svc, nil)
	if err != nil {
		t.Fatalf("new seeder: %v", err)
	}
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("run seeder on populated store: %v", err)
	}

	count, err := records.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("record count = %d, want the pre-existing record only", count)
	}
	got, err := records.GetUser(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("get existing record: %v", err)
	}
	if got.LastName != "Krátký" {
		t.Fatalf("existing record = %+v", got)
	}
}

func TestRunTwiceSeedsOnce(t *testing.T) {
	t.Parallel()

	records, svc := openTempStores(t)
	seeder, err := New(records, svc, nil)
	if err != nil {
		t.Fatalf("new seeder: %v", err)
	}

	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	count, err := records.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 24 {
		t.Fatalf("record count = %d, want 24 after repeated runs", count)
	}
}

func TestRunProvisionsAdminThroughProvider(t *testing.T) {
	t.Parallel()

	records, svc := openTempStores(t)
	provider := &recordingProvider{memberships: map[string]string{}, roles: map[string]bool{}}
	seeder, err := New(records, svc, provider)
	if err != nil {
		t.Fatalf("new seeder: %v", err)
	}
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("run seeder: %v", err)
	}

	if !provider.roles["admin"] {
		t.Fatal("admin role was not ensured")
	}
	if provider.memberships["admin"] != "admin" {
		t.Fatal("default admin account does not hold the admin role")
	}
}

func TestDatasetIDsAreSequential(t *testing.T) {
	t.Parallel()

	users := Dataset()
	if len(users) != 24 {
		t.Fatalf("dataset len = %d, want 24", len(users))
	}
	for i, u := range users {
		if u.ID != int64(i+1) {
			t.Fatalf("dataset[%d].ID = %d, want %d", i, u.ID, i+1)
		}
		if u.FirstName == "" || u.LastName == "" {
			t.Fatalf("dataset[%d] has empty name: %+v", i, u)
		}
	}
}

type recordingProvider struct {
	roles       map[string]bool
	memberships map[string]string
}

func (p *recordingProvider) Authenticate(context.Context, string, string) error { return nil }

func (p *recordingProvider) CreateAccount(context.Context, string, string) error { return nil }

func (p *recordingProvider) IsInRole(_ context.Context, username, role string) (bool, error) {
	return p.memberships[username] == role, nil
}

func (p *recordingProvider) EnsureRole(_ context.Context, role string) error {
	p.roles[role] = true
	return nil
}

func (p *recordingProvider) GrantRole(_ context.Context, username, role string) error {
	p.memberships[username] = role
	return nil
}

func openTempStores(t *testing.T) (*sqlite.Store, *syncsvc.Service) {
	t.Helper()

	records, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("open record store: %v", err)
	}
	t.Cleanup(func() {
		if err := records.Close(); err != nil {
			t.Fatalf("close record store: %v", err)
		}
	})

	mirrorStore, err := mirror.NewStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("new mirror store: %v", err)
	}
	svc, err := syncsvc.New(records, mirrorStore)
	if err != nil {
		t.Fatalf("new sync service: %v", err)
	}
	return records, svc
}
