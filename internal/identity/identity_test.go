package identity

import (
	"context"
	"errors"
	"testing"
)

type fakeProvider struct {
	roles       map[string]bool
	memberships map[string]string
	rolesFailed error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{roles: map[string]bool{}, memberships: map[string]string{}}
}

func (f *fakeProvider) Authenticate(context.Context, string, string) error { return nil }

func (f *fakeProvider) CreateAccount(context.Context, string, string) error { return nil }

func (f *fakeProvider) IsInRole(_ context.Context, username, role string) (bool, error) {
	return f.memberships[username] == role, nil
}

func (f *fakeProvider) EnsureRole(_ context.Context, role string) error {
	if f.rolesFailed != nil {
		return f.rolesFailed
	}
	f.roles[role] = true
	return nil
}

func (f *fakeProvider) GrantRole(_ context.Context, username, role string) error {
	f.memberships[username] = role
	return nil
}

func TestEnsureAdminProvisionsRoleAndAccount(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	if err := EnsureAdmin(context.Background(), provider); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if !provider.roles[RoleAdmin] {
		t.Fatal("admin role was not ensured")
	}
	if provider.memberships[DefaultAdminUsername] != RoleAdmin {
		t.Fatal("default admin account does not hold the admin role")
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	if err := EnsureAdmin(context.Background(), provider); err != nil {
		t.Fatalf("first ensure admin: %v", err)
	}
	if err := EnsureAdmin(context.Background(), provider); err != nil {
		t.Fatalf("second ensure admin: %v", err)
	}
}

func TestEnsureAdminPropagatesProviderFailure(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.rolesFailed = errors.New("role store unavailable")
	if err := EnsureAdmin(context.Background(), provider); err == nil {
		t.Fatal("expected provider failure to propagate")
	}
}
