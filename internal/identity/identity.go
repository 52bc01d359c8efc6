// Package identity defines the external identity provider consumed by the
// core. Password hashing, session issuance, and role storage live behind
// this interface and are never implemented here.
package identity

import "context"

// RoleAdmin is the role that guards create, edit, and delete operations.
const RoleAdmin = "admin"

// DefaultAdminUsername is the account provisioned at bootstrap.
const DefaultAdminUsername = "admin"

// Provider is the injected identity capability.
type Provider interface {
	// Authenticate verifies credentials. Failures return an error; the core
	// never inspects passwords.
	Authenticate(ctx context.Context, username, password string) error
	// CreateAccount registers a new account. Validation failures surface as
	// field-level errors from the provider.
	CreateAccount(ctx context.Context, username, password string) error
	// IsInRole reports whether the account holds the role.
	IsInRole(ctx context.Context, username, role string) (bool, error)
	// EnsureRole creates the role when it does not exist.
	EnsureRole(ctx context.Context, role string) error
	// GrantRole assigns the role to the account.
	GrantRole(ctx context.Context, username, role string) error
}

// EnsureAdmin provisions the administrative role and grants it to the default
// administrative account. The whole flow is delegated to the provider.
func EnsureAdmin(ctx context.Context, provider Provider) error {
	if err := provider.EnsureRole(ctx, RoleAdmin); err != nil {
		return err
	}
	held, err := provider.IsInRole(ctx, DefaultAdminUsername, RoleAdmin)
	if err != nil {
		return err
	}
	if held {
		return nil
	}
	return provider.GrantRole(ctx, DefaultAdminUsername, RoleAdmin)
}
