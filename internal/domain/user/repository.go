package user

import "context"

// Repository is the read contract against the external user directory.
type Repository interface {
	// GetByID resolves a user by identity. Returns ErrUserNotFound when the
	// user no longer exists.
	GetByID(ctx context.Context, id string) (User, error)
}

// RoleResolver resolves the authorization view of a user. Consumed once per
// operation so the dependency boundary stays in one place.
type RoleResolver interface {
	GetRoleInfo(ctx context.Context, userID string) (RoleInfo, error)
}
