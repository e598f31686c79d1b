package project

import "context"

// Repository is the read contract against the external project directory.
type Repository interface {
	// GetByID resolves a project by identity. Returns ErrProjectNotFound when
	// the project no longer exists.
	GetByID(ctx context.Context, id string) (Project, error)
}
