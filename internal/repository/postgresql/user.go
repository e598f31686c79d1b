package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
	"github.com/workhive-crm/crm-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

func NewRoleResolver(db *database.DB) user.RoleResolver {
	return &userRepository{db: db}
}

// GetByID implements user.Repository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetRoleInfo implements user.RoleResolver. Role flags come from the user
// directory maintained by the account collaborator.
func (r *userRepository) GetRoleInfo(ctx context.Context, userID string) (user.RoleInfo, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT role, is_project_manager
		FROM users
		WHERE id = $1
	`

	var (
		role             string
		isProjectManager bool
	)
	err := q.QueryRow(ctx, query, userID).Scan(&role, &isProjectManager)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.RoleInfo{}, user.ErrUserNotFound
		}
		return user.RoleInfo{}, fmt.Errorf("failed to get role info: %w", err)
	}

	ur := user.Role(role)
	return user.RoleInfo{
		IsManagerOrFounder: ur.IsManager() || ur.IsFounder(),
		IsFounder:          ur.IsFounder(),
		IsProjectManager:   isProjectManager,
	}, nil
}
