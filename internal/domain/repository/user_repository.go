package repository

import (
	"context"

	"github.com/motorline/dealership-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]entity.User, error)
	// UpdateRole overwrites the role of the user identified by id.
	UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error)
}
