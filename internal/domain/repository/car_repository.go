package repository

import (
	"context"

	"github.com/motorline/dealership-backend/internal/domain/entity"
)

// StatusPatch carries the optional fields of a partial status update.
// Nil fields are left untouched.
type StatusPatch struct {
	Status   *entity.CarStatus
	Featured *bool
}

// CarRepository defines the interface for catalog database operations.
type CarRepository interface {
	Create(ctx context.Context, c *entity.Car) error
	GetByID(ctx context.Context, id string) (*entity.Car, error)
	// List returns cars newest first. A non-empty search term filters with a
	// case-insensitive substring match over make, model and color (OR).
	List(ctx context.Context, search string) ([]entity.Car, error)
	// ListFeatured returns up to limit featured AVAILABLE cars, newest first.
	ListFeatured(ctx context.Context, limit int) ([]entity.Car, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, patch StatusPatch) error
}
