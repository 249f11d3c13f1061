package repository

import (
	"context"

	"github.com/motorline/dealership-backend/internal/domain/entity"
)

// DealershipRepository defines the interface for the singleton settings
// record and its working hours.
type DealershipRepository interface {
	// Get returns the singleton with its hours ordered by day-of-week
	// ascending, or a not-found error when no row exists yet.
	Get(ctx context.Context) (*entity.DealershipInfo, error)
	// Create inserts the singleton together with the given hours.
	Create(ctx context.Context, info *entity.DealershipInfo, hours []entity.WorkingHour) (*entity.DealershipInfo, error)
	// ReplaceWorkingHours deletes every hours row of the dealership and
	// inserts the provided set, all inside one transaction.
	ReplaceWorkingHours(ctx context.Context, dealershipID string, hours []entity.WorkingHour) error
}
