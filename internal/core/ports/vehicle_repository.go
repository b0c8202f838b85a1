package ports

import (
	"context"

	"github.com/locauto/rental-system/internal/core/domain"
)

// UpdateVehicleFields carries the mutable vehicle fields for a partial
// update. Nil pointers mean "leave unchanged".
type UpdateVehicleFields struct {
	Make         *string
	Model        *string
	Registration *string
	Year         *int
	DailyRate    *float64
	Available    *bool
}

// VehicleRepository defines persistence for the fleet.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByRegistration(ctx context.Context, registration string) (*domain.Vehicle, error)
	// ListAvailable returns vehicles currently offered for rental.
	ListAvailable(ctx context.Context) ([]*domain.Vehicle, error)
	// ListByMaxRate returns available vehicles with a daily rate at or below max.
	ListByMaxRate(ctx context.Context, max float64) ([]*domain.Vehicle, error)
	Update(ctx context.Context, id string, fields UpdateVehicleFields) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}
