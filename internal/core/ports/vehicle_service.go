package ports

import (
	"context"

	"github.com/locauto/rental-system/internal/core/domain"
)

// CreateVehicleInput carries the fields for adding a vehicle to the fleet.
// Year and DailyRate are optional; the service applies fleet defaults.
type CreateVehicleInput struct {
	Make         string
	Model        string
	Registration string
	Year         int
	DailyRate    float64
}

// VehicleService implements fleet management and search.
type VehicleService interface {
	Create(ctx context.Context, in CreateVehicleInput) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByRegistration(ctx context.Context, registration string) (*domain.Vehicle, error)
	ListByMaxRate(ctx context.Context, max float64) ([]*domain.Vehicle, error)
	Update(ctx context.Context, id string, fields UpdateVehicleFields) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}
