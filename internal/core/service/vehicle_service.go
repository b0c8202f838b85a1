package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/locauto/rental-system/internal/api/metrics"
	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

const (
	defaultDailyRate = 1500
	vehicleCacheTTL  = 5 * time.Minute
)

// VehicleCache abstracts the read-through cache (Redis) in front of single
// vehicle lookups.
type VehicleCache interface {
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	Set(ctx context.Context, v *domain.Vehicle, ttl time.Duration) error
	Invalidate(ctx context.Context, id string) error
}

// VehicleService implements fleet management. Reads go through the cache;
// writes invalidate it.
type VehicleService struct {
	repo  ports.VehicleRepository
	cache VehicleCache
	log   zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, cache VehicleCache, log zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, cache: cache, log: log}
}

func (s *VehicleService) Create(ctx context.Context, in ports.CreateVehicleInput) (*domain.Vehicle, error) {
	if in.Make == "" || in.Model == "" || in.Registration == "" {
		return nil, domain.ErrMissingVehicle
	}

	now := time.Now().UTC()
	year := in.Year
	if year == 0 {
		year = now.Year()
	}
	rate := in.DailyRate
	if rate == 0 {
		rate = defaultDailyRate
	}

	vehicle, err := s.repo.Create(ctx, &domain.Vehicle{
		Make:         in.Make,
		Model:        in.Model,
		Registration: in.Registration,
		Year:         year,
		DailyRate:    rate,
		Available:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("vehicle_id", vehicle.ID).Str("registration", vehicle.Registration).Msg("vehicle created")
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			// Cache trouble never fails the read; fall through to the store.
			s.log.Warn().Err(err).Str("vehicle_id", id).Msg("vehicle cache lookup failed")
		} else if cached != nil {
			metrics.VehicleCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.VehicleCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, vehicle, vehicleCacheTTL); err != nil {
			s.log.Warn().Err(err).Str("vehicle_id", id).Msg("vehicle cache store failed")
		}
	}
	return vehicle, nil
}

func (s *VehicleService) GetByRegistration(ctx context.Context, registration string) (*domain.Vehicle, error) {
	return s.repo.FindByRegistration(ctx, registration)
}

func (s *VehicleService) ListByMaxRate(ctx context.Context, max float64) ([]*domain.Vehicle, error) {
	return s.repo.ListByMaxRate(ctx, max)
}

func (s *VehicleService) Update(ctx context.Context, id string, fields ports.UpdateVehicleFields) (*domain.Vehicle, error) {
	vehicle, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.log.Info().Str("vehicle_id", id).Msg("vehicle updated")
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info().Str("vehicle_id", id).Msg("vehicle deleted")
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("vehicle_id", id).Msg("vehicle cache invalidation failed")
	}
}
