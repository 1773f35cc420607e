package service

import (
	"context"
	"fmt"
	"strings"

	"weather-location-api/internal/apperr"
	"weather-location-api/internal/models"

	"github.com/rs/zerolog"
)

// DefaultCurrentAlias names a current location nobody could name.
const DefaultCurrentAlias = "Current location"

// LocationService manages the device's current location
type LocationService struct {
	repo     CurrentLocationRepository
	resolver AddressResolver
	log      zerolog.Logger
}

// CurrentLocationRepository interface for dependency injection
type CurrentLocationRepository interface {
	UpdateLocation(ctx context.Context, location models.Location) error
	ClearLocation(ctx context.Context) error
	GetLocation(ctx context.Context) (<-chan *models.Location, error)
}

// AddressResolver turns coordinates into a human readable address
type AddressResolver interface {
	Address(ctx context.Context, c models.Coordinates) (string, error)
}

// NewLocationService creates a new location service; resolver may be nil
func NewLocationService(repo CurrentLocationRepository, resolver AddressResolver, log zerolog.Logger) *LocationService {
	return &LocationService{
		repo:     repo,
		resolver: resolver,
		log:      log.With().Str("component", "location_service").Logger(),
	}
}

// UpdateCurrentLocation stores loc as the current location, naming it after its address when it has no alias
func (s *LocationService) UpdateCurrentLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	if !loc.Coordinates().Valid() {
		return nil, apperr.Validation(fmt.Sprintf("coordinates out of range: %s", loc.Coordinates()))
	}

	loc.Alias = strings.TrimSpace(loc.Alias)
	if loc.Address == "" {
		loc.Address = resolveAddress(ctx, s.resolver, s.log, loc.Coordinates())
	}
	if loc.Alias == "" {
		loc.Alias = loc.Address
	}
	if loc.Alias == "" {
		loc.Alias = DefaultCurrentAlias
	}

	if err := s.repo.UpdateLocation(ctx, loc); err != nil {
		return nil, fmt.Errorf("service: failed to update current location: %w", err)
	}

	s.log.Debug().Str("alias", loc.Alias).Stringer("coordinates", loc.Coordinates()).Msg("current location updated")
	return &loc, nil
}

// CurrentLocation returns the stored current location, or nil when there is none
func (s *LocationService) CurrentLocation(ctx context.Context) (*models.Location, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := s.repo.GetLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to observe current location: %w", err)
	}

	select {
	case loc, ok := <-stream:
		if !ok {
			return nil, fmt.Errorf("service: current location stream closed: %w", ctx.Err())
		}
		return loc, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// WatchCurrentLocation streams the current location until ctx is done
func (s *LocationService) WatchCurrentLocation(ctx context.Context) (<-chan *models.Location, error) {
	stream, err := s.repo.GetLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to observe current location: %w", err)
	}
	return stream, nil
}

// ClearCurrentLocation forgets the current location
func (s *LocationService) ClearCurrentLocation(ctx context.Context) error {
	if err := s.repo.ClearLocation(ctx); err != nil {
		return fmt.Errorf("service: failed to clear current location: %w", err)
	}
	return nil
}

// resolveAddress returns "" when no resolver is configured or the lookup fails.
func resolveAddress(ctx context.Context, resolver AddressResolver, log zerolog.Logger, c models.Coordinates) string {
	if resolver == nil {
		return ""
	}
	address, err := resolver.Address(ctx, c)
	if err != nil {
		log.Warn().Err(err).Stringer("coordinates", c).Msg("reverse geocoding failed")
		return ""
	}
	return address
}
