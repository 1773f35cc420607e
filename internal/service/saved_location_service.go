package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weather-location-api/internal/apperr"
	"weather-location-api/internal/models"
	"weather-location-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DuplicateRadiusMeters is how close an unnamed point must be to a saved one to count as the same place.
const DuplicateRadiusMeters = 25

// SavedLocationService contains the business logic for the saved locations list
type SavedLocationService struct {
	repo SavedLocationRepository
	log  zerolog.Logger
}

// SavedLocationRepository interface for dependency injection
type SavedLocationRepository interface {
	ListSavedLocations(ctx context.Context) ([]models.Location, error)
	FindSavedLocation(ctx context.Context, id string) (*models.Location, error)
	FindSavedLocationByPlaceID(ctx context.Context, placeID string) (*models.Location, error)
	FindNearestSavedLocation(ctx context.Context, lat, lon, radiusMeters float64) (*models.Location, error)
	InsertSavedLocation(ctx context.Context, loc models.Location) error
	RenameSavedLocation(ctx context.Context, id, alias string) (*models.Location, error)
	DeleteSavedLocation(ctx context.Context, id string) error
}

// NewSavedLocationService creates a new saved location service
func NewSavedLocationService(repo SavedLocationRepository, log zerolog.Logger) *SavedLocationService {
	return &SavedLocationService{
		repo: repo,
		log:  log.With().Str("component", "saved_location_service").Logger(),
	}
}

// ListLocations returns every saved location
func (s *SavedLocationService) ListLocations(ctx context.Context) ([]models.Location, error) {
	locations, err := s.repo.ListSavedLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list saved locations: %w", err)
	}
	return locations, nil
}

// GetLocation returns the saved location id
func (s *SavedLocationService) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	loc, err := s.repo.FindSavedLocation(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("saved location not found")
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to find saved location: %w", err)
	}
	return loc, nil
}

// SaveLocation appends loc to the saved list. A location with the same place id,
// or without a place id but within DuplicateRadiusMeters of a saved one, is not
// stored twice: the existing entry is returned instead.
func (s *SavedLocationService) SaveLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	if !loc.Coordinates().Valid() {
		return nil, apperr.Validation(fmt.Sprintf("coordinates out of range: %s", loc.Coordinates()))
	}

	loc.Alias = strings.TrimSpace(loc.Alias)
	if loc.Alias == "" {
		loc.Alias = strings.TrimSpace(loc.DisplayName())
	}
	if loc.Alias == "" {
		return nil, apperr.Validation("location alias cannot be empty")
	}

	existing, err := s.findDuplicate(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("service: failed to check for duplicates: %w", err)
	}
	if existing != nil {
		s.log.Debug().Str("id", existing.ID).Msg("location already saved")
		return existing, nil
	}

	loc.ID = uuid.NewString()
	err = s.repo.InsertSavedLocation(ctx, loc)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperr.Conflict("location already saved").WithOp("save")
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to save location: %w", err)
	}

	s.log.Info().Str("id", loc.ID).Str("alias", loc.Alias).Msg("location saved")
	return &loc, nil
}

// RenameLocation changes the alias of a saved location
func (s *SavedLocationService) RenameLocation(ctx context.Context, id, alias string) (*models.Location, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil, apperr.Validation("location alias cannot be empty")
	}

	loc, err := s.repo.RenameSavedLocation(ctx, id, alias)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("saved location not found").WithOp("rename")
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to rename saved location: %w", err)
	}
	return loc, nil
}

// DeleteLocation removes a saved location
func (s *SavedLocationService) DeleteLocation(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	err := s.repo.DeleteSavedLocation(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("saved location not found").WithOp("delete")
	}
	if err != nil {
		return fmt.Errorf("service: failed to delete saved location: %w", err)
	}

	s.log.Info().Str("id", id).Msg("location deleted")
	return nil
}

func (s *SavedLocationService) findDuplicate(ctx context.Context, loc models.Location) (*models.Location, error) {
	var (
		existing *models.Location
		err      error
	)
	if loc.PlaceID != "" {
		existing, err = s.repo.FindSavedLocationByPlaceID(ctx, loc.PlaceID)
	} else {
		existing, err = s.repo.FindNearestSavedLocation(ctx, loc.Latitude, loc.Longitude, DuplicateRadiusMeters)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return existing, err
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid location id %q", id))
	}
	return nil
}
