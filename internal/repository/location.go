package repository

import (
	"context"

	"weather-location-api/internal/datastore"
	"weather-location-api/internal/mapper"
	"weather-location-api/internal/models"
)

// LocationRepository exposes the current location held by a DataStore in its domain form.
type LocationRepository struct {
	store datastore.LocationDataStore
}

// NewLocationRepository creates a repository over the given store
func NewLocationRepository(store datastore.LocationDataStore) *LocationRepository {
	return &LocationRepository{store: store}
}

// UpdateLocation stores location as the current location. Store errors are returned unchanged.
func (r *LocationRepository) UpdateLocation(ctx context.Context, location models.Location) error {
	return r.store.UpdateLocation(ctx, mapper.ToDTO(location))
}

// ClearLocation removes the current location.
func (r *LocationRepository) ClearLocation(ctx context.Context) error {
	return r.store.ClearLocation(ctx)
}

// GetLocation streams the current location, nil while none is stored. The channel closes when ctx is done.
func (r *LocationRepository) GetLocation(ctx context.Context) (<-chan *models.Location, error) {
	in, err := r.store.Location(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan *models.Location)
	go func() {
		defer close(out)
		for dto := range in {
			select {
			case out <- mapper.ToModel(dto):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
