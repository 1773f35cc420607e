// Package viewmodel holds the server-side state of the location screens.
// A view model owns a context created at construction; every task it starts
// derives from it and is cancelled by Close.
package viewmodel

import (
	"context"

	"weather-location-api/internal/models"
)

// SuggestionService interface for dependency injection
type SuggestionService interface {
	GetAddressSuggestions(ctx context.Context, query string, token models.SessionToken) ([]models.Prediction, error)
	GetLocationByPlaceID(ctx context.Context, placeID string) (*models.Location, error)
}

// LocationSaver appends a location to the saved list
type LocationSaver interface {
	SaveLocation(ctx context.Context, loc models.Location) (*models.Location, error)
}

// CurrentLocationWatcher streams the current location
type CurrentLocationWatcher interface {
	WatchCurrentLocation(ctx context.Context) (<-chan *models.Location, error)
}

// AddressResolver turns coordinates into a human readable address
type AddressResolver interface {
	Address(ctx context.Context, c models.Coordinates) (string, error)
}

// boundTo returns a context cancelled when either ctx or owner is done, so a
// subscription ends with the request or with the screen, whichever goes first.
func boundTo(ctx, owner context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(owner, cancel)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx
}
