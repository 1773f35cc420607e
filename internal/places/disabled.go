package places

import (
	"context"
	"errors"

	"weather-location-api/internal/models"
)

// ErrNotConfigured is returned by Disabled for every query.
var ErrNotConfigured = errors.New("places: provider not configured")

// Disabled stands in for the provider when no API key is configured.
type Disabled struct{}

func (Disabled) Suggestions(context.Context, string, models.SessionToken) ([]models.Prediction, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Place(context.Context, string) (*models.Location, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Address(context.Context, models.Coordinates) (string, error) {
	return "", ErrNotConfigured
}
