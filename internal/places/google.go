// Package places adapts the Google Maps Platform client to the suggestion
// and geocoding needs of the location services.
package places

import (
	"context"
	"errors"
	"fmt"

	"weather-location-api/internal/mapper"
	"weather-location-api/internal/models"

	"googlemaps.github.io/maps"
)

// ErrNoResult is returned when the provider knows nothing about the request.
var ErrNoResult = errors.New("places: no result")

// MapsClient is the subset of *maps.Client the provider uses.
type MapsClient interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

var detailsFields = []maps.PlaceDetailsFieldMask{
	maps.PlaceDetailsFieldMaskPlaceID,
	maps.PlaceDetailsFieldMaskName,
	maps.PlaceDetailsFieldMaskFormattedAddress,
	maps.PlaceDetailsFieldMaskGeometryLocation,
}

// GoogleProvider answers suggestion, place and reverse-geocoding queries.
type GoogleProvider struct {
	client   MapsClient
	language string
}

// NewGoogleClient creates a maps client authenticated with apiKey.
func NewGoogleClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("places: failed to create maps client: %w", err)
	}
	return client, nil
}

// NewGoogleProvider creates a provider; language may be empty.
func NewGoogleProvider(client MapsClient, language string) *GoogleProvider {
	return &GoogleProvider{client: client, language: language}
}

// Suggestions returns autocomplete predictions for query within the token's session.
func (p *GoogleProvider) Suggestions(ctx context.Context, query string, token models.SessionToken) ([]models.Prediction, error) {
	resp, err := p.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input:        query,
		Language:     p.language,
		SessionToken: maps.PlaceAutocompleteSessionToken(token),
	})
	if err != nil {
		return nil, fmt.Errorf("places: autocomplete failed: %w", err)
	}

	predictions := make([]models.Prediction, 0, len(resp.Predictions))
	for _, pr := range resp.Predictions {
		predictions = append(predictions, models.Prediction{
			PlaceID:       pr.PlaceID,
			Description:   pr.Description,
			PrimaryText:   pr.StructuredFormatting.MainText,
			SecondaryText: pr.StructuredFormatting.SecondaryText,
		})
	}
	return predictions, nil
}

// Place resolves a place id to a location named after the place.
func (p *GoogleProvider) Place(ctx context.Context, placeID string) (*models.Location, error) {
	result, err := p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: p.language,
		Fields:   detailsFields,
	})
	if err != nil {
		return nil, fmt.Errorf("places: details failed: %w", err)
	}

	coords := mapper.CoordinatesFromLatLng(result.Geometry.Location)
	id := result.PlaceID
	if id == "" {
		id = placeID
	}
	return &models.Location{
		Alias:     result.Name,
		Address:   result.FormattedAddress,
		PlaceID:   id,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}, nil
}

// Address returns the best formatted address for the coordinates.
func (p *GoogleProvider) Address(ctx context.Context, c models.Coordinates) (string, error) {
	latLng := mapper.ToLatLng(c)
	results, err := p.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &latLng,
		Language: p.language,
	})
	if err != nil {
		return "", fmt.Errorf("places: reverse geocode failed: %w", err)
	}
	if len(results) == 0 || results[0].FormattedAddress == "" {
		return "", ErrNoResult
	}
	return results[0].FormattedAddress, nil
}
