package service

import (
	"context"
	"strings"

	"weather-location-api/internal/apperr"
	"weather-location-api/internal/models"
)

// SuggestionService looks up address suggestions and resolves them to locations
type SuggestionService struct {
	provider SuggestionProvider
}

// SuggestionProvider interface for dependency injection
type SuggestionProvider interface {
	Suggestions(ctx context.Context, query string, token models.SessionToken) ([]models.Prediction, error)
	Place(ctx context.Context, placeID string) (*models.Location, error)
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(provider SuggestionProvider) *SuggestionService {
	return &SuggestionService{provider: provider}
}

// GetAddressSuggestions returns predictions for query; a blank query yields none without asking the provider
func (s *SuggestionService) GetAddressSuggestions(ctx context.Context, query string, token models.SessionToken) ([]models.Prediction, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Prediction{}, nil
	}

	predictions, err := s.provider.Suggestions(ctx, query, token)
	if err != nil {
		return nil, apperr.Unavailable("address suggestions unavailable", err)
	}

	return predictions, nil
}

// GetLocationByPlaceID resolves a prediction's place id to a full location
func (s *SuggestionService) GetLocationByPlaceID(ctx context.Context, placeID string) (*models.Location, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, apperr.Validation("place id cannot be empty")
	}

	location, err := s.provider.Place(ctx, placeID)
	if err != nil {
		return nil, apperr.Unavailable("place lookup unavailable", err)
	}

	return location, nil
}
