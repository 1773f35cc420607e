package viewmodel

import (
	"context"

	"weather-location-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockSuggestionService is a mock implementation of the SuggestionService interface
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) GetAddressSuggestions(ctx context.Context, query string, token models.SessionToken) ([]models.Prediction, error) {
	args := m.Called(ctx, query, token)
	return args.Get(0).([]models.Prediction), args.Error(1)
}

func (m *MockSuggestionService) GetLocationByPlaceID(ctx context.Context, placeID string) (*models.Location, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(*models.Location), args.Error(1)
}

// MockLocationSaver is a mock implementation of the LocationSaver interface
type MockLocationSaver struct {
	mock.Mock
}

func (m *MockLocationSaver) SaveLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	args := m.Called(ctx, loc)
	return args.Get(0).(*models.Location), args.Error(1)
}

// MockAddressResolver is a mock implementation of the AddressResolver interface
type MockAddressResolver struct {
	mock.Mock
}

func (m *MockAddressResolver) Address(ctx context.Context, c models.Coordinates) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

// MockCurrentLocationService is a mock implementation of the CurrentLocationService interface
type MockCurrentLocationService struct {
	mock.Mock
}

func (m *MockCurrentLocationService) CurrentLocation(ctx context.Context) (*models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockCurrentLocationService) UpdateCurrentLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	args := m.Called(ctx, loc)
	return args.Get(0).(*models.Location), args.Error(1)
}

// MockSavedLocationService is a mock implementation of the SavedLocationService interface
type MockSavedLocationService struct {
	mock.Mock
}

func (m *MockSavedLocationService) ListLocations(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockSavedLocationService) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockSavedLocationService) RenameLocation(ctx context.Context, id, alias string) (*models.Location, error) {
	args := m.Called(ctx, id, alias)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockSavedLocationService) DeleteLocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var noLocation *models.Location
