package service

import (
	"context"
	"testing"

	"weather-location-api/internal/apperr"
	"weather-location-api/internal/models"
	"weather-location-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSavedLocationRepository is a mock implementation of the SavedLocationRepository interface
type MockSavedLocationRepository struct {
	mock.Mock
}

func (m *MockSavedLocationRepository) ListSavedLocations(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockSavedLocationRepository) FindSavedLocation(ctx context.Context, id string) (*models.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockSavedLocationRepository) FindSavedLocationByPlaceID(ctx context.Context, placeID string) (*models.Location, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockSavedLocationRepository) FindNearestSavedLocation(ctx context.Context, lat, lon, radiusMeters float64) (*models.Location, error) {
	args := m.Called(ctx, lat, lon, radiusMeters)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockSavedLocationRepository) InsertSavedLocation(ctx context.Context, loc models.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockSavedLocationRepository) RenameSavedLocation(ctx context.Context, id, alias string) (*models.Location, error) {
	args := m.Called(ctx, id, alias)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockSavedLocationRepository) DeleteSavedLocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var noLocation *models.Location

func TestSavedLocationService_SaveLocation(t *testing.T) {
	brest := models.Location{Alias: "Brest", Address: "Brest, Belarus", PlaceID: "ChIJ-brest", Latitude: 52.0976, Longitude: 23.7341}
	existing := brest
	existing.ID = "6f1c1f7e-2f55-4a3e-8d0e-6d3b7c2a9f01"
	mapPoint := models.Location{Alias: "Dacha", Latitude: 53.5, Longitude: 27.1}

	tests := []struct {
		name         string
		input        models.Location
		setup        func(m *MockSavedLocationRepository)
		expectInsert bool
		expected     *models.Location
		expectedKind apperr.Kind
		expectError  bool
	}{
		{
			name:         "invalid coordinates",
			input:        models.Location{Alias: "x", Latitude: 0, Longitude: 181},
			setup:        func(m *MockSavedLocationRepository) {},
			expectError:  true,
			expectedKind: apperr.KindValidation,
		},
		{
			name:         "no alias and no address",
			input:        models.Location{Alias: "  ", Latitude: 1, Longitude: 1},
			setup:        func(m *MockSavedLocationRepository) {},
			expectError:  true,
			expectedKind: apperr.KindValidation,
		},
		{
			name:  "new place",
			input: brest,
			setup: func(m *MockSavedLocationRepository) {
				m.On("FindSavedLocationByPlaceID", mock.Anything, "ChIJ-brest").Return(noLocation, repository.ErrNotFound)
				m.On("InsertSavedLocation", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectInsert: true,
		},
		{
			name:  "place already saved",
			input: brest,
			setup: func(m *MockSavedLocationRepository) {
				m.On("FindSavedLocationByPlaceID", mock.Anything, "ChIJ-brest").Return(&existing, nil)
			},
			expected: &existing,
		},
		{
			name:  "map point near a saved point",
			input: mapPoint,
			setup: func(m *MockSavedLocationRepository) {
				m.On("FindNearestSavedLocation", mock.Anything, 53.5, 27.1, float64(DuplicateRadiusMeters)).Return(&existing, nil)
			},
			expected: &existing,
		},
		{
			name:  "new map point",
			input: mapPoint,
			setup: func(m *MockSavedLocationRepository) {
				m.On("FindNearestSavedLocation", mock.Anything, 53.5, 27.1, float64(DuplicateRadiusMeters)).Return(noLocation, repository.ErrNotFound)
				m.On("InsertSavedLocation", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectInsert: true,
		},
		{
			name:  "lookup error",
			input: brest,
			setup: func(m *MockSavedLocationRepository) {
				m.On("FindSavedLocationByPlaceID", mock.Anything, "ChIJ-brest").Return(noLocation, assert.AnError)
			},
			expectError: true,
		},
		{
			name:  "saved concurrently",
			input: brest,
			setup: func(m *MockSavedLocationRepository) {
				m.On("FindSavedLocationByPlaceID", mock.Anything, "ChIJ-brest").Return(noLocation, repository.ErrNotFound)
				m.On("InsertSavedLocation", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
			},
			expectError:  true,
			expectedKind: apperr.KindConflict,
		},
		{
			name:  "insert error",
			input: brest,
			setup: func(m *MockSavedLocationRepository) {
				m.On("FindSavedLocationByPlaceID", mock.Anything, "ChIJ-brest").Return(noLocation, repository.ErrNotFound)
				m.On("InsertSavedLocation", mock.Anything, mock.Anything).Return(assert.AnError)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockSavedLocationRepository)
			tt.setup(mockRepo)
			service := NewSavedLocationService(mockRepo, zerolog.Nop())

			// Execute
			result, err := service.SaveLocation(context.Background(), tt.input)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
				if tt.expectedKind != apperr.KindUnknown {
					assert.True(t, apperr.Is(err, tt.expectedKind))
				}
			} else {
				require.NoError(t, err)
				if tt.expectInsert {
					_, parseErr := uuid.Parse(result.ID)
					assert.NoError(t, parseErr)
					want := tt.input
					want.ID = result.ID
					assert.Equal(t, &want, result)
					mockRepo.AssertCalled(t, "InsertSavedLocation", mock.Anything, want)
				} else {
					assert.Equal(t, tt.expected, result)
					mockRepo.AssertNotCalled(t, "InsertSavedLocation", mock.Anything, mock.Anything)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSavedLocationService_SaveLocationUsesAddressWhenUnnamed(t *testing.T) {
	mockRepo := new(MockSavedLocationRepository)
	service := NewSavedLocationService(mockRepo, zerolog.Nop())

	mockRepo.On("FindSavedLocationByPlaceID", mock.Anything, "ChIJ-x").Return(noLocation, repository.ErrNotFound)
	mockRepo.On("InsertSavedLocation", mock.Anything, mock.Anything).Return(nil)

	result, err := service.SaveLocation(context.Background(), models.Location{Address: "Grodno, Belarus", PlaceID: "ChIJ-x", Latitude: 53.67, Longitude: 23.83})
	require.NoError(t, err)
	assert.Equal(t, "Grodno, Belarus", result.Alias)
}

func TestSavedLocationService_ListLocations(t *testing.T) {
	tests := []struct {
		name          string
		mockLocations []models.Location
		mockError     error
		expectError   bool
	}{
		{
			name:          "locations listed",
			mockLocations: []models.Location{{ID: "a", Alias: "Home"}, {ID: "b", Alias: "Office"}},
		},
		{
			name:          "empty list",
			mockLocations: []models.Location{},
		},
		{
			name:        "repository error",
			mockError:   assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSavedLocationRepository)
			service := NewSavedLocationService(mockRepo, zerolog.Nop())
			mockRepo.On("ListSavedLocations", mock.Anything).Return(tt.mockLocations, tt.mockError)

			result, err := service.ListLocations(context.Background())

			if tt.expectError {
				assert.ErrorIs(t, err, assert.AnError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockLocations, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSavedLocationService_RenameLocation(t *testing.T) {
	id := "6f1c1f7e-2f55-4a3e-8d0e-6d3b7c2a9f01"
	renamed := &models.Location{ID: id, Alias: "Office"}

	tests := []struct {
		name         string
		id           string
		alias        string
		callsRepo    bool
		mockLocation *models.Location
		mockError    error
		expected     *models.Location
		expectedKind apperr.Kind
		expectError  bool
	}{
		{name: "invalid id", id: "nope", alias: "Office", expectError: true, expectedKind: apperr.KindValidation},
		{name: "blank alias", id: id, alias: " ", expectError: true, expectedKind: apperr.KindValidation},
		{name: "renamed", id: id, alias: " Office ", callsRepo: true, mockLocation: renamed, expected: renamed},
		{name: "not found", id: id, alias: "Office", callsRepo: true, mockError: repository.ErrNotFound, expectError: true, expectedKind: apperr.KindNotFound},
		{name: "repository error", id: id, alias: "Office", callsRepo: true, mockError: assert.AnError, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSavedLocationRepository)
			service := NewSavedLocationService(mockRepo, zerolog.Nop())
			if tt.callsRepo {
				mockRepo.On("RenameSavedLocation", mock.Anything, tt.id, "Office").Return(tt.mockLocation, tt.mockError)
			}

			result, err := service.RenameLocation(context.Background(), tt.id, tt.alias)

			if tt.expectError {
				assert.Error(t, err)
				if tt.expectedKind != apperr.KindUnknown {
					assert.True(t, apperr.Is(err, tt.expectedKind))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSavedLocationService_DeleteLocation(t *testing.T) {
	id := "6f1c1f7e-2f55-4a3e-8d0e-6d3b7c2a9f01"

	tests := []struct {
		name         string
		id           string
		callsRepo    bool
		mockError    error
		expectedKind apperr.Kind
		expectError  bool
	}{
		{name: "invalid id", id: "", expectError: true, expectedKind: apperr.KindValidation},
		{name: "deleted", id: id, callsRepo: true},
		{name: "not found", id: id, callsRepo: true, mockError: repository.ErrNotFound, expectError: true, expectedKind: apperr.KindNotFound},
		{name: "repository error", id: id, callsRepo: true, mockError: assert.AnError, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSavedLocationRepository)
			service := NewSavedLocationService(mockRepo, zerolog.Nop())
			if tt.callsRepo {
				mockRepo.On("DeleteSavedLocation", mock.Anything, tt.id).Return(tt.mockError)
			}

			err := service.DeleteLocation(context.Background(), tt.id)

			if tt.expectError {
				assert.Error(t, err)
				if tt.expectedKind != apperr.KindUnknown {
					assert.True(t, apperr.Is(err, tt.expectedKind))
				}
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSavedLocationService_GetLocation(t *testing.T) {
	id := "6f1c1f7e-2f55-4a3e-8d0e-6d3b7c2a9f01"
	home := &models.Location{ID: id, Alias: "Home", Latitude: 53.9, Longitude: 27.56}

	tests := []struct {
		name         string
		id           string
		callsRepo    bool
		mockLocation *models.Location
		mockError    error
		expected     *models.Location
		expectedKind apperr.Kind
		expectError  bool
	}{
		{name: "invalid id", id: "42", expectError: true, expectedKind: apperr.KindValidation},
		{name: "found", id: id, callsRepo: true, mockLocation: home, expected: home},
		{name: "not found", id: id, callsRepo: true, mockError: repository.ErrNotFound, expectError: true, expectedKind: apperr.KindNotFound},
		{name: "repository error", id: id, callsRepo: true, mockError: assert.AnError, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSavedLocationRepository)
			service := NewSavedLocationService(mockRepo, zerolog.Nop())
			if tt.callsRepo {
				mockRepo.On("FindSavedLocation", mock.Anything, tt.id).Return(tt.mockLocation, tt.mockError)
			}

			result, err := service.GetLocation(context.Background(), tt.id)

			if tt.expectError {
				assert.Error(t, err)
				if tt.expectedKind != apperr.KindUnknown {
					assert.True(t, apperr.Is(err, tt.expectedKind))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
