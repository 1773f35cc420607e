package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weather-location-api/internal/models"
	"weather-location-api/internal/session"
	"weather-location-api/internal/viewmodel"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLocationModal is a mock implementation of the LocationModal interface
type MockLocationModal struct {
	mock.Mock
}

func (m *MockLocationModal) Overview(ctx context.Context) (*viewmodel.LocationOverview, error) {
	args := m.Called(ctx)
	return args.Get(0).(*viewmodel.LocationOverview), args.Error(1)
}

func (m *MockLocationModal) SelectLocation(ctx context.Context, id string) (*models.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Location), args.Error(1)
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

func (m *MockCurrentLocationService) ClearCurrentLocation(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCurrentLocationService) WatchCurrentLocation(ctx context.Context) (<-chan *models.Location, error) {
	args := m.Called(ctx)
	stream, _ := args.Get(0).(<-chan *models.Location)
	return stream, args.Error(1)
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

func (m *MockSavedLocationService) SaveLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	args := m.Called(ctx, loc)
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

// MockAddressSearchScreen is a mock implementation of the AddressSearchScreen interface
type MockAddressSearchScreen struct {
	mock.Mock
}

func (m *MockAddressSearchScreen) State() viewmodel.AddressSearchState {
	args := m.Called()
	return args.Get(0).(viewmodel.AddressSearchState)
}

func (m *MockAddressSearchScreen) OnSearchTextChanged(text string) {
	m.Called(text)
}

func (m *MockAddressSearchScreen) SaveLocation(ctx context.Context, placeID string) (*models.Location, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockAddressSearchScreen) SubscribeResults(ctx context.Context) <-chan []models.Prediction {
	args := m.Called(ctx)
	return args.Get(0).(<-chan []models.Prediction)
}

func (m *MockAddressSearchScreen) Close() {
	m.Called()
}

// MockMapScreen is a mock implementation of the MapScreen interface
type MockMapScreen struct {
	mock.Mock
}

func (m *MockMapScreen) State() viewmodel.MapState {
	args := m.Called()
	return args.Get(0).(viewmodel.MapState)
}

func (m *MockMapScreen) OnUserInputChange(alias string) {
	m.Called(alias)
}

func (m *MockMapScreen) OnMapClick(c models.Coordinates) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockMapScreen) SaveLocation(ctx context.Context) (*models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockMapScreen) Close() {
	m.Called()
}

var noLocation *models.Location

// testAPI wires every handler to mocks behind the real router.
type testAPI struct {
	router         *gin.Engine
	modal          *MockLocationModal
	current        *MockCurrentLocationService
	saved          *MockSavedLocationService
	searchSessions *session.Registry[AddressSearchScreen]
	mapSessions    *session.Registry[MapScreen]
	searchScreen   *MockAddressSearchScreen
	mapScreen      *MockMapScreen
	mapScreenErr   error
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &testAPI{
		modal:          new(MockLocationModal),
		current:        new(MockCurrentLocationService),
		saved:          new(MockSavedLocationService),
		searchSessions: session.NewRegistry[AddressSearchScreen]("search", time.Hour, zerolog.Nop()),
		mapSessions:    session.NewRegistry[MapScreen]("map", time.Hour, zerolog.Nop()),
		searchScreen:   new(MockAddressSearchScreen),
		mapScreen:      new(MockMapScreen),
	}

	log := zerolog.Nop()
	api.router = NewRouter(Handlers{
		Location: NewLocationHandler(api.modal, api.current, log),
		Saved:    NewSavedLocationHandler(api.saved, log),
		Search: NewSearchSessionHandler(api.searchSessions, func() AddressSearchScreen {
			return api.searchScreen
		}, log),
		Map: NewMapSessionHandler(api.mapSessions, func() (MapScreen, error) {
			if api.mapScreenErr != nil {
				return nil, api.mapScreenErr
			}
			return api.mapScreen, nil
		}, log),
	}, log)

	return api
}

func (api *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func assertJSONBody(t *testing.T, expected any, w *httptest.ResponseRecorder) {
	t.Helper()
	want, err := json.Marshal(expected)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), w.Body.String())
}

func httptestRequest(ctx context.Context, method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil).WithContext(ctx)
}

func serve(api *testAPI, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}
