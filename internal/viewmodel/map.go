package viewmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"weather-location-api/internal/apperr"
	"weather-location-api/internal/models"
	"weather-location-api/internal/observable"

	"github.com/rs/zerolog"
)

const (
	// SelectedPointTitle labels a selected point the user has not named.
	SelectedPointTitle = "Selected point"
	// DefaultZoom is the camera zoom of the map screen.
	DefaultZoom = 12
)

// DefaultCameraTarget is where the camera points when there is no current location (Minsk).
var DefaultCameraTarget = models.Coordinates{Latitude: 53.9021, Longitude: 27.5505}

// Camera is the map camera position.
type Camera struct {
	Target models.Coordinates `json:"target"`
	Zoom   float64            `json:"zoom"`
}

// MapState is a snapshot of the map screen.
type MapState struct {
	Current     models.CoordinatesState `json:"current"`
	Camera      Camera                  `json:"camera"`
	Selected    *models.Coordinates     `json:"selected,omitempty"`
	UserInput   string                  `json:"user_input"`
	MarkerTitle string                  `json:"marker_title,omitempty"`
}

// MapViewModel backs the screen where a location is added by clicking the map.
type MapViewModel struct {
	saver    LocationSaver
	resolver AddressResolver
	log      zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	current   *observable.Value[models.CoordinatesState]
	selected  *observable.Value[*models.Coordinates]
	userInput *observable.Value[string]
}

// NewMapViewModel creates a map view model following the current location.
// resolver may be nil.
func NewMapViewModel(watcher CurrentLocationWatcher, resolver AddressResolver, saver LocationSaver, log zerolog.Logger) (*MapViewModel, error) {
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := watcher.WatchCurrentLocation(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("viewmodel: failed to watch current location: %w", err)
	}

	vm := &MapViewModel{
		saver:     saver,
		resolver:  resolver,
		log:       log.With().Str("component", "map").Logger(),
		ctx:       ctx,
		cancel:    cancel,
		current:   observable.NewValue(models.CoordinatesState{Status: models.StatusLoading}),
		selected:  observable.NewValue[*models.Coordinates](nil),
		userInput: observable.NewValue(""),
	}

	vm.wg.Add(1)
	go vm.follow(stream)

	return vm, nil
}

func (vm *MapViewModel) follow(stream <-chan *models.Location) {
	defer vm.wg.Done()
	for loc := range stream {
		vm.current.Set(models.CoordinatesStateOf(loc))
	}
}

// CurrentCoordinatesState returns the state of the current location's coordinates.
func (vm *MapViewModel) CurrentCoordinatesState() models.CoordinatesState {
	return vm.current.Get()
}

// SubscribeCurrentCoordinates streams the current coordinates state until ctx is done or the view model is closed.
func (vm *MapViewModel) SubscribeCurrentCoordinates(ctx context.Context) <-chan models.CoordinatesState {
	return vm.current.Subscribe(boundTo(ctx, vm.ctx))
}

// Camera centres on the current location, or on DefaultCameraTarget without one.
func (vm *MapViewModel) Camera() Camera {
	target := DefaultCameraTarget
	if state := vm.current.Get(); state.Status == models.StatusSuccess && state.Coordinates != nil {
		target = *state.Coordinates
	}
	return Camera{Target: target, Zoom: DefaultZoom}
}

// SelectedCoordinates returns the clicked point, or nil.
func (vm *MapViewModel) SelectedCoordinates() *models.Coordinates {
	return vm.selected.Get()
}

// UserInput returns the alias typed so far.
func (vm *MapViewModel) UserInput() string {
	return vm.userInput.Get()
}

// OnUserInputChange records the alias typed by the user.
func (vm *MapViewModel) OnUserInputChange(alias string) {
	vm.userInput.Set(alias)
}

// OnMapClick selects a point.
func (vm *MapViewModel) OnMapClick(c models.Coordinates) error {
	if !c.Valid() {
		return apperr.Validation(fmt.Sprintf("coordinates out of range: %s", c))
	}
	vm.selected.Set(&c)
	return nil
}

// MarkerTitle is the label of the selected point's marker; empty when nothing is selected.
func (vm *MapViewModel) MarkerTitle() string {
	if vm.selected.Get() == nil {
		return ""
	}
	if alias := strings.TrimSpace(vm.userInput.Get()); alias != "" {
		return alias
	}
	return SelectedPointTitle
}

// State returns a snapshot of the screen.
func (vm *MapViewModel) State() MapState {
	return MapState{
		Current:     vm.current.Get(),
		Camera:      vm.Camera(),
		Selected:    vm.selected.Get(),
		UserInput:   vm.userInput.Get(),
		MarkerTitle: vm.MarkerTitle(),
	}
}

// SaveLocation saves the selected point under the typed alias. Without an
// alias the point is named after its address, or SelectedPointTitle.
func (vm *MapViewModel) SaveLocation(ctx context.Context) (*models.Location, error) {
	selected := vm.selected.Get()
	if selected == nil {
		return nil, apperr.Validation("no point selected on the map")
	}

	loc := models.Location{
		Alias:     strings.TrimSpace(vm.userInput.Get()),
		Latitude:  selected.Latitude,
		Longitude: selected.Longitude,
	}
	if vm.resolver != nil {
		address, err := vm.resolver.Address(ctx, *selected)
		if err != nil {
			vm.log.Warn().Err(err).Stringer("coordinates", selected).Msg("reverse geocoding failed")
		}
		loc.Address = address
	}
	if loc.Alias == "" {
		loc.Alias = loc.Address
	}
	if loc.Alias == "" {
		loc.Alias = SelectedPointTitle
	}

	saved, err := vm.saver.SaveLocation(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("viewmodel: failed to save map point: %w", err)
	}
	return saved, nil
}

// Close stops following the current location.
func (vm *MapViewModel) Close() {
	vm.cancel()
	vm.wg.Wait()
}
