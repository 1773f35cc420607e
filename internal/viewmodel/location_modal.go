package viewmodel

import (
	"context"
	"fmt"

	"weather-location-api/internal/models"

	"golang.org/x/sync/errgroup"
)

// Route names a screen the location modal can open.
type Route string

const (
	RouteMap           Route = "map"
	RouteAddressSearch Route = "address_search"
)

// MenuAction is an entry of the location modal's menu.
type MenuAction struct {
	Route Route  `json:"route"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Menu lists the ways to add a location.
var Menu = []MenuAction{
	{Route: RouteMap, Title: "Add with map", Href: "/map-sessions"},
	{Route: RouteAddressSearch, Title: "Add with name", Href: "/search-sessions"},
}

// LocationOverview is what the location modal shows.
type LocationOverview struct {
	Current models.LocationState `json:"current"`
	Saved   []models.Location    `json:"saved"`
	Menu    []MenuAction         `json:"menu"`
}

// CurrentLocationService interface for dependency injection
type CurrentLocationService interface {
	CurrentLocation(ctx context.Context) (*models.Location, error)
	UpdateCurrentLocation(ctx context.Context, loc models.Location) (*models.Location, error)
}

// SavedLocationService interface for dependency injection
type SavedLocationService interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	RenameLocation(ctx context.Context, id, alias string) (*models.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

// LocationModalViewModel backs the modal listing the current and saved locations.
// It keeps no state of its own and is shared by all clients.
type LocationModalViewModel struct {
	current CurrentLocationService
	saved   SavedLocationService
}

// NewLocationModalViewModel creates a new location modal view model
func NewLocationModalViewModel(current CurrentLocationService, saved SavedLocationService) *LocationModalViewModel {
	return &LocationModalViewModel{current: current, saved: saved}
}

// Overview returns the current location, the saved list and the menu.
func (vm *LocationModalViewModel) Overview(ctx context.Context) (*LocationOverview, error) {
	var (
		current *models.Location
		saved   []models.Location
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loc, err := vm.current.CurrentLocation(gctx)
		if err != nil {
			return fmt.Errorf("viewmodel: failed to load current location: %w", err)
		}
		current = loc
		return nil
	})
	g.Go(func() error {
		list, err := vm.saved.ListLocations(gctx)
		if err != nil {
			return fmt.Errorf("viewmodel: failed to load saved locations: %w", err)
		}
		saved = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &LocationOverview{
		Current: models.LocationStateOf(current),
		Saved:   saved,
		Menu:    Menu,
	}, nil
}

// SelectLocation makes the saved location id the current location.
func (vm *LocationModalViewModel) SelectLocation(ctx context.Context, id string) (*models.Location, error) {
	saved, err := vm.saved.GetLocation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("viewmodel: failed to load saved location: %w", err)
	}

	loc := *saved
	loc.ID = ""
	current, err := vm.current.UpdateCurrentLocation(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("viewmodel: failed to select location: %w", err)
	}
	return current, nil
}

// RenameLocation changes a saved location's alias.
func (vm *LocationModalViewModel) RenameLocation(ctx context.Context, id, alias string) (*models.Location, error) {
	return vm.saved.RenameLocation(ctx, id, alias)
}

// DeleteLocation removes a saved location.
func (vm *LocationModalViewModel) DeleteLocation(ctx context.Context, id string) error {
	return vm.saved.DeleteLocation(ctx, id)
}
