// Package datastore persists the single current-location record and lets
// callers observe it.
package datastore

import "context"

// LocationDTO is the storage representation of a location.
type LocationDTO struct {
	Alias     string  `json:"alias"`
	Address   string  `json:"address,omitempty"`
	PlaceID   string  `json:"place_id,omitempty"`
	ID        string  `json:"id,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// LocationDataStore holds at most one current location.
type LocationDataStore interface {
	// Location emits the stored value (nil when absent) immediately and then
	// after every write, until ctx is done.
	Location(ctx context.Context) (<-chan *LocationDTO, error)
	UpdateLocation(ctx context.Context, location LocationDTO) error
	ClearLocation(ctx context.Context) error
}
