package models

// Location is a named place the user cares about: either the device's current position or an entry in the saved list.
type Location struct {
	ID        string  `json:"id,omitempty"`
	Alias     string  `json:"alias"`
	Address   string  `json:"address,omitempty"`
	PlaceID   string  `json:"place_id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates returns the location's position.
func (l Location) Coordinates() Coordinates {
	return Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// DisplayName is the alias, or the address when no alias was given.
func (l Location) DisplayName() string {
	if l.Alias != "" {
		return l.Alias
	}
	return l.Address
}
