// Package mapper converts locations between their domain, storage and
// maps SDK representations.
package mapper

import (
	"weather-location-api/internal/datastore"
	"weather-location-api/internal/models"

	"googlemaps.github.io/maps"
)

// ToDTO converts a domain location to its storage form.
func ToDTO(loc models.Location) datastore.LocationDTO {
	return datastore.LocationDTO{
		ID:        loc.ID,
		Alias:     loc.Alias,
		Address:   loc.Address,
		PlaceID:   loc.PlaceID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
}

// ToModel converts a stored location to the domain form; nil stays nil.
func ToModel(dto *datastore.LocationDTO) *models.Location {
	if dto == nil {
		return nil
	}
	return &models.Location{
		ID:        dto.ID,
		Alias:     dto.Alias,
		Address:   dto.Address,
		PlaceID:   dto.PlaceID,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}
}

// ToLatLng converts coordinates to the maps SDK point type.
func ToLatLng(c models.Coordinates) maps.LatLng {
	return maps.LatLng{Lat: c.Latitude, Lng: c.Longitude}
}

// CoordinatesFromLatLng converts a maps SDK point to coordinates.
func CoordinatesFromLatLng(p maps.LatLng) models.Coordinates {
	return models.Coordinates{Latitude: p.Lat, Longitude: p.Lng}
}
