package models

// Status is the presentation state of an observed value.
type Status string

const (
	StatusLoading   Status = "loading"
	StatusSuccess   Status = "success"
	StatusNoContent Status = "no_content"
)

// LocationState wraps an observed location for presentation.
type LocationState struct {
	Status   Status    `json:"status"`
	Location *Location `json:"location,omitempty"`
}

// CoordinatesState wraps observed coordinates for presentation.
type CoordinatesState struct {
	Status      Status       `json:"status"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// LocationStateOf maps an optional location to success or no content.
func LocationStateOf(loc *Location) LocationState {
	if loc == nil {
		return LocationState{Status: StatusNoContent}
	}
	return LocationState{Status: StatusSuccess, Location: loc}
}

// CoordinatesStateOf maps an optional location to the state of its coordinates.
func CoordinatesStateOf(loc *Location) CoordinatesState {
	if loc == nil {
		return CoordinatesState{Status: StatusNoContent}
	}
	c := loc.Coordinates()
	return CoordinatesState{Status: StatusSuccess, Coordinates: &c}
}
