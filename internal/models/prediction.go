package models

import "github.com/google/uuid"

// Prediction is a single address autocomplete suggestion.
type Prediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	PrimaryText   string `json:"primary_text"`
	SecondaryText string `json:"secondary_text,omitempty"`
}

// SessionToken groups a sequence of autocomplete queries into one billing session with the places provider.
type SessionToken uuid.UUID

// NewSessionToken returns a fresh random token.
func NewSessionToken() SessionToken {
	return SessionToken(uuid.New())
}

func (t SessionToken) String() string {
	return uuid.UUID(t).String()
}
