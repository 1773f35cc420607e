package datastore

import (
	"context"

	"weather-location-api/internal/observable"
)

// MemoryStore keeps the current location in process memory.
type MemoryStore struct {
	value *observable.Value[*LocationDTO]
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{value: observable.NewValue[*LocationDTO](nil)}
}

func (s *MemoryStore) Location(ctx context.Context) (<-chan *LocationDTO, error) {
	return s.value.Subscribe(ctx), nil
}

func (s *MemoryStore) UpdateLocation(ctx context.Context, location LocationDTO) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.value.Set(&location)
	return nil
}

func (s *MemoryStore) ClearLocation(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.value.Set(nil)
	return nil
}
