// Package session keeps the view models of open client screens.
package session

import (
	"context"
	"sync"
	"time"

	"weather-location-api/internal/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// minSweepInterval bounds how often Run looks for idle sessions.
const minSweepInterval = 10 * time.Millisecond

// Closer is implemented by anything a session owns.
type Closer interface {
	Close()
}

type entry[T Closer] struct {
	value    T
	lastUsed time.Time
}

// Registry maps session ids to values. A value is closed when its session
// is deleted or has not been used for the idle timeout.
type Registry[T Closer] struct {
	mu       sync.Mutex
	sessions map[string]*entry[T]
	idle     time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewRegistry creates a registry; idle <= 0 disables expiry.
func NewRegistry[T Closer](name string, idle time.Duration, log zerolog.Logger) *Registry[T] {
	return &Registry[T]{
		sessions: make(map[string]*entry[T]),
		idle:     idle,
		now:      time.Now,
		log:      log.With().Str("component", "session").Str("registry", name).Logger(),
	}
}

// Create stores value under a new id.
func (r *Registry[T]) Create(value T) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &entry[T]{value: value, lastUsed: r.now()}
	r.mu.Unlock()

	r.log.Debug().Str("session_id", id).Msg("session created")
	return id
}

// Get returns the value of session id and marks it used.
func (r *Registry[T]) Get(id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		var zero T
		return zero, apperr.NotFound("session not found")
	}
	e.lastUsed = r.now()
	return e.value, nil
}

// Delete closes and forgets session id.
func (r *Registry[T]) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return apperr.NotFound("session not found")
	}
	e.value.Close()
	r.log.Debug().Str("session_id", id).Msg("session deleted")
	return nil
}

// Len returns the number of open sessions.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Expire closes every session idle since before now minus the idle timeout
// and returns how many were closed.
func (r *Registry[T]) Expire(now time.Time) int {
	if r.idle <= 0 {
		return 0
	}

	var expired []T
	r.mu.Lock()
	for id, e := range r.sessions {
		if now.Sub(e.lastUsed) >= r.idle {
			expired = append(expired, e.value)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, v := range expired {
		v.Close()
	}
	if len(expired) > 0 {
		r.log.Info().Int("count", len(expired)).Msg("expired idle sessions")
	}
	return len(expired)
}

// CloseAll closes and forgets every session.
func (r *Registry[T]) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry[T])
	r.mu.Unlock()

	for _, e := range sessions {
		e.value.Close()
	}
}

// Run expires idle sessions until ctx is done, then closes the rest.
func (r *Registry[T]) Run(ctx context.Context) error {
	defer r.CloseAll()
	if r.idle <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(max(r.idle/2, minSweepInterval))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Expire(now)
		}
	}
}
