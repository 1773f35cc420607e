package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"weather-location-api/internal/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	closed atomic.Int32
}

func (f *fakeScreen) Close() {
	f.closed.Add(1)
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r := NewRegistry[*fakeScreen]("test", time.Minute, zerolog.Nop())
	screen := &fakeScreen{}

	id := r.Create(screen)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, screen, got)

	require.NoError(t, r.Delete(id))
	assert.Equal(t, int32(1), screen.closed.Load())
	assert.Equal(t, 0, r.Len())

	_, err = r.Get(id)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(r.Delete(id), apperr.KindNotFound))
	assert.Equal(t, int32(1), screen.closed.Load())
}

func TestRegistry_DistinctIDs(t *testing.T) {
	r := NewRegistry[*fakeScreen]("test", 0, zerolog.Nop())

	assert.NotEqual(t, r.Create(&fakeScreen{}), r.Create(&fakeScreen{}))
}

func TestRegistry_Expire(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	r := NewRegistry[*fakeScreen]("test", 10*time.Minute, zerolog.Nop())
	r.now = func() time.Time { return now }

	idle := &fakeScreen{}
	busy := &fakeScreen{}
	idleID := r.Create(idle)
	busyID := r.Create(busy)

	now = start.Add(8 * time.Minute)
	_, err := r.Get(busyID)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Expire(start.Add(11*time.Minute)))
	assert.Equal(t, int32(1), idle.closed.Load())
	assert.Equal(t, int32(0), busy.closed.Load())

	_, err = r.Get(idleID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = r.Get(busyID)
	assert.NoError(t, err)
}

func TestRegistry_ExpireDisabled(t *testing.T) {
	r := NewRegistry[*fakeScreen]("test", 0, zerolog.Nop())
	r.Create(&fakeScreen{})

	assert.Equal(t, 0, r.Expire(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RunClosesOnShutdown(t *testing.T) {
	r := NewRegistry[*fakeScreen]("test", time.Hour, zerolog.Nop())
	screen := &fakeScreen{}
	r.Create(screen)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, int32(1), screen.closed.Load())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_RunExpiresIdleSessions(t *testing.T) {
	r := NewRegistry[*fakeScreen]("test", 20*time.Millisecond, zerolog.Nop())
	screen := &fakeScreen{}
	r.Create(screen)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	assert.Eventually(t, func() bool { return screen.closed.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestRegistry_RunWithTinyIdleTimeout(t *testing.T) {
	r := NewRegistry[*fakeScreen]("test", time.Nanosecond, zerolog.Nop())
	screen := &fakeScreen{}
	r.Create(screen)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	assert.Eventually(t, func() bool { return screen.closed.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
