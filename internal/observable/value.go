// Package observable provides a typed holder for a current value that
// notifies subscribers whenever the value is replaced.
package observable

import (
	"context"
	"sync"
)

// Value holds the latest value of type T. Subscribers are conflated: a slow
// subscriber only ever sees the most recent value, never a backlog.
type Value[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[uint64]chan T
	nextID uint64
}

// NewValue returns a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		value: initial,
		subs:  make(map[uint64]chan T),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set replaces the current value and notifies every subscriber.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = value
	for _, ch := range v.subs {
		offer(ch, value)
	}
}

// Update applies fn to the current value atomically and notifies subscribers.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = fn(v.value)
	for _, ch := range v.subs {
		offer(ch, v.value)
	}
	return v.value
}

// Subscribe returns a channel that first yields the current value and then
// every subsequent one. The channel is closed once ctx is done.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = ch
	ch <- v.value
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, id)
		close(ch)
		v.mu.Unlock()
	}()

	return ch
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// offer must be called with the lock held; senders never race each other.
func offer[T any](ch chan T, value T) {
	select {
	case ch <- value:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- value
	}
}
