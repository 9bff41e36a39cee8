// Package clientstore keeps per-client values in memory and serializes
// access to each of them, while different clients proceed in parallel.
package clientstore

import (
	"sync"
)

type entry[T any] struct {
	mu    sync.Mutex
	value T
}

type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
	newFunc func() T
}

// New creates a store; newFunc builds the initial value for a client the
// first time it is updated.
func New[T any](newFunc func() T) *Store[T] {
	return &Store[T]{
		entries: make(map[string]*entry[T]),
		newFunc: newFunc,
	}
}

func (s *Store[T]) getOrCreate(key string) *entry[T] {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e
	}
	e = &entry[T]{value: s.newFunc()}
	s.entries[key] = e
	return e
}

// Update runs fn with exclusive access to the client's value, creating it
// if needed. fn must not call back into the store for the same key.
func (s *Store[T]) Update(key string, fn func(value *T) error) error {
	e := s.getOrCreate(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.value)
}

// View runs fn under the client's lock without creating the client.
// Returns false if the client is unknown.
func (s *Store[T]) View(key string, fn func(value *T)) bool {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.value)
	return true
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
