package ecs

import (
	"reflect"
)

// Singleton gives a system direct access to a component that lives outside
// any entity: settings, input state, counters and the like.
type Singleton[T any] struct {
	storage *Storage
	entry   *singletonEntry
}

// NewSingleton returns an accessor for T, creating the singleton from
// initializer (or the zero value) when storage does not have one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. Called by the Scheduler on registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.entry = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	s.entry = s.storage.getSingletonEntry(reflect.TypeFor[T]())
}

// Get returns the singleton, or nil if it was never added. Accessors follow
// replacements made with AddSingleton.
func (s *Singleton[T]) Get() *T {
	if s.entry == nil {
		s.refresh()
		if s.entry == nil {
			return nil
		}
	}
	return (*T)(s.entry.dataPtr)
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
