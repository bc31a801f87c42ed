package ecs

import "iter"

// Query wraps a View with a per-frame snapshot of matching entities.
// The Scheduler refreshes every Query field of a system right before the
// system runs, so Iter reflects the storage as of that moment.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	archetypes     []*Archetype
	archetypeCount int

	entities   []EntityId
	components []T
	valid      bool
}

// NewQuery creates a Query for use outside a Scheduler.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. Called by the Scheduler on registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
	q.valid = false
}

// Execute rebuilds the snapshot.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.archetypeCount {
		q.archetypes = q.archetypes[:0]
		for _, archetype := range q.storage.order {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.archetypeCount = n
	}

	q.entities = q.entities[:0]
	q.components = q.components[:0]
	for _, archetype := range q.archetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
		}
	}
	q.valid = true
}

func (q *Query[T]) mustBeValid(method string) {
	if !q.valid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Iter yields entity ids and view structs from the last snapshot.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeValid("Iter")
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// Values yields view structs from the last snapshot.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeValid("Values")
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}

// Entities yields entity ids from the last snapshot.
func (q *Query[T]) Entities() iter.Seq[EntityId] {
	q.mustBeValid("Entities")
	return func(yield func(EntityId) bool) {
		for _, id := range q.entities {
			if !yield(id) {
				return
			}
		}
	}
}

// Len returns the size of the last snapshot.
func (q *Query[T]) Len() int {
	q.mustBeValid("Len")
	return len(q.entities)
}
