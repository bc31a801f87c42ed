package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to column constructors.
// Each Storage owns a registry reference; several storages may share one.
type ComponentRegistry struct {
	columns map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		columns: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers T so it can be stored in archetypes.
// It must be called for every component type before spawning entities with it.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.columns[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.columns[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.columns[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// column is a type-erased slot array for one component type.
type column interface {
	append(item any) int
	remove(index int) bool
	get(index int) any
	has(index int) bool
	live() iter.Seq[int]
	len() int
}

const pageSize = 64

// page keeps values at fixed addresses so pointers handed out by views stay
// valid while other entities are spawned.
type page[T any] struct {
	values [pageSize]T
	used   [pageSize]bool
}

type typedColumn[T any] struct {
	pages []*page[T]
	free  []int
	next  int
	count int
}

func (c *typedColumn[T]) append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/pageSize >= len(c.pages) {
			c.pages = append(c.pages, &page[T]{})
		}
	}

	p := c.pages[index/pageSize]
	p.values[index%pageSize] = value
	p.used[index%pageSize] = true
	c.count++
	return index
}

func (c *typedColumn[T]) remove(index int) bool {
	if !c.has(index) {
		return false
	}
	p := c.pages[index/pageSize]
	var zero T
	p.values[index%pageSize] = zero
	p.used[index%pageSize] = false
	c.free = append(c.free, index)
	c.count--
	return true
}

func (c *typedColumn[T]) get(index int) any {
	if !c.has(index) {
		return nil
	}
	return &c.pages[index/pageSize].values[index%pageSize]
}

func (c *typedColumn[T]) has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.pages[index/pageSize].used[index%pageSize]
}

func (c *typedColumn[T]) live() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if c.pages[i/pageSize].used[i%pageSize] && !yield(i) {
				return
			}
		}
	}
}

func (c *typedColumn[T]) len() int {
	return c.count
}
