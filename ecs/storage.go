package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// Storage holds every entity, grouped by archetype, plus the singleton
// components (resources) that are not attached to any entity.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	order      []*Archetype
	signatures map[string]uint32
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage backed by the given registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		signatures: make(map[string]uint32),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry used by this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; a copy is always stored.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	key := signature(types)
	if id, ok := s.signatures[key]; ok {
		return s.archetypes[id]
	}

	id := uint32(len(s.order) + 1)
	archetype := newArchetype(id, types, s.registry)
	s.archetypes[id] = archetype
	s.signatures[key] = id
	s.order = append(s.order, archetype)
	return archetype
}

// Archetypes returns the archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Delete removes the entity and all of its components.
// It reports whether a live entity was removed.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.remove(id.Index())
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.alive(id.Index())
}

// GetComponent returns a pointer to the entity's component of type compType,
// or nil when the entity does not have one.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent checks if a live entity has a specific component type.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.alive(id.Index()) && archetype.HasComponent(compType)
}

// Len returns the number of live entities across all archetypes.
func (s *Storage) Len() int {
	total := 0
	for _, archetype := range s.order {
		total += archetype.Len()
	}
	return total
}

// AddSingleton stores value as the singleton for its type, replacing any
// previous one. Passing a pointer registers the pointed-to value in place.
// Existing Singleton accessors see the replacement.
func (s *Storage) AddSingleton(value any) {
	rv := reflect.ValueOf(value)
	var typ reflect.Type
	var ptr unsafe.Pointer
	if rv.Kind() == reflect.Ptr {
		typ, ptr = rv.Type().Elem(), rv.UnsafePointer()
	} else {
		fresh := reflect.New(rv.Type())
		fresh.Elem().Set(rv)
		typ, ptr = rv.Type(), fresh.UnsafePointer()
	}

	if entry := s.singletons[typ]; entry != nil {
		entry.dataPtr = ptr
		return
	}
	s.singletons[typ] = &singletonEntry{typ: typ, dataPtr: ptr}
}

// ReadSingleton fills target (a **T) with the singleton of type T.
// It returns false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	out := rv.Elem()
	entry := s.getSingletonEntry(out.Type().Elem())
	if entry == nil {
		return false
	}
	out.Set(reflect.NewAt(entry.typ, entry.dataPtr))
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// componentType returns the stored type of a component value.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of a spawn call.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)

		// Components are value types; a pointer to a pointer, maps, channels and
		// functions are rejected.
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		for _, seen := range types {
			if seen == t {
				panic("duplicate component type " + t.String())
			}
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// ComponentReader is implemented by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
