package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return typeKey(a[i]) < typeKey(a[j]) }

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

func signature(types []reflect.Type) string {
	var b strings.Builder
	for i, t := range types {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(typeKey(t))
	}
	return b.String()
}

// Archetype stores every entity that has exactly one particular set of
// component types. All columns share slot indices: slot i of every column
// belongs to the same entity.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// spawn appends one entity. components must hold exactly one value per
// archetype type, in any order.
func (a *Archetype) spawn(components []any) uint32 {
	index := -1
	for i, t := range a.types {
		for _, comp := range components {
			if componentType(comp) != t {
				continue
			}
			slot := a.columns[i].append(comp)
			if index != -1 && slot != index {
				panic("archetype columns out of sync for " + t.String())
			}
			index = slot
			break
		}
	}
	return uint32(index)
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) component(index uint32, t reflect.Type) any {
	i := a.columnIndex(t)
	if i == -1 {
		return nil
	}
	return a.columns[i].get(int(index))
}

func (a *Archetype) remove(index uint32) bool {
	removed := false
	for _, c := range a.columns {
		if c.remove(int(index)) {
			removed = true
		}
	}
	return removed
}

func (a *Archetype) alive(index uint32) bool {
	return len(a.columns) > 0 && a.columns[0].has(int(index))
}

// HasComponent checks if this archetype stores the given component type.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) != -1
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].len()
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].live() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
