package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct of component pointers.
// Embedded pointer fields are required components. Named pointer fields are
// required unless tagged `ecs:"optional"`, in which case they are nil when the
// entity lacks them. A field of type EntityId (embedded or named) receives the
// matched entity's id.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
	idFields []uintptr
}

// NewView creates a view for the struct type T.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idFields = append(v.idFields, field.Offset)
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}

	return v
}

// matches reports whether an archetype holds every required component.
func (v *View[T]) matches(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnsFor(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = archetype.columnIndex(t)
	}
	return indices
}

// populate writes component pointers for one slot into the struct at dst.
func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, index int, columns []int, id EntityId) bool {
	for i, col := range columns {
		field := unsafe.Add(dst, v.offsets[i])

		var comp any
		if col != -1 {
			comp = archetype.columns[col].get(index)
		}
		if comp == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = reflect.ValueOf(comp).UnsafePointer()
	}

	for _, offset := range v.idFields {
		*(*EntityId)(unsafe.Add(dst, offset)) = id
	}
	return true
}

// Fill populates dst for the given entity. It returns false when the entity is
// gone or misses a required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id.Index()) || !v.matches(archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(dst), archetype, int(id.Index()), v.columnsFor(archetype), id)
}

// Get returns a populated view struct for the entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		columns := v.columnsFor(archetype)

		var result T
		for index := range archetype.columns[0].live() {
			id := NewEntityId(archetype.id, uint32(index))
			if !v.populate(unsafe.Pointer(&result), archetype, index, columns, id) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter yields every matching entity in archetype creation order, then slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values yields just the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
