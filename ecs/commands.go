package ecs

import "iter"

// Commands buffers structural changes made while systems iterate.
// The Scheduler flushes the buffer once every system of the frame has run.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// DeleteAll queues the deletion of every id in entities.
func (c *Commands) DeleteAll(entities iter.Seq[EntityId]) int {
	n := 0
	for id := range entities {
		c.deletes = append(c.deletes, id)
		n++
	}
	return n
}

// Defer queues fn to run after deletes and spawns have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports the number of queued spawns and deletes.
func (c *Commands) Pending() (spawns, deletes int) {
	return len(c.spawns), len(c.deletes)
}

// Flush applies deletes, then spawns, then deferred functions, and resets
// the buffer. Deletes go first so a despawn-and-respawn in the same frame can
// reuse the freed slots.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
