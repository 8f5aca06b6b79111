package ecs

import (
	"log"

	"github.com/milk9111/runner/ecs/component"
)

// Commands buffers structural changes requested while systems iterate.
// Apply runs them in request order at the tick boundary.
type Commands struct {
	ops []command
}

type command struct {
	spawn   func(*World, Entity) error
	run     func(*World)
	despawn Entity
	label   string
}

// Spawn defers creating an entity and running build against it. If build
// fails the half-built entity is despawned and the error logged.
func (c *Commands) Spawn(label string, build func(*World, Entity) error) {
	if c == nil || build == nil {
		return
	}
	c.ops = append(c.ops, command{spawn: build, label: label})
}

// Do defers an arbitrary world mutation, for work that must see entities
// spawned earlier in the same tick.
func (c *Commands) Do(label string, fn func(*World)) {
	if c == nil || fn == nil {
		return
	}
	c.ops = append(c.ops, command{run: fn, label: label})
}

// Despawn defers removing e together with every entity listed in its
// Children component.
func (c *Commands) Despawn(e Entity) {
	if c == nil || !e.Valid() {
		return
	}
	c.ops = append(c.ops, command{despawn: e})
}

// Len returns the number of pending operations.
func (c *Commands) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ops)
}

// Apply executes pending operations. Despawning an entity that is already
// gone is a no-op, so duplicate requests within a tick are harmless.
func (c *Commands) Apply(w *World) {
	if c == nil || w == nil {
		return
	}
	ops := c.ops
	c.ops = nil
	for _, op := range ops {
		if op.run != nil {
			op.run(w)
			continue
		}
		if op.spawn != nil {
			e := w.CreateEntity()
			if err := op.spawn(w, e); err != nil {
				log.Printf("ecs: spawn %s: %v", op.label, err)
				DespawnRecursive(w, e)
			}
			continue
		}
		DespawnRecursive(w, op.despawn)
	}
}

// DespawnRecursive destroys e and its descendants. It reports whether e
// itself was alive.
func DespawnRecursive(w *World, e Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	if children, ok := Get(w, e, component.ChildrenComponent.Kind()); ok {
		for _, raw := range children.Entities {
			DespawnRecursive(w, FromRaw(raw))
		}
	}
	return w.DestroyEntity(e)
}
