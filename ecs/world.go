package ecs

import (
	"fmt"
	"sort"

	"github.com/milk9111/runner/ecs/component"
)

// World owns entities and their component tables. It is mutated by exactly
// one simulation pass at a time; structural changes requested while systems
// iterate go through Commands.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// false when e was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// AddComponent attaches or replaces the component value stored under id.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.IsAlive(e) {
		return fmt.Errorf("add component %d to %s: %w", id, e, component.ErrEntityNotAlive)
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

// GetComponent returns the raw component value stored under id.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	v := w.store(id, false).Get(e)
	return v, v != nil
}

// HasComponent reports whether e carries the component stored under id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

// Query returns the live entities carrying every listed component, sorted by
// slot so iteration order is deterministic.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	out := IntersectEntities(sets...)
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-slot live entity carrying the component.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	ents := w.Query(id)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := w.stores[id]
	if s == nil && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}
