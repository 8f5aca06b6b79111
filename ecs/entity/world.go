package entity

import (
	"fmt"

	"github.com/milk9111/runner/config"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
)

func groundTop(cfg *config.Config) float64 {
	return cfg.World.GroundY - cfg.World.GroundHalfHeight
}

// BuildGround returns a deferred builder for the static floor.
func BuildGround(cfg *config.Config) func(*ecs.World, ecs.Entity) error {
	return func(w *ecs.World, e ecs.Entity) error {
		return buildStatic(w, e, "ground", staticSpec{
			x: 0,
			y: cfg.World.GroundY,
			collider: component.ColliderDescriptor{
				Shape:      component.ShapeCuboid,
				HalfWidth:  cfg.World.GroundHalfWidth,
				HalfHeight: cfg.World.GroundHalfHeight,
			},
			friction: 1,
			layer: component.CollisionLayer{
				Memberships: component.GroupWall | component.GroupCommon,
			},
			tag: func(w *ecs.World, e ecs.Entity) error {
				return ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{})
			},
		})
	}
}

// BuildDespawner returns a deferred builder for the sensor that removes
// enemies once they scroll past the left edge.
func BuildDespawner(cfg *config.Config) func(*ecs.World, ecs.Entity) error {
	return func(w *ecs.World, e ecs.Entity) error {
		return buildStatic(w, e, "despawner", staticSpec{
			x: cfg.Despawner.X,
			y: cfg.Despawner.Y,
			collider: component.ColliderDescriptor{
				Shape:      component.ShapeCuboid,
				HalfWidth:  cfg.Despawner.HalfWidth,
				HalfHeight: cfg.Despawner.HalfHeight,
				Sensor:     true,
			},
			events: true,
			layer: component.CollisionLayer{
				Memberships: component.GroupCommon,
				Filters:     component.GroupEnemy,
			},
			tag: func(w *ecs.World, e ecs.Entity) error {
				return ecs.Add(w, e, component.DespawnerTagComponent.Kind(), &component.DespawnerTag{})
			},
		})
	}
}

type staticSpec struct {
	x, y     float64
	collider component.ColliderDescriptor
	friction float64
	events   bool
	layer    component.CollisionLayer
	tag      func(*ecs.World, ecs.Entity) error
}

func buildStatic(w *ecs.World, e ecs.Entity, name string, spec staticSpec) error {
	if err := spec.collider.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := spec.tag(w, e); err != nil {
		return fmt.Errorf("%s: add tag: %w", name, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.x, Y: spec.y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("%s: add transform: %w", name, err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:     component.BodyStatic,
		Friction: spec.friction,
	}); err != nil {
		return fmt.Errorf("%s: add physics body: %w", name, err)
	}
	layer := spec.layer
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layer); err != nil {
		return fmt.Errorf("%s: add collision layer: %w", name, err)
	}
	if err := ecs.Add(w, e, component.RunScopedComponent.Kind(), &component.RunScoped{}); err != nil {
		return fmt.Errorf("%s: add run scope: %w", name, err)
	}

	child := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ChildrenComponent.Kind(), &component.Children{Entities: []uint64{child.Raw()}}); err != nil {
		return fmt.Errorf("%s: add children: %w", name, err)
	}
	if err := ecs.Add(w, child, component.ColliderChildComponent.Kind(), &component.ColliderChild{Owner: e.Raw(), Descriptor: spec.collider}); err != nil {
		return fmt.Errorf("%s: add collider: %w", name, err)
	}
	if spec.events {
		if err := ecs.Add(w, child, component.CollisionEventsComponent.Kind(), &component.CollisionEvents{}); err != nil {
			return fmt.Errorf("%s: add collision events: %w", name, err)
		}
	}
	return nil
}

// SpawnRun queues everything a fresh run needs: floor, despawn sensor and
// the player.
func SpawnRun(cmds *ecs.Commands, cfg *config.Config, build func(*ecs.World, ecs.Entity) error) {
	cmds.Spawn("ground", BuildGround(cfg))
	cmds.Spawn("despawner", BuildDespawner(cfg))
	if build != nil {
		cmds.Spawn("player", build)
	}
}

// ClearRun despawns every run-scoped entity.
func ClearRun(w *ecs.World) int {
	n := 0
	for _, e := range w.Query(component.RunScopedComponent.Kind().ID()) {
		if ecs.DespawnRecursive(w, e) {
			n++
		}
	}
	return n
}

// ClearEnemies despawns every enemy.
func ClearEnemies(w *ecs.World) int {
	n := 0
	for _, e := range Enemies(w) {
		if ecs.DespawnRecursive(w, e) {
			n++
		}
	}
	return n
}
