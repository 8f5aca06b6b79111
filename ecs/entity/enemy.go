package entity

import (
	"fmt"

	"github.com/milk9111/runner/config"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/model"
)

// BuildEnemy returns a deferred builder placing m at the spawn point,
// standing on the ground.
func BuildEnemy(cfg *config.Config, m *model.AnimatedModel, textures model.TextureSource) func(*ecs.World, ecs.Entity) error {
	return func(w *ecs.World, e ecs.Entity) error {
		return buildEnemy(w, e, cfg, m, textures, cfg.Spawner.X)
	}
}

// NewEnemy spawns m immediately at x.
func NewEnemy(w *ecs.World, cfg *config.Config, m *model.AnimatedModel, textures model.TextureSource, x float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := buildEnemy(w, e, cfg, m, textures, x); err != nil {
		ecs.DespawnRecursive(w, e)
		return 0, err
	}
	return e, nil
}

func buildEnemy(w *ecs.World, e ecs.Entity, cfg *config.Config, m *model.AnimatedModel, textures model.TextureSource, x float64) error {
	if m == nil {
		return fmt.Errorf("enemy: nil model")
	}
	if err := m.Spawn(w, e, textures); err != nil {
		return fmt.Errorf("enemy: %w", err)
	}

	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{Name: m.Name}); err != nil {
		return fmt.Errorf("enemy: add enemy tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      x,
		Y:      groundTop(cfg) - component.LowestBottom(m.Colliders),
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:         component.BodyDynamic,
		Mass:         1,
		LockRotation: true,
	}); err != nil {
		return fmt.Errorf("enemy: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Memberships: component.GroupEnemy,
		Filters:     component.GroupWall | component.GroupPlayer | component.GroupCommon,
	}); err != nil {
		return fmt.Errorf("enemy: add collision layer: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerEnemy}); err != nil {
		return fmt.Errorf("enemy: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.ScrollingComponent.Kind(), &component.Scrolling{}); err != nil {
		return fmt.Errorf("enemy: add scrolling: %w", err)
	}
	if err := ecs.Add(w, e, component.RunScopedComponent.Kind(), &component.RunScoped{}); err != nil {
		return fmt.Errorf("enemy: add run scope: %w", err)
	}
	return nil
}

// Enemies returns every live enemy parent.
func Enemies(w *ecs.World) []ecs.Entity {
	return w.Query(component.EnemyTagComponent.Kind().ID())
}
