package entity

import (
	"fmt"

	"github.com/milk9111/runner/config"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/model"
)

// BuildPlayer returns a deferred builder for the player character.
func BuildPlayer(cfg *config.Config, m *model.AnimatedModel, textures model.TextureSource) func(*ecs.World, ecs.Entity) error {
	return func(w *ecs.World, e ecs.Entity) error {
		return buildPlayer(w, e, cfg, m, textures)
	}
}

func NewPlayer(w *ecs.World, cfg *config.Config, m *model.AnimatedModel, textures model.TextureSource) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := buildPlayer(w, e, cfg, m, textures); err != nil {
		ecs.DespawnRecursive(w, e)
		return 0, err
	}
	return e, nil
}

func buildPlayer(w *ecs.World, e ecs.Entity, cfg *config.Config, m *model.AnimatedModel, textures model.TextureSource) error {
	if m == nil {
		return fmt.Errorf("player: nil model")
	}
	if err := m.Spawn(w, e, textures); err != nil {
		return fmt.Errorf("player: %w", err)
	}

	foot := component.LowestBottom(m.Colliders)

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		JumpSpeed:   cfg.Player.JumpSpeed,
		ProbeLength: cfg.Player.ProbeLength,
		FootOffset:  foot,
	}); err != nil {
		return fmt.Errorf("player: add player component: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      cfg.Player.X,
		Y:      groundTop(cfg) - foot,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:         component.BodyDynamic,
		Mass:         1,
		LockRotation: true,
	}); err != nil {
		return fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Memberships: component.GroupPlayer,
		Filters:     component.GroupWall | component.GroupEnemy | component.GroupCommon,
	}); err != nil {
		return fmt.Errorf("player: add collision layer: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: component.LayerPlayer}); err != nil {
		return fmt.Errorf("player: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.RunScopedComponent.Kind(), &component.RunScoped{}); err != nil {
		return fmt.Errorf("player: add run scope: %w", err)
	}
	return nil
}
