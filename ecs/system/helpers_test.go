package system

import (
	"testing"
	"time"

	"github.com/milk9111/runner/config"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/model"
	"github.com/milk9111/runner/sim"
)

const tick = time.Second / 60

func newTestContext(t *testing.T) *sim.Context {
	t.Helper()
	ctx := sim.NewContext(config.Default(), 42)
	reg, err := model.NewRegistry(enemyModel(t, "slime"))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	ctx.Enemies = reg
	ctx.Player = playerModel(t)
	return ctx
}

func clipState(t *testing.T, clips map[string][]int, looped map[string]bool) *component.AnimationState {
	t.Helper()
	state := component.NewAnimationState()
	for name, frames := range clips {
		if err := state.AddClip(name, frames, 100*time.Millisecond); err != nil {
			t.Fatalf("add clip %q: %v", name, err)
		}
		clip := state.Clips[name]
		clip.Looped = looped[name]
		state.Clips[name] = clip
	}
	return state
}

func enemyModel(t *testing.T, name string) *model.AnimatedModel {
	t.Helper()
	return &model.AnimatedModel{
		Name: name,
		Sheet: model.SpriteSheet{
			Path:   "sprites/enemies.png",
			Layout: component.GridLayout{TileW: 32, TileH: 32, Rows: 1, Columns: 4},
		},
		Animation:   clipState(t, map[string][]int{"crawl": {0, 1, 2, 3}}, map[string]bool{"crawl": true}),
		DefaultClip: "crawl",
		Colliders: []component.ColliderDescriptor{
			{Shape: component.ShapeCuboid, HalfWidth: 12, HalfHeight: 8, OffsetY: 8},
		},
	}
}

func playerModel(t *testing.T) *model.AnimatedModel {
	t.Helper()
	return &model.AnimatedModel{
		Name: "player",
		Sheet: model.SpriteSheet{
			Path:   "sprites/player.png",
			Layout: component.GridLayout{TileW: 32, TileH: 32, Rows: 1, Columns: 8},
		},
		Animation: clipState(t,
			map[string][]int{clipRun: {0, 1, 2, 3, 4, 5}, clipJump: {6, 7}},
			map[string]bool{clipRun: true}),
		DefaultClip: clipRun,
		Colliders: []component.ColliderDescriptor{
			{Shape: component.ShapeCapsuleY, Radius: 8, HalfHeight: 6, OffsetY: 2},
		},
	}
}

func mustSpawn(t *testing.T, w *ecs.World, build func(*ecs.World, ecs.Entity) error) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := build(w, e); err != nil {
		t.Fatalf("build: %v", err)
	}
	return e
}

func mustEnemy(t *testing.T, ctx *sim.Context, x float64) ecs.Entity {
	t.Helper()
	m, _ := ctx.Enemies.Get("slime")
	e, err := entity.NewEnemy(ctx.World, ctx.Config, m, nil, x)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}
	return e
}

// firstChild returns the first collider child of e.
func firstChild(t *testing.T, w *ecs.World, e ecs.Entity) ecs.Entity {
	t.Helper()
	children, ok := ecs.Get(w, e, component.ChildrenComponent.Kind())
	if !ok || len(children.Entities) == 0 {
		t.Fatalf("%s has no children", e)
	}
	return ecs.FromRaw(children.Entities[0])
}

// step advances the clock one frame and runs systems in order.
func step(ctx *sim.Context, systems ...sim.System) {
	ctx.Clock.Tick(tick)
	for _, s := range systems {
		s.Update(ctx)
	}
	ctx.States.Apply()
	ctx.Commands.Apply(ctx.World)
}
