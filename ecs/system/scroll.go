package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/sim"
)

// ScrollSystem moves scrolling entities left at the configured world speed.
// Anything that scrolls past the despawner's left edge without touching it is
// despawned here.
type ScrollSystem struct{}

func NewScrollSystem() *ScrollSystem {
	return &ScrollSystem{}
}

func (s *ScrollSystem) Update(ctx *sim.Context) {
	dx := ctx.Config.World.ScrollSpeed * ctx.Delta().Seconds()
	if dx == 0 {
		return
	}
	w := ctx.World
	cutoff := ctx.Config.Despawner.X - ctx.Config.Despawner.HalfWidth
	ecs.ForEach2(w, component.ScrollingComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Scrolling, t *component.Transform) {
		t.X -= dx
		if t.X < cutoff {
			ctx.Commands.Despawn(e)
			return
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil {
			return
		}
		pos := body.Body.Position()
		body.Body.SetPosition(cp.Vector{X: t.X, Y: pos.Y})
		vel := body.Body.Velocity()
		body.Body.SetVelocity(0, vel.Y)
	})
}
