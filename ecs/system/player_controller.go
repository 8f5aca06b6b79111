package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/sim"
)

const (
	clipRun  = "run"
	clipJump = "jump"
)

// PlayerControllerSystem probes for ground under the player's feet and
// turns jump input into an upward velocity. The player never moves
// horizontally; the world scrolls past instead.
type PlayerControllerSystem struct {
	probe RayCaster
}

func NewPlayerControllerSystem(probe RayCaster) *PlayerControllerSystem {
	return &PlayerControllerSystem{probe: probe}
}

func (p *PlayerControllerSystem) Update(ctx *sim.Context) {
	w := ctx.World
	anchorX := ctx.Config.Player.X

	for _, e := range w.Query(
		component.PlayerComponent.Kind().ID(),
		component.InputComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
	) {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		player.Grounded = p.grounded(t, player)
		player.Ducking = input.Duck

		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil {
			continue
		}
		vel := bodyComp.Body.Velocity()
		vel.X = 0
		if input.JumpPressed && player.Grounded {
			vel.Y = -player.JumpSpeed
			player.Grounded = false
			playJump(w, e)
		}
		bodyComp.Body.SetVelocityVector(vel)

		pos := bodyComp.Body.Position()
		if pos.X != anchorX {
			bodyComp.Body.SetPosition(cp.Vector{X: anchorX, Y: pos.Y})
			t.X = anchorX
		}
	}
}

// grounded casts a short ray from just inside the feet down into the
// floor group.
func (p *PlayerControllerSystem) grounded(t *component.Transform, player *component.Player) bool {
	if p.probe == nil {
		return false
	}
	feet := t.Y + player.FootOffset
	_, hit := p.probe.CastRay(t.X, feet-1, t.X, feet+player.ProbeLength, component.GroupWall)
	return hit
}

func playJump(w *ecs.World, e ecs.Entity) {
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok || !anim.HasClip(clipJump) {
		return
	}
	var follow []string
	if anim.HasClip(clipRun) {
		follow = append(follow, clipRun)
	}
	if err := anim.QueueAnimation(clipJump, false, follow...); err != nil {
		log.Printf("player: queue %s: %v", clipJump, err)
	}
}
