package system

import (
	"log"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/sim"
	"github.com/milk9111/runner/state"
)

// CollisionSystem turns this tick's collision records into gameplay
// commands and applies them.
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (c *CollisionSystem) Update(ctx *sim.Context) {
	cmds := TranslateCollisions(ctx.World, ctx.Collisions)
	ctx.Collisions = ctx.Collisions[:0]
	ApplyCommands(ctx, cmds)
}

// TranslateCollisions maps collision records to commands. It reads the
// world but never mutates it. Records whose participants no longer resolve
// to a live tagged parent are dropped.
func TranslateCollisions(w *ecs.World, records []ecs.CollisionEvent) []sim.Command {
	var out []sim.Command
	seen := make(map[sim.Command]struct{})
	emit := func(cmd sim.Command) {
		if _, dup := seen[cmd]; dup {
			return
		}
		seen[cmd] = struct{}{}
		out = append(out, cmd)
	}

	for _, rec := range records {
		if rec.Kind != ecs.CollisionStarted {
			continue
		}
		a, okA := resolveParent(w, rec.A)
		b, okB := resolveParent(w, rec.B)
		if !okA || !okB {
			continue
		}

		if enemy, ok := pairWith(w, a, b, component.DespawnerTagComponent.Kind(), component.EnemyTagComponent.Kind()); ok {
			emit(sim.Command{Kind: sim.DespawnEntity, Entity: enemy})
			continue
		}
		if _, ok := pairWith(w, a, b, component.EnemyTagComponent.Kind(), component.PlayerTagComponent.Kind()); ok {
			player := a
			if !ecs.Has(w, player, component.PlayerTagComponent.Kind()) {
				player = b
			}
			emit(sim.Command{Kind: sim.PlayerHit, Entity: player})
		}
	}
	return out
}

// resolveParent maps a collider child to its owner. Entities that carry
// their own tags resolve to themselves.
func resolveParent(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	if !w.IsAlive(e) {
		return 0, false
	}
	if child, ok := ecs.Get(w, e, component.ColliderChildComponent.Kind()); ok {
		owner := ecs.FromRaw(child.Owner)
		if !w.IsAlive(owner) {
			return 0, false
		}
		return owner, true
	}
	return e, true
}

// pairWith reports the entity carrying second when the other carries first.
func pairWith[A, B any](w *ecs.World, a, b ecs.Entity, first component.ComponentKind[A], second component.ComponentKind[B]) (ecs.Entity, bool) {
	switch {
	case ecs.Has(w, a, first) && ecs.Has(w, b, second):
		return b, true
	case ecs.Has(w, b, first) && ecs.Has(w, a, second):
		return a, true
	}
	return 0, false
}

// ApplyCommands executes cmds in order. A hit escalates to a death in the
// same pass. It returns every command executed, derived ones included.
func ApplyCommands(ctx *sim.Context, cmds []sim.Command) []sim.Command {
	queue := append([]sim.Command(nil), cmds...)
	done := make([]sim.Command, 0, len(queue))
	for i := 0; i < len(queue); i++ {
		cmd := queue[i]
		switch cmd.Kind {
		case sim.DespawnEntity:
			ctx.Commands.Despawn(cmd.Entity)
		case sim.PlayerHit:
			queue = append(queue, sim.Command{Kind: sim.PlayerDeath, Entity: cmd.Entity})
		case sim.PlayerDeath:
			if ctx.States.App() == state.Game {
				log.Printf("collision: player %s died", cmd.Entity)
				ctx.States.RequestApp(state.GameOver)
			}
		}
		done = append(done, cmd)
	}
	return done
}
