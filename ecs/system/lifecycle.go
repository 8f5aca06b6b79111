package system

import (
	"log"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/sim"
	"github.com/milk9111/runner/state"
)

// InstallLifecycle hooks world setup and teardown onto the state machine.
// Entering Game clears the previous run, queues a fresh one and starts it
// running. Entering GameOver pauses play and clears the enemies. The Clock
// follows the game state.
//
// World edits go through ctx.Commands so they land after anything the
// triggering tick already queued.
func InstallLifecycle(ctx *sim.Context, spawner *SpawnSystem) {
	ctx.States.OnEnterApp(state.Game, func() {
		ctx.Commands.Do("clear run", func(w *ecs.World) {
			if n := entity.ClearRun(w); n > 0 {
				log.Printf("lifecycle: cleared %d run entities", n)
			}
		})
		var build func(*ecs.World, ecs.Entity) error
		if ctx.Player != nil {
			build = entity.BuildPlayer(ctx.Config, ctx.Player, ctx.Textures)
		} else {
			log.Printf("lifecycle: no player model loaded")
		}
		entity.SpawnRun(ctx.Commands, ctx.Config, build)
		if spawner != nil {
			spawner.Reset()
		}
		ctx.Collisions = ctx.Collisions[:0]
		ctx.States.RequestGame(state.Running)
	})

	ctx.States.OnEnterApp(state.GameOver, func() {
		ctx.States.RequestGame(state.Paused)
		ctx.Commands.Do("clear enemies", func(w *ecs.World) {
			entity.ClearEnemies(w)
		})
	})

	ctx.States.OnEnterApp(state.MainMenu, func() {
		ctx.States.RequestGame(state.Paused)
		ctx.Commands.Do("clear run", func(w *ecs.World) {
			entity.ClearRun(w)
		})
	})

	ctx.States.OnEnterGame(state.Paused, ctx.Clock.Pause)
	ctx.States.OnEnterGame(state.Running, ctx.Clock.Unpause)
}
