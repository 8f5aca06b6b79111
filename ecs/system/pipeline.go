package system

import (
	"github.com/milk9111/runner/sim"
	"github.com/milk9111/runner/state"
)

// Pipeline is the full set of gameplay systems for one context.
type Pipeline struct {
	Scheduler *sim.Scheduler

	Input   *InputSystem
	Spawner *SpawnSystem
	Physics *PhysicsSystem
	Render  *RenderSystem
	Reload  *ReloadSystem
}

// NewPipeline registers the systems in tick order: input, pause,
// animation, scroll, spawn, player controller, physics, collision. Reload
// runs last and may be nil. The lifecycle hooks are installed on ctx.States
// but the machine is not started.
func NewPipeline(ctx *sim.Context, input *InputSystem, reload *ReloadSystem) *Pipeline {
	if input == nil {
		input = NewInputSystem()
	}
	p := &Pipeline{
		Scheduler: sim.NewScheduler(),
		Input:     input,
		Spawner:   NewSpawnSystem(),
		Physics:   NewPhysicsSystem(ctx.Config.Physics.Gravity, ctx.Config.Physics.Iterations),
		Render:    NewRenderSystem(),
		Reload:    reload,
	}

	running := sim.All(sim.InApp(state.Game), sim.InGame(state.Running))

	s := p.Scheduler
	s.Add("input", sim.Always, p.Input)
	s.Add("pause", sim.Always, NewPauseSystem())
	s.Add("animation", running, NewAnimationSystem())
	s.Add("scroll", running, NewScrollSystem())
	s.Add("spawn", running, p.Spawner)
	s.Add("player_controller", running, NewPlayerControllerSystem(p.Physics))
	s.Add("physics", sim.Always, p.Physics)
	s.Add("collision", running, NewCollisionSystem())
	if reload != nil {
		s.Add("reload", sim.Always, reload)
	}

	InstallLifecycle(ctx, p.Spawner)
	return p
}
