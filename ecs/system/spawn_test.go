package system

import (
	"testing"
	"time"

	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/model"
	"github.com/milk9111/runner/sim"
)

func TestSpawnIntervalsStayInRange(t *testing.T) {
	ctx := newTestContext(t)
	spawner := NewSpawnSystem()
	lo := ctx.Config.Spawner.MinInterval()
	hi := ctx.Config.Spawner.MaxInterval()

	var (
		lastSpawn time.Duration
		now       time.Duration
		gaps      []time.Duration
	)
	for i := 0; i < 60*120; i++ {
		before := spawner.Spawned()
		ctx.Clock.Tick(tick)
		now += tick
		spawner.Update(ctx)

		if next := spawner.Next(); next < lo || next >= hi {
			t.Fatalf("rolled interval %v outside [%v,%v)", next, lo, hi)
		}
		if spawner.Spawned() > before {
			if before > 0 {
				gaps = append(gaps, now-lastSpawn)
			}
			lastSpawn = now
		}
	}

	if len(gaps) < 60 {
		t.Fatalf("expected many spawns in two minutes, got %d", len(gaps)+1)
	}
	for _, gap := range gaps {
		// Spawns land on tick boundaries, so a gap may overshoot by one tick.
		if gap < lo-tick || gap >= hi+tick {
			t.Fatalf("spawn gap %v outside [%v,%v)", gap, lo, hi)
		}
	}
	if ctx.Commands.Len() != spawner.Spawned() {
		t.Fatalf("expected %d queued spawns, got %d", spawner.Spawned(), ctx.Commands.Len())
	}
}

func TestSpawnWithEmptyRegistry(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Enemies = &model.Registry{}
	spawner := NewSpawnSystem()

	for i := 0; i < 60*5; i++ {
		ctx.Clock.Tick(tick)
		spawner.Update(ctx)
	}
	if spawner.Spawned() != 0 || ctx.Commands.Len() != 0 {
		t.Fatalf("expected no spawns without enemies, got %d", spawner.Spawned())
	}
}

func TestSpawnPausedClock(t *testing.T) {
	ctx := newTestContext(t)
	spawner := NewSpawnSystem()
	ctx.Clock.Pause()

	for i := 0; i < 60*5; i++ {
		ctx.Clock.Tick(tick)
		spawner.Update(ctx)
	}
	if spawner.Spawned() != 0 {
		t.Fatalf("expected no spawns while paused, got %d", spawner.Spawned())
	}
}

func TestScrolledEnemiesAreAllDespawned(t *testing.T) {
	ctx := newTestContext(t)
	physics := newPhysics(ctx)
	spawner := NewSpawnSystem()

	entity.SpawnRun(ctx.Commands, ctx.Config, nil)
	ctx.Commands.Apply(ctx.World)

	spawning := true
	systems := []sim.System{
		NewScrollSystem(),
		sim.SystemFunc(func(ctx *sim.Context) {
			if spawning {
				spawner.Update(ctx)
			}
		}),
		physics,
		NewCollisionSystem(),
	}

	maxAlive := 0
	for i := 0; i < 60*30; i++ {
		step(ctx, systems...)
		if n := len(entity.Enemies(ctx.World)); n > maxAlive {
			maxAlive = n
		}
	}
	spawning = false

	// The spawn point is 900 units from the despawner at 100 units/s.
	for i := 0; i < 60*12; i++ {
		step(ctx, systems...)
	}

	if spawner.Spawned() < 15 {
		t.Fatalf("expected steady spawning, got %d", spawner.Spawned())
	}
	if left := entity.Enemies(ctx.World); len(left) != 0 {
		t.Fatalf("expected every enemy despawned, %d remain", len(left))
	}
	if maxAlive > 13 {
		t.Fatalf("enemies piled up: %d alive at once", maxAlive)
	}
	if len(physics.bodies) != 2 {
		t.Fatalf("expected only ground and despawner bodies, got %d", len(physics.bodies))
	}
}

func TestColliderlessEnemiesLeaveAfterScrolling(t *testing.T) {
	ctx := newTestContext(t)
	ghost := enemyModel(t, "ghost")
	ghost.Colliders = nil
	reg, err := model.NewRegistry(ghost)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	ctx.Enemies = reg
	physics := newPhysics(ctx)
	spawner := NewSpawnSystem()

	entity.SpawnRun(ctx.Commands, ctx.Config, nil)
	ctx.Commands.Apply(ctx.World)

	spawning := true
	systems := []sim.System{
		NewScrollSystem(),
		sim.SystemFunc(func(ctx *sim.Context) {
			if spawning {
				spawner.Update(ctx)
			}
		}),
		physics,
		NewCollisionSystem(),
	}
	for i := 0; i < 60*10; i++ {
		step(ctx, systems...)
	}
	spawning = false

	// From the spawn point to the despawner's left edge is 1000 units.
	for i := 0; i < 60*11; i++ {
		step(ctx, systems...)
	}

	if spawner.Spawned() == 0 {
		t.Fatalf("expected collider-less enemies to spawn")
	}
	if left := entity.Enemies(ctx.World); len(left) != 0 {
		t.Fatalf("expected every enemy gone past the despawner, %d remain", len(left))
	}
	if len(physics.bodies) != 2 {
		t.Fatalf("expected only ground and despawner bodies, got %d", len(physics.bodies))
	}
}
