package system

import (
	"testing"

	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/sim"
	"github.com/milk9111/runner/state"
)

func TestTranslateCollisions(t *testing.T) {
	ctx := newTestContext(t)
	w := ctx.World

	despawner := mustSpawn(t, w, entity.BuildDespawner(ctx.Config))
	sensor := firstChild(t, w, despawner)
	player, err := entity.NewPlayer(w, ctx.Config, ctx.Player, nil)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	playerCollider := firstChild(t, w, player)

	a := mustEnemy(t, ctx, -500)
	b := mustEnemy(t, ctx, -480)
	c := mustEnemy(t, ctx, 300)
	gone := mustEnemy(t, ctx, -490)
	goneCollider := firstChild(t, w, gone)
	ecs.DespawnRecursive(w, gone)

	started := func(x, y ecs.Entity) ecs.CollisionEvent {
		return ecs.CollisionEvent{Kind: ecs.CollisionStarted, A: x, B: y}
	}

	tests := []struct {
		name    string
		records []ecs.CollisionEvent
		want    []sim.Command
	}{
		{
			name:    "sensor and enemy",
			records: []ecs.CollisionEvent{started(sensor, firstChild(t, w, a))},
			want:    []sim.Command{{Kind: sim.DespawnEntity, Entity: a}},
		},
		{
			name:    "enemy first",
			records: []ecs.CollisionEvent{started(firstChild(t, w, b), sensor)},
			want:    []sim.Command{{Kind: sim.DespawnEntity, Entity: b}},
		},
		{
			name: "several enemies in flight",
			records: []ecs.CollisionEvent{
				started(sensor, firstChild(t, w, b)),
				started(firstChild(t, w, a), sensor),
				started(sensor, firstChild(t, w, b)),
			},
			want: []sim.Command{
				{Kind: sim.DespawnEntity, Entity: b},
				{Kind: sim.DespawnEntity, Entity: a},
			},
		},
		{
			name:    "stopped records are ignored",
			records: []ecs.CollisionEvent{{Kind: ecs.CollisionStopped, A: sensor, B: firstChild(t, w, a)}},
		},
		{
			name:    "already despawned enemy",
			records: []ecs.CollisionEvent{started(sensor, goneCollider)},
		},
		{
			name:    "player and enemy",
			records: []ecs.CollisionEvent{started(firstChild(t, w, c), playerCollider)},
			want:    []sim.Command{{Kind: sim.PlayerHit, Entity: player}},
		},
		{
			name:    "player and sensor",
			records: []ecs.CollisionEvent{started(sensor, playerCollider)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(ecs.Entities(w))
			got := TranslateCollisions(w, tt.records)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("command %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
			if after := len(ecs.Entities(w)); after != before {
				t.Fatalf("translation changed the world: %d -> %d entities", before, after)
			}
		})
	}
}

func TestApplyCommandsOutsideGame(t *testing.T) {
	ctx := newTestContext(t)
	player, err := entity.NewPlayer(ctx.World, ctx.Config, ctx.Player, nil)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	ApplyCommands(ctx, []sim.Command{{Kind: sim.PlayerHit, Entity: player}})
	ctx.States.Apply()
	if ctx.States.App() != state.MainMenu {
		t.Fatalf("a death outside a run must not change state, got %s", ctx.States.App())
	}
}

func TestApplyCommandsDespawnIsDeferred(t *testing.T) {
	ctx := newTestContext(t)
	enemy := mustEnemy(t, ctx, 0)
	child := firstChild(t, ctx.World, enemy)

	ApplyCommands(ctx, []sim.Command{
		{Kind: sim.DespawnEntity, Entity: enemy},
		{Kind: sim.DespawnEntity, Entity: enemy},
	})
	if !ctx.World.IsAlive(enemy) {
		t.Fatalf("despawn must wait for the command flush")
	}
	ctx.Commands.Apply(ctx.World)
	if ctx.World.IsAlive(enemy) || ctx.World.IsAlive(child) {
		t.Fatalf("expected enemy and collider removed")
	}
}
