package system

import (
	"log"
	"time"

	"github.com/milk9111/runner/ecs/entity"
	"github.com/milk9111/runner/sim"
)

// SpawnSystem drops a random enemy from the registry at the right edge
// after a random interval, then rolls the next interval.
type SpawnSystem struct {
	elapsed time.Duration
	next    time.Duration
	rolled  bool
	spawned int
}

func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{}
}

// Reset restarts the countdown; a new interval is rolled on the next update.
func (s *SpawnSystem) Reset() {
	s.elapsed = 0
	s.next = 0
	s.rolled = false
}

// Next returns the interval being waited on.
func (s *SpawnSystem) Next() time.Duration {
	return s.next
}

// Spawned returns the number of spawns requested since creation.
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

func (s *SpawnSystem) Update(ctx *sim.Context) {
	if !s.rolled {
		s.roll(ctx)
	}
	s.elapsed += ctx.Delta()
	if s.elapsed < s.next {
		return
	}
	s.elapsed -= s.next
	s.roll(ctx)

	name, ok := ctx.Enemies.RandomName(ctx.RNG)
	if !ok {
		return
	}
	m, _ := ctx.Enemies.Get(name)
	ctx.Commands.Spawn("enemy "+name, entity.BuildEnemy(ctx.Config, m, ctx.Textures))
	s.spawned++
}

func (s *SpawnSystem) roll(ctx *sim.Context) {
	lo := ctx.Config.Spawner.MinInterval()
	hi := ctx.Config.Spawner.MaxInterval()
	if hi <= lo {
		log.Printf("spawn: interval [%v,%v) is empty, using %v", lo, hi, lo)
		s.next = lo
	} else {
		s.next = lo + time.Duration(ctx.RNG.Int64N(int64(hi-lo)))
	}
	s.rolled = true
}
