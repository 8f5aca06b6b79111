package sim

import (
	"math/rand/v2"
	"time"

	"github.com/milk9111/runner/config"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/model"
	"github.com/milk9111/runner/state"
)

// Context is everything a system may touch during a tick. It is passed
// explicitly to every system; nothing here is global.
type Context struct {
	World    *ecs.World
	Commands *ecs.Commands
	States   *state.Machine
	Clock    *state.Clock
	Config   *config.Config
	RNG      *rand.Rand

	Enemies  *model.Registry
	Player   *model.AnimatedModel
	Textures model.TextureSource

	Input Actions

	// Collisions holds the records produced by this tick's physics step.
	Collisions []ecs.CollisionEvent

	Debug bool
}

// Actions is the named input state sampled at the start of a tick.
type Actions struct {
	Jump         bool
	JumpPressed  bool
	Duck         bool
	PausePressed bool
	DebugPressed bool
}

// NewContext builds a context with a fresh world. seed makes enemy picks
// and spawn intervals reproducible.
func NewContext(cfg *config.Config, seed uint64) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{
		World:    ecs.NewWorld(),
		Commands: &ecs.Commands{},
		States:   state.NewMachine(),
		Clock:    state.NewClock(),
		Config:   cfg,
		RNG:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Enemies:  &model.Registry{},
	}
}

// Delta is the simulation time elapsed this tick; zero while paused.
func (c *Context) Delta() time.Duration {
	if c == nil || c.Clock == nil {
		return 0
	}
	return c.Clock.Delta()
}
