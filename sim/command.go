package sim

import (
	"fmt"

	"github.com/milk9111/runner/ecs"
)

type CommandKind int

const (
	// DespawnEntity removes an entity and its collider children.
	DespawnEntity CommandKind = iota + 1
	// PlayerHit is raised when the player touches an enemy.
	PlayerHit
	// PlayerDeath ends the run.
	PlayerDeath
)

func (k CommandKind) String() string {
	switch k {
	case DespawnEntity:
		return "despawn"
	case PlayerHit:
		return "player_hit"
	case PlayerDeath:
		return "player_death"
	default:
		return "unknown"
	}
}

// Command is gameplay work derived from one tick's collisions.
type Command struct {
	Kind   CommandKind
	Entity ecs.Entity
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%s)", c.Kind, c.Entity)
}
