package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct {
	Name string
}

var EnemyTagComponent = NewComponent[EnemyTag]()

type DespawnerTag struct{}

var DespawnerTagComponent = NewComponent[DespawnerTag]()

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()

// RunScoped entities are removed when a new run starts.
type RunScoped struct{}

var RunScopedComponent = NewComponent[RunScoped]()

// Scrolling entities move left with the world.
type Scrolling struct{}

var ScrollingComponent = NewComponent[Scrolling]()
