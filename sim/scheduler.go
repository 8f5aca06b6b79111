package sim

import "github.com/milk9111/runner/state"

type System interface {
	Update(ctx *Context)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(ctx *Context)

func (f SystemFunc) Update(ctx *Context) { f(ctx) }

// Condition gates a system for the current tick.
type Condition func(ctx *Context) bool

// Always runs the system every tick.
func Always(*Context) bool { return true }

// InApp runs the system while the app is in s.
func InApp(s state.AppState) Condition {
	return func(ctx *Context) bool { return ctx.States.App() == s }
}

// InGame runs the system while the run is in s.
func InGame(s state.GameState) Condition {
	return func(ctx *Context) bool { return ctx.States.Game() == s }
}

// All combines conditions.
func All(conds ...Condition) Condition {
	return func(ctx *Context) bool {
		for _, c := range conds {
			if !c(ctx) {
				return false
			}
		}
		return true
	}
}

type entry struct {
	name   string
	when   Condition
	system System
}

// Scheduler runs systems in registration order. After the last system the
// state machine applies pending transitions and the deferred commands are
// flushed, so the next tick starts from a settled world.
type Scheduler struct {
	systems []entry
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(name string, when Condition, system System) {
	if system == nil {
		return
	}
	if when == nil {
		when = Always
	}
	s.systems = append(s.systems, entry{name: name, when: when, system: system})
}

// Names returns the registered system names in run order.
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.systems))
	for _, e := range s.systems {
		names = append(names, e.name)
	}
	return names
}

// Update runs one tick.
func (s *Scheduler) Update(ctx *Context) {
	for _, e := range s.systems {
		if e.when(ctx) {
			e.system.Update(ctx)
		}
	}
	ctx.States.Apply()
	ctx.Commands.Apply(ctx.World)
}
