package system

import (
	"log"
	"path/filepath"

	"github.com/milk9111/runner/model"
	"github.com/milk9111/runner/prefabs"
	"github.com/milk9111/runner/sim"
)

// ReloadSystem swaps in edited character definitions while the game runs.
// A changed enemy file replaces the enemy registry; a changed player file
// replaces the player model used by the next run. Files that fail to parse
// are logged and the previous definitions stay in place.
type ReloadSystem struct {
	events <-chan string
	errors <-chan error

	loadFile func(name string) ([]*model.AnimatedModel, error)
}

func NewReloadSystem(w *prefabs.Watcher) *ReloadSystem {
	if w == nil {
		return &ReloadSystem{loadFile: prefabs.LoadFile}
	}
	return NewReloadSystemWith(w.Events, w.Errors, prefabs.LoadFile)
}

func NewReloadSystemWith(events <-chan string, errs <-chan error, load func(string) ([]*model.AnimatedModel, error)) *ReloadSystem {
	return &ReloadSystem{events: events, errors: errs, loadFile: load}
}

func (r *ReloadSystem) Update(ctx *sim.Context) {
	if r == nil || ctx == nil {
		return
	}
	changed := make(map[string]bool)
	for {
		select {
		case path, ok := <-r.events:
			if !ok {
				r.events = nil
				continue
			}
			changed[filepath.Base(path)] = true
			continue
		case err, ok := <-r.errors:
			if !ok {
				r.errors = nil
				continue
			}
			log.Printf("reload: watch: %v", err)
			continue
		default:
		}
		break
	}

	defs := ctx.Config.Definitions
	if changed[filepath.Base(defs.Enemies)] {
		r.reloadEnemies(ctx, defs.Enemies)
	}
	if changed[filepath.Base(defs.Player)] {
		r.reloadPlayer(ctx, defs.Player)
	}
}

func (r *ReloadSystem) reloadEnemies(ctx *sim.Context, name string) {
	models, err := r.loadFile(name)
	if err != nil {
		log.Printf("reload: %s: %v", name, err)
		return
	}
	reg, err := model.NewRegistry(models...)
	if err != nil {
		log.Printf("reload: %s: %v", name, err)
		return
	}
	if reg.Len() == 0 {
		log.Printf("reload: %s: no enemies defined, keeping %d", name, ctx.Enemies.Len())
		return
	}
	ctx.Enemies.Replace(reg)
	log.Printf("reload: %s: %d enemies", name, reg.Len())
}

func (r *ReloadSystem) reloadPlayer(ctx *sim.Context, name string) {
	models, err := r.loadFile(name)
	if err != nil {
		log.Printf("reload: %s: %v", name, err)
		return
	}
	if len(models) == 0 {
		log.Printf("reload: %s: no player defined", name)
		return
	}
	ctx.Player = models[0]
	log.Printf("reload: %s: player %q", name, models[0].Name)
}
