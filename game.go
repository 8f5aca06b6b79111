package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/runner/assets"
	"github.com/milk9111/runner/config"
	"github.com/milk9111/runner/ecs/system"
	"github.com/milk9111/runner/model"
	"github.com/milk9111/runner/prefabs"
	"github.com/milk9111/runner/sim"
	"github.com/milk9111/runner/ui"
)

type Game struct {
	cfg   *config.Config
	frame time.Duration

	ctx      *sim.Context
	pipeline *system.Pipeline
	screens  *ui.Screens
	watcher  *prefabs.Watcher
}

type options struct {
	debug bool
	watch bool
	seed  uint64
}

func NewGame(cfg *config.Config, opts options) (*Game, error) {
	ctx := sim.NewContext(cfg, opts.seed)
	ctx.Debug = opts.debug
	ctx.Textures = assets.NewTextures("assets")

	players, err := prefabs.LoadRegistry(cfg.Definitions.Player)
	if err != nil {
		return nil, err
	}
	names := players.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: no player definition", cfg.Definitions.Player)
	}
	ctx.Player, _ = players.Take(names[0])

	enemies, err := prefabs.LoadRegistry(cfg.Definitions.Enemies)
	if err != nil {
		log.Printf("enemies: %v; running without enemies", err)
		enemies = &model.Registry{}
	}
	ctx.Enemies = enemies
	log.Printf("loaded player %q and %d enemies %v", ctx.Player.Name, enemies.Len(), enemies.Names())

	g := &Game{
		cfg:   cfg,
		frame: time.Second / time.Duration(cfg.TPS),
		ctx:   ctx,
	}

	var reload *system.ReloadSystem
	if opts.watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("watch %s: %v", prefabs.Dir, err)
		} else {
			g.watcher = w
			reload = system.NewReloadSystem(w)
		}
	}

	g.pipeline = system.NewPipeline(ctx, nil, reload)
	g.screens = ui.NewScreens(ctx, cfg.Window.Width, cfg.Window.Height)
	ctx.States.Start()
	return g, nil
}

func (g *Game) Update() error {
	if g.screens.Quit {
		return ebiten.Termination
	}
	g.ctx.Clock.Tick(g.frame)
	g.screens.Update(g.frame)
	g.pipeline.Scheduler.Update(g.ctx)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.pipeline.Render.Draw(g.ctx, screen)

	if g.ctx.Debug {
		offX, offY := g.pipeline.Render.Offset(screen)
		system.DrawPhysicsDebug(g.pipeline.Physics.Space(), screen, offX, offY, g.pipeline.Render.Zoom)
		system.DrawRunDebug(g.ctx, screen)
	}

	g.screens.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close stops the definition watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
}
