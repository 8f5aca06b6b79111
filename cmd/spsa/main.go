// Command spsa previews the clips of a character definition file.
//
// Every model in the file is drawn side by side. Tab cycles the clip played
// by all models that have it; with -watch the file is reloaded on save.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/runner/assets"
	"github.com/milk9111/runner/config"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/ecs/system"
	"github.com/milk9111/runner/prefabs"
	"github.com/milk9111/runner/sim"
)

const (
	screenW = 512
	screenH = 256
	spacing = 64.0
)

type previewer struct {
	file     string
	textures *assets.Textures
	events   <-chan string
	errs     <-chan error

	ctx    *sim.Context
	anim   *system.AnimationSystem
	render *system.RenderSystem

	clips   []string
	clipIdx int
	status  string
}

func newPreviewer(file string, textures *assets.Textures, watcher *prefabs.Watcher) *previewer {
	p := &previewer{
		file:     file,
		textures: textures,
		anim:     system.NewAnimationSystem(),
		render:   system.NewRenderSystem(),
	}
	if watcher != nil {
		p.events, p.errs = watcher.Events, watcher.Errors
	}
	p.render.Zoom = 2
	p.load()
	return p
}

// load rebuilds the preview world from the definition file and rereads the
// sprite sheets. A file that fails to parse leaves the current preview on
// screen.
func (p *previewer) load() {
	models, err := prefabs.LoadFile(p.file)
	if err != nil {
		p.status = err.Error()
		log.Printf("spsa: %v", err)
		return
	}

	ctx := sim.NewContext(config.Default(), 1)
	ctx.Textures = p.textures
	names := map[string]bool{}
	start := -spacing * float64(len(models)-1) / 2
	for i, m := range models {
		p.textures.Forget(m.Sheet.Path)
		e := ecs.CreateEntity(ctx.World)
		if err := ecs.Add(ctx.World, e, component.TransformComponent.Kind(), &component.Transform{X: start + float64(i)*spacing, ScaleX: 1, ScaleY: 1}); err != nil {
			p.status = err.Error()
			return
		}
		if err := m.Spawn(ctx.World, e, p.textures); err != nil {
			p.status = err.Error()
			log.Printf("spsa: %v", err)
			return
		}
		if m.Animation != nil {
			for name := range m.Animation.Clips {
				names[name] = true
			}
		}
	}

	p.ctx = ctx
	p.clips = p.clips[:0]
	for name := range names {
		p.clips = append(p.clips, name)
	}
	sort.Strings(p.clips)
	p.clipIdx = 0
	p.status = fmt.Sprintf("%s: %d models", filepath.Base(p.file), len(models))
}

func (p *previewer) playClip(name string) {
	ecs.ForEach(p.ctx.World, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.AnimationState) {
		if clip, ok := anim.Clips[name]; ok {
			if err := anim.QueueAnimation(name, clip.Looped); err != nil {
				log.Printf("spsa: %v", err)
			}
		}
	})
}

// drainWatch empties the watcher channels without blocking and reports
// whether the previewed file changed. Closed channels are dropped.
func (p *previewer) drainWatch() bool {
	changed := false
	for p.events != nil || p.errs != nil {
		select {
		case path, ok := <-p.events:
			if !ok {
				p.events = nil
				continue
			}
			if filepath.Base(path) == filepath.Base(p.file) {
				changed = true
			}
		case err, ok := <-p.errs:
			if !ok {
				p.errs = nil
				continue
			}
			log.Printf("spsa: watch: %v", err)
		default:
			return changed
		}
	}
	return changed
}

func (p *previewer) Update() error {
	if p.drainWatch() {
		p.load()
	}
	if p.ctx == nil {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(p.clips) > 0 {
		p.clipIdx = (p.clipIdx + 1) % len(p.clips)
		p.playClip(p.clips[p.clipIdx])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.load()
	}

	p.ctx.Clock.Tick(time.Second / time.Duration(ebiten.TPS()))
	p.anim.Update(p.ctx)
	return nil
}

func (p *previewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	if p.ctx != nil {
		p.render.Draw(p.ctx, screen)
	}
	clip := "-"
	if len(p.clips) > 0 {
		clip = p.clips[p.clipIdx]
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s\nclip: %s (tab)  reload: r", p.status, clip), 4, 4)
}

func (p *previewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	file := flag.String("file", "enemies.yaml", "definition file under prefabs/")
	watch := flag.Bool("watch", true, "reload the file when it changes on disk")
	flag.Parse()

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("spsa: watch %s: %v", prefabs.Dir, err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("spsa")
	if err := ebiten.RunGame(newPreviewer(*file, assets.NewTextures("assets"), watcher)); err != nil {
		log.Fatal(err)
	}
}
