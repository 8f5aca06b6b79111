package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/runner/config"
)

func main() {
	debug := flag.Bool("debug", false, "start with the physics debug overlay")
	watch := flag.Bool("watch", false, "reload character definitions when files in prefabs/ change")
	configPath := flag.String("config", "", "YAML file overriding the built-in config")
	seed := flag.Uint64("seed", 1, "seed for enemy picks and spawn intervals")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	scale := cfg.Window.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(cfg.Window.Width)*scale), int(float64(cfg.Window.Height)*scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	game, err := NewGame(cfg, options{debug: *debug, watch: *watch, seed: *seed})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
