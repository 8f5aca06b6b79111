package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/sim"
)

var (
	groundColor   = color.RGBA{R: 0x4a, G: 0x3b, B: 0x2f, A: 0xff}
	groundEdge    = color.RGBA{R: 0x7c, G: 0xb3, B: 0x42, A: 0xff}
	missingSprite = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
)

// RenderSystem draws the world through a fixed camera whose origin sits at
// the centre of the screen.
type RenderSystem struct {
	Zoom float64
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Zoom: 1}
}

// Offset is the screen position of world origin.
func (r *RenderSystem) Offset(screen *ebiten.Image) (float64, float64) {
	b := screen.Bounds()
	return float64(b.Dx()) / 2, float64(b.Dy()) / 2
}

func (r *RenderSystem) Draw(ctx *sim.Context, screen *ebiten.Image) {
	if r == nil || ctx == nil || ctx.World == nil || screen == nil {
		return
	}
	w := ctx.World

	zoom := r.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	offX, offY := r.Offset(screen)

	r.drawGround(ctx, screen, offX, offY, zoom)

	entities := w.Query(component.TransformComponent.Kind().ID(), component.SpriteComponent.Kind().ID())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}

		if s.Image == nil {
			// No texture: mark the frame bounds so the entity is still visible.
			fw, fh := float64(s.Source.Dx()), float64(s.Source.Dy())
			if fw == 0 || fh == 0 {
				fw, fh = 2*s.OriginX, 2*s.OriginY
			}
			x := (t.X-s.OriginX)*zoom + offX
			y := (t.Y-s.OriginY)*zoom + offY
			vector.StrokeRect(screen, float32(x), float32(y), float32(fw*zoom), float32(fh*zoom), 1, missingSprite, false)
			continue
		}

		img := s.Image
		if s.UseSource {
			sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image)
			if ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FacingLeft {
			sx = -sx
		}

		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(t.X*zoom+offX, t.Y*zoom+offY)

		screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) drawGround(ctx *sim.Context, screen *ebiten.Image, offX, offY, zoom float64) {
	cfg := ctx.Config
	ecs.ForEach2(ctx.World, component.GroundTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.GroundTag, t *component.Transform) {
		x := (t.X-cfg.World.GroundHalfWidth)*zoom + offX
		top := (t.Y-cfg.World.GroundHalfHeight)*zoom + offY
		width := 2 * cfg.World.GroundHalfWidth * zoom
		// The strip extends to the bottom of the screen.
		height := float64(screen.Bounds().Dy()) - top
		if height <= 0 {
			return
		}
		vector.DrawFilledRect(screen, float32(x), float32(top), float32(width), float32(height), groundColor, false)
		vector.StrokeLine(screen, float32(x), float32(top), float32(x+width), float32(top), 2, groundEdge, false)
	})
}
