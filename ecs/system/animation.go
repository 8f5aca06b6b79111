package system

import (
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/sim"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Update advances every clip state machine and range animation by the
// simulation delta and points the sprite at the resulting frame.
func (a *AnimationSystem) Update(ctx *sim.Context) {
	dt := ctx.Delta()
	w := ctx.World

	ecs.ForEach3(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), component.SpriteSheetComponent.Kind(), func(e ecs.Entity, anim *component.AnimationState, sprite *component.Sprite, sheet *component.SpriteSheet) {
		sprite.Source = sheet.Layout.Frame(anim.Advance(dt))
	})

	ecs.ForEach3(w, component.RangeAnimationComponent.Kind(), component.SpriteComponent.Kind(), component.SpriteSheetComponent.Kind(), func(e ecs.Entity, anim *component.RangeAnimation, sprite *component.Sprite, sheet *component.SpriteSheet) {
		sprite.Source = sheet.Layout.Frame(anim.Advance(dt))
	})
}
