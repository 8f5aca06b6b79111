package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/runner/common"
)

const fadeSeconds = 0.4

// Fade is the black overlay that eases out after a screen change.
type Fade struct {
	tween *gween.Tween
	value float32
}

func NewFade() *Fade {
	return &Fade{}
}

// Start covers the screen and begins easing the overlay away.
func (f *Fade) Start() {
	f.tween = gween.New(1, 0, fadeSeconds, ease.OutQuad)
	f.value = 1
}

// Update advances the fade by dt seconds of real time.
func (f *Fade) Update(dt float32) {
	if f.tween == nil {
		return
	}
	v, done := f.tween.Update(dt)
	f.value = common.Clamp01(v)
	if done {
		f.tween = nil
		f.value = 0
	}
}

// Alpha is the overlay opacity in [0,255].
func (f *Fade) Alpha() uint8 {
	return uint8(common.Lerp(0, 255, f.value))
}

func (f *Fade) Active() bool {
	return f.tween != nil
}
