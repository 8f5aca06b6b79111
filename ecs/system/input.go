package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/sim"
)

// InputSystem samples the action map once per tick and hands the player's
// actions to every entity with an Input component.
type InputSystem struct {
	poll func() sim.Actions
}

func NewInputSystem() *InputSystem {
	return &InputSystem{poll: pollKeyboard}
}

// NewInputSystemWith uses poll instead of the keyboard.
func NewInputSystemWith(poll func() sim.Actions) *InputSystem {
	return &InputSystem{poll: poll}
}

func (i *InputSystem) Update(ctx *sim.Context) {
	if ctx == nil || i.poll == nil {
		return
	}
	ctx.Input = i.poll()
	actions := ctx.Input

	ecs.ForEach(ctx.World, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Jump = actions.Jump
		input.JumpPressed = actions.JumpPressed
		input.Duck = actions.Duck
	})
}

func pollKeyboard() sim.Actions {
	a := sim.Actions{
		Jump:         ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Duck:         ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		PausePressed: inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
		DebugPressed: inpututil.IsKeyJustPressed(ebiten.KeyF1),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		a.Jump = a.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		a.JumpPressed = a.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		a.Duck = a.Duck || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		a.PausePressed = a.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
	return a
}

// PauseSystem toggles the run between Running and Paused and flips the
// physics debug overlay.
type PauseSystem struct{}

func NewPauseSystem() *PauseSystem {
	return &PauseSystem{}
}

func (p *PauseSystem) Update(ctx *sim.Context) {
	if ctx.Input.PausePressed {
		ctx.States.TogglePause()
	}
	if ctx.Input.DebugPressed {
		ctx.Debug = !ctx.Debug
	}
}
