package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/runner/sim"
	"github.com/milk9111/runner/state"
)

var (
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelFill = color.NRGBA{A: 200}
	buttonBg  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	buttonHot = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// Screens owns the menus drawn over the run: the main menu, the game over
// panel and the pause overlay. Buttons request state transitions; the
// scheduler applies them on its next tick. A paused run can only be
// resumed, the main menu is reached through game over.
type Screens struct {
	ctx  *sim.Context
	face ebtext.Face
	fade *Fade

	menu  *ebitenui.UI
	over  *ebitenui.UI
	pause *ebitenui.UI

	survived *widget.Text
	runStart time.Duration

	// Quit is set once the player asks to leave from the main menu.
	Quit bool
}

// NewScreens builds the menus and registers the hooks that keep them in
// step with the state machine. Call it before ctx.States.Start.
func NewScreens(ctx *sim.Context, width, height int) *Screens {
	s := &Screens{
		ctx:  ctx,
		face: ebtext.NewGoXFace(basicfont.Face7x13),
		fade: NewFade(),
	}

	s.menu = s.panel(width, height, "RUNNER",
		s.button("Start", func() { ctx.States.RequestApp(state.Game) }),
		s.button("Quit", func() { s.Quit = true }),
	)

	s.survived = widget.NewText(
		widget.TextOpts.Text("", &s.face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	s.over = s.panel(width, height, "GAME OVER",
		s.survived,
		s.button("Restart", func() { ctx.States.RequestApp(state.Game) }),
		s.button("Main Menu", func() { ctx.States.RequestApp(state.MainMenu) }),
	)

	s.pause = s.panel(width, height, "Paused",
		s.button("Resume", func() { ctx.States.TogglePause() }),
	)

	ctx.States.OnEnterApp(state.Game, func() {
		s.runStart = ctx.Clock.Elapsed()
		s.fade.Start()
	})
	ctx.States.OnExitApp(state.Game, func() {
		s.survived.Label = FormatSurvived(ctx.Clock.Elapsed() - s.runStart)
	})
	ctx.States.OnEnterApp(state.GameOver, s.fade.Start)
	ctx.States.OnEnterApp(state.MainMenu, s.fade.Start)
	return s
}

// FormatSurvived renders a run length for the game over panel.
func FormatSurvived(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("Survived %.1fs", d.Seconds())
}

// Active returns the menu for the current state, or nil during play.
func (s *Screens) Active() *ebitenui.UI {
	switch s.ctx.States.App() {
	case state.MainMenu:
		return s.menu
	case state.GameOver:
		return s.over
	case state.Game:
		if s.ctx.States.Game() == state.Paused && !s.ctx.States.Pending() {
			return s.pause
		}
	}
	return nil
}

// Update runs the active menu and the fade. dt is real time so the fade
// keeps moving while the run is paused.
func (s *Screens) Update(dt time.Duration) {
	s.fade.Update(float32(dt.Seconds()))

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch s.ctx.States.App() {
		case state.MainMenu, state.GameOver:
			s.ctx.States.RequestApp(state.Game)
		}
	}

	if ui := s.Active(); ui != nil {
		ui.Update()
	}
}

func (s *Screens) Draw(screen *ebiten.Image) {
	if ui := s.Active(); ui != nil {
		ui.Draw(screen)
	}
	if a := s.fade.Alpha(); a > 0 {
		b := screen.Bounds()
		vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.NRGBA{A: a}, false)
	}
}

func (s *Screens) button(label string, onClick func()) *widget.Button {
	idle := imageui.NewNineSliceColor(buttonBg)
	hot := imageui.NewNineSliceColor(buttonHot)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: hot, Pressed: hot}),
		widget.ButtonOpts.Text(label, &s.face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.TextPadding(&widget.Insets{Top: 4, Bottom: 4, Left: 12, Right: 12}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
			Stretch:  true,
		})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// panel centers a titled vertical column of widgets on the screen.
func (s *Screens) panel(width, height int, title string, children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	heading := widget.NewText(
		widget.TextOpts.Text(title, &s.face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	box := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelFill)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/3, height/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	box.AddChild(heading)
	for _, c := range children {
		box.AddChild(c)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(box)
	return &ebitenui.UI{Container: root}
}
