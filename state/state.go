package state

import "log"

type AppState int

const (
	MainMenu AppState = iota
	Game
	GameOver
)

func (s AppState) String() string {
	switch s {
	case MainMenu:
		return "main_menu"
	case Game:
		return "game"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

type GameState int

const (
	Paused GameState = iota
	Running
)

func (s GameState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// maxTransitionsPerApply bounds hook chains that keep requesting new
// states.
const maxTransitionsPerApply = 16

// Machine tracks AppState and GameState side by side. Transitions are
// requested during a tick and take effect when Apply runs, firing the exit
// hooks of the old state and the enter hooks of the new one.
type Machine struct {
	app  AppState
	game GameState

	nextApp     AppState
	hasNextApp  bool
	nextGame    GameState
	hasNextGame bool

	enterApp  map[AppState][]func()
	exitApp   map[AppState][]func()
	enterGame map[GameState][]func()
}

// appEdges lists the AppState transitions a run may take.
var appEdges = map[AppState][]AppState{
	MainMenu: {Game},
	Game:     {GameOver},
	GameOver: {Game, MainMenu},
}

// CanTransition reports whether the app may move from one state to another.
func CanTransition(from, to AppState) bool {
	for _, next := range appEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NewMachine starts in MainMenu with the game Paused.
func NewMachine() *Machine {
	return &Machine{
		app:       MainMenu,
		game:      Paused,
		enterApp:  make(map[AppState][]func()),
		exitApp:   make(map[AppState][]func()),
		enterGame: make(map[GameState][]func()),
	}
}

func (m *Machine) App() AppState { return m.app }
func (m *Machine) Game() GameState { return m.game }

func (m *Machine) RequestApp(s AppState) {
	m.nextApp = s
	m.hasNextApp = true
}

func (m *Machine) RequestGame(s GameState) {
	m.nextGame = s
	m.hasNextGame = true
}

// Pending reports whether a transition is waiting for Apply.
func (m *Machine) Pending() bool {
	return m.hasNextApp || m.hasNextGame
}

func (m *Machine) OnEnterApp(s AppState, fn func()) { m.enterApp[s] = append(m.enterApp[s], fn) }
func (m *Machine) OnExitApp(s AppState, fn func()) { m.exitApp[s] = append(m.exitApp[s], fn) }
func (m *Machine) OnEnterGame(s GameState, fn func()) { m.enterGame[s] = append(m.enterGame[s], fn) }

// Start fires the enter hooks of the initial states, then applies whatever
// they requested.
func (m *Machine) Start() {
	run(m.enterApp[m.app])
	run(m.enterGame[m.game])
	m.Apply()
}

// TogglePause flips GameState while a run is in progress. It reports false
// outside AppState Game.
func (m *Machine) TogglePause() bool {
	if m.app != Game {
		return false
	}
	current := m.game
	if m.hasNextGame {
		current = m.nextGame
	}
	if current == Running {
		m.RequestGame(Paused)
	} else {
		m.RequestGame(Running)
	}
	return true
}

// Apply performs pending transitions until none remain, app state first.
// Requesting the current state is a no-op and an app transition outside
// the run graph is logged and dropped. It returns the number of
// transitions performed.
func (m *Machine) Apply() int {
	n := 0
	for m.Pending() {
		if n >= maxTransitionsPerApply {
			log.Printf("state: transition chain exceeded %d steps, dropping app=%v game=%v", maxTransitionsPerApply, m.hasNextApp, m.hasNextGame)
			m.hasNextApp, m.hasNextGame = false, false
			break
		}
		if m.hasNextApp {
			next := m.nextApp
			m.hasNextApp = false
			if next != m.app && !CanTransition(m.app, next) {
				log.Printf("state: dropping app transition %v -> %v", m.app, next)
				continue
			}
			if next != m.app {
				prev := m.app
				run(m.exitApp[prev])
				m.app = next
				run(m.enterApp[next])
				n++
			}
			continue
		}
		next := m.nextGame
		m.hasNextGame = false
		if next != m.game {
			m.game = next
			run(m.enterGame[next])
			n++
		}
	}
	return n
}

func run(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
}
