// pkg/render/tui/model.go
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/opd-ai/go-ballista/pkg/engine"
	"github.com/opd-ai/go-ballista/pkg/render"
)

// TickMsg drives the simulation at the render rate.
type TickMsg time.Time

// tickCmd schedules the next simulation tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// paramOrder lists the live-tunable physics parameters in the order
// Tab walks them in the side panel.
var paramOrder = []string{"gravity", "windX", "friction", "groundHeight"}

// paramSteps holds the per-keypress adjustment for each tunable.
var paramSteps = map[string]float64{
	"gravity":      0.5,
	"windX":        0.5,
	"friction":     0.05,
	"groundHeight": 5,
}

// inputHoldTicks is how many simulation ticks a key press keeps its
// axis engaged. Terminals deliver no key-release events, so each press
// latches for a short burst and auto-repeat keeps the latch fresh
// while the key stays down.
const inputHoldTicks = 8

// axisHold keeps a pressed direction alive across ticks.
type axisHold struct {
	dir   float64
	ticks int
}

func (a *axisHold) press(dir float64) {
	a.dir = dir
	a.ticks = inputHoldTicks
}

func (a *axisHold) value() float64 {
	if a.ticks > 0 {
		return a.dir
	}
	return 0
}

func (a *axisHold) decay() {
	if a.ticks > 0 {
		a.ticks--
	}
}

// Model is the bubbletea model for the terminal frontend. It ticks the
// simulation at 60 Hz, draws the playfield through a TerminalRenderer
// and keeps a side panel with aim readouts, live physics tuning and a
// preview height plot.
type Model struct {
	game     *engine.Game
	renderer *render.TerminalRenderer
	state    *engine.GameState

	move   axisHold
	aim    axisHold
	charge axisHold

	firePending   bool
	cannonPending int

	paused   bool
	selected int

	powerSpring harmonica.Spring
	powerPos    float64
	powerVel    float64

	playCols int
	playRows int
}

// NewModel builds the frontend model around a prepared game.
func NewModel(game *engine.Game) Model {
	state := game.Snapshot()

	return Model{
		game:          game,
		renderer:      render.NewTerminalRenderer(defaultPlayCols, defaultPlayRows, environmentFromParams(state.Params)),
		state:         state,
		cannonPending: -1,
		powerSpring:   harmonica.NewSpring(harmonica.FPS(60), 8.0, 0.9),
		powerPos:      state.Turret.Power,
		playCols:      defaultPlayCols,
		playRows:      defaultPlayRows,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if !m.paused {
			m.game.SetInput(m.consumeInput())
			m.game.Update()
		}
		m.state = m.game.Snapshot()
		m.powerPos, m.powerVel = m.powerSpring.Update(m.powerPos, m.powerVel, m.state.Turret.Power)
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.playCols, m.playRows = playfieldSize(msg.Width, msg.Height)
		m.renderer = render.NewTerminalRenderer(m.playCols, m.playRows, environmentFromParams(m.state.Params))
		return m, nil
	}

	return m, nil
}

// handleKey routes a key press. Movement and aim keys latch their axis
// for a few ticks, fire and cannon selection latch until the next tick
// consumes them, everything else acts immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		m.move.press(-1)
	case "d":
		m.move.press(1)
	case "w":
		m.aim.press(1)
	case "s":
		m.aim.press(-1)
	case "+", "=":
		m.charge.press(1)
	case "-", "_":
		m.charge.press(-1)
	case "f", " ":
		m.firePending = true
	case "1", "2", "3":
		m.cannonPending = int(msg.String()[0] - '1')
	case "p":
		m.paused = !m.paused
	case "r":
		m.game.Reset()
		m.paused = false
	case "tab":
		m.selected = (m.selected + 1) % len(paramOrder)
	case "up", "k":
		m.adjustParam(1)
	case "down", "j":
		m.adjustParam(-1)
	}
	return m, nil
}

// consumeInput folds the latched key state into one engine input and
// ages the latches. Fire and cannon selection are one-shot.
func (m *Model) consumeInput() engine.Input {
	in := engine.Input{
		Move:         m.move.value(),
		Aim:          m.aim.value(),
		Charge:       m.charge.value(),
		Fire:         m.firePending,
		SelectCannon: m.cannonPending,
	}

	m.move.decay()
	m.aim.decay()
	m.charge.decay()
	m.firePending = false
	m.cannonPending = -1

	return in
}

// adjustParam nudges the selected physics parameter. SetPhysicsParam
// keeps the loaded config in step and publishes the change, so tuned
// values survive a later SaveConfig and other frontends hear about it.
func (m Model) adjustParam(dir float64) {
	name := paramOrder[m.selected]
	value := clampParam(name, m.paramValue(name)+dir*paramSteps[name], m.state.Params)
	m.game.SetPhysicsParam(name, value)
}

// paramValue reads the current value of a tunable from the last
// snapshot.
func (m Model) paramValue(name string) float64 {
	switch name {
	case "gravity":
		return m.state.Params.Gravity
	case "windX":
		return m.state.Params.Wind.X
	case "friction":
		return m.state.Params.Friction
	case "groundHeight":
		return m.state.Params.GroundHeight
	}
	return 0
}

// clampParam keeps live edits inside the ranges config validation
// accepts, so a tuned session can still be saved back out.
func clampParam(name string, value float64, params engine.ParamState) float64 {
	switch name {
	case "gravity":
		if value < 0 {
			return 0
		}
	case "friction":
		if value < 0 {
			return 0
		}
		if value > 1 {
			return 1
		}
	case "groundHeight":
		if value < 0 {
			return 0
		}
		if limit := params.PlayfieldHeight - 1; value > limit {
			return limit
		}
	}
	return value
}

// Run starts the terminal frontend and blocks until the player quits.
func Run(game *engine.Game) error {
	game.Start()
	defer game.Stop()

	program := tea.NewProgram(NewModel(game), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal frontend: %w", err)
	}

	return nil
}
