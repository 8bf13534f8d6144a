// pkg/render/engo/input.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballista/pkg/engine"
)

// InputSystem handles keyboard input for the game
type InputSystem struct {
	game *engine.Game

	// Axis state, -1..1
	moveAxis   float64
	aimAxis    float64
	chargeAxis float64

	// Edge-triggered state, latched until the next send so the input
	// delay cannot swallow a key press
	firePending   bool
	cannonPending int

	// Pause is a view concern; the scene stops ticking the game while
	// the flag is set
	paused bool

	// Input timing
	lastInputSent time.Time
	inputDelay    time.Duration
}

// NewInputSystem creates a new input system
func NewInputSystem(game *engine.Game) *InputSystem {
	return &InputSystem{
		game:          game,
		cannonPending: -1,                    // No cannon switch by default
		inputDelay:    time.Millisecond * 50, // Send input every 50ms
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update processes input and forwards commands to the game
func (is *InputSystem) Update(dt float32) {
	// Session controls act immediately, outside the send throttle
	if engo.Input.Button("pause").JustPressed() {
		is.paused = !is.paused
	}
	if engo.Input.Button("reset").JustPressed() {
		is.game.Reset()
		is.paused = false
	}

	// Handle game input
	is.handleGameInput()

	// Forward input to the game if enough time has passed
	if time.Since(is.lastInputSent) >= is.inputDelay {
		is.sendInputToGame()
		is.lastInputSent = time.Now()
	}
}

// handleGameInput polls the button states into axis and edge values
func (is *InputSystem) handleGameInput() {
	is.moveAxis = buttonAxis("moveLeft", "moveRight")
	is.aimAxis = buttonAxis("aimDown", "aimUp")
	is.chargeAxis = buttonAxis("chargeDown", "chargeUp")

	if engo.Input.Button("fire").JustPressed() {
		is.firePending = true
	}

	// Cannon selection (number keys)
	for i := 1; i <= 9; i++ {
		if engo.Input.Button("cannon" + string(rune('0'+i))).JustPressed() {
			is.cannonPending = i - 1 // Convert to 0-based index
		}
	}
}

// sendInputToGame hands the accumulated input state to the engine and
// clears the edge-triggered parts.
func (is *InputSystem) sendInputToGame() {
	is.game.SetInput(engine.Input{
		Move:         is.moveAxis,
		Aim:          is.aimAxis,
		Charge:       is.chargeAxis,
		Fire:         is.firePending,
		SelectCannon: is.cannonPending,
	})

	is.firePending = false
	is.cannonPending = -1
}

// IsPaused returns whether the simulation is paused
func (is *InputSystem) IsPaused() bool {
	return is.paused
}

// buttonAxis folds an opposing button pair into a -1..1 axis value.
func buttonAxis(negative, positive string) float64 {
	axis := 0.0
	if engo.Input.Button(negative).Down() {
		axis -= 1
	}
	if engo.Input.Button(positive).Down() {
		axis += 1
	}
	return axis
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	// Carriage and barrel keys
	engo.Input.RegisterButton("moveLeft", engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton("moveRight", engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton("aimUp", engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton("aimDown", engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton("chargeUp", engo.KeyE)
	engo.Input.RegisterButton("chargeDown", engo.KeyQ)

	// Firing and loadout keys
	engo.Input.RegisterButton("fire", engo.KeySpace)
	engo.Input.RegisterButton("cannon1", engo.KeyOne)
	engo.Input.RegisterButton("cannon2", engo.KeyTwo)
	engo.Input.RegisterButton("cannon3", engo.KeyThree)

	// Session keys
	engo.Input.RegisterButton("pause", engo.KeyP)
	engo.Input.RegisterButton("reset", engo.KeyR)
}
