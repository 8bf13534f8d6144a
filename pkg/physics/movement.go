// pkg/physics/movement.go
package physics

// MovementState tracks driven motion along a single axis, used for the
// turret carriage sliding on the ground line.
type MovementState struct {
	Position float64 // world X of the carriage center
	Velocity float64 // px/s, positive toward +X
	Drive    float64 // px/s^2 applied at full input
	MaxSpeed float64 // px/s ceiling in either direction
}

// UpdateMovement advances the carriage by deltaTime seconds.
// moveInput in [-1, 1] scales the drive acceleration; friction in [0, 1]
// is the fraction of velocity shed per second while coasting or driving.
func UpdateMovement(state *MovementState, deltaTime, moveInput, friction float64) {
	state.Velocity += moveInput * state.Drive * deltaTime

	damping := 1 - friction*deltaTime
	if damping < 0 {
		damping = 0
	}
	state.Velocity *= damping

	if state.Velocity > state.MaxSpeed {
		state.Velocity = state.MaxSpeed
	}
	if state.Velocity < -state.MaxSpeed {
		state.Velocity = -state.MaxSpeed
	}

	state.Position += state.Velocity * deltaTime
}
