// pkg/physics/verlet.go
package physics

// Body is a point mass integrated with the two-position Verlet scheme.
// Velocity is implicit: it is the difference between the current and
// previous positions, so the position pair is the complete state.
type Body struct {
	Position    Vector2D
	OldPosition Vector2D

	acceleration Vector2D
}

// Step describes the state of a body after one integration step.
// Velocity is the displacement the step produced, including the
// contribution of forces applied before it.
type Step struct {
	Position    Vector2D
	OldPosition Vector2D
	Velocity    Vector2D
}

// NewBody creates a body at position moving with the given per-step
// velocity. The previous position is back-projected so the first
// integration step reproduces the velocity exactly.
func NewBody(position, velocity Vector2D) *Body {
	return &Body{
		Position:    position,
		OldPosition: position.Sub(velocity),
	}
}

// ApplyForce accumulates a force for the next integration step.
// Calls are additive and order-independent. Bodies have unit mass,
// so force and acceleration coincide.
func (b *Body) ApplyForce(force Vector2D) {
	b.acceleration = b.acceleration.Add(force)
}

// Velocity returns the implicit per-step velocity of the body.
func (b *Body) Velocity() Vector2D {
	return b.Position.Sub(b.OldPosition)
}

// Integrate advances the body by one step of duration delta.
// Accumulated forces contribute acceleration*delta^2 to the displacement
// and are cleared afterwards; a force that should persist must be
// applied again before the next step.
func (b *Body) Integrate(delta float64) Step {
	velocity := b.Position.Sub(b.OldPosition)
	next := b.Position.Add(velocity).Add(b.acceleration.Scale(delta * delta))

	b.OldPosition = b.Position
	b.Position = next
	b.acceleration = Vector2D{}

	return Step{
		Position:    b.Position,
		OldPosition: b.OldPosition,
		Velocity:    b.Position.Sub(b.OldPosition),
	}
}
