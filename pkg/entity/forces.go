// pkg/entity/forces.go
package entity

import (
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// forceScale converts the small per-second gravity and wind settings
// into forces sized for the Verlet integrator, where a force moves a
// body by force*delta^2 per step (about 1/3600 of it at the 1/60 s
// step). Gravity, wind, and the power range are all tuned against this
// value; changing it retunes every shot and preview.
const forceScale = 50000

// applyBallisticForces accumulates gravity and wind on a body, scaled
// for one step of the given duration.
func applyBallisticForces(body *physics.Body, env *Environment, stepDuration float64) {
	body.ApplyForce(physics.Vector2D{Y: env.Gravity * forceScale * stepDuration})
	body.ApplyForce(env.Wind.Scale(forceScale * stepDuration))
}
