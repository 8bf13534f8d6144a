// pkg/entity/trajectory.go
package entity

import (
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// simState tracks where the preview is in its lifecycle.
type simState int

const (
	simIdle simState = iota
	simDirty
	simSimulated
)

const (
	// simStep is the fixed sub-step of the preview simulation. The
	// preview always advances in these increments regardless of frame
	// time, so the same aim produces the same arc at any frame rate.
	simStep = 1.0 / 60

	// simMaxIterations bounds one simulation run. A run that exhausts
	// the budget without reaching the ground yields a truncated arc.
	simMaxIterations = 200

	// simSampleEvery thins the recorded points to every third sub-step.
	simSampleEvery = 3
)

// PathPoint is one sampled point of the preview arc. A point with Gap
// set is a discontinuity sentinel: renderers finish the current segment
// before it and start a new one after it.
type PathPoint struct {
	Position physics.Vector2D
	Gap      bool
}

// Trajectory is the predicted shell arc for the current aim. Triggering
// marks it dirty; the next Update then rebuilds the whole arc in one
// synchronous pass. Updates while idle or already simulated leave the
// point sequence untouched.
type Trajectory struct {
	BaseEntity
	Points      []PathPoint
	Iterations  int  // sub-steps consumed by the last simulation
	HitGround   bool // whether the last run reached the ground line
	RenderDirty bool // set after each simulation, cleared by renderers

	state simState
	body  *physics.Body
}

// NewTrajectory creates an idle preview with no points.
func NewTrajectory() *Trajectory {
	return &Trajectory{
		BaseEntity: BaseEntity{
			ID:     GenerateID(),
			Active: true,
		},
	}
}

// Trigger queues a resimulation from origin with the given per-step
// velocity. Triggering again before the next Update just replaces the
// launch state.
func (tr *Trajectory) Trigger(origin, velocity physics.Vector2D) {
	tr.body = physics.NewBody(origin, velocity)
	tr.Position = origin
	tr.state = simDirty
}

// Update resimulates the arc if a Trigger is pending and otherwise does
// nothing.
func (tr *Trajectory) Update(env *Environment, deltaTime float64) {
	if tr.state != simDirty {
		return
	}
	tr.simulate(env)
}

// simulate runs the fixed-step forward simulation under gravity and
// wind. Every third sub-step lands in Points. The arc stops at the
// ground line and wraps across the vertical playfield edges.
func (tr *Trajectory) simulate(env *Environment) {
	tr.Points = tr.Points[:0]
	tr.HitGround = false
	groundY := env.GroundY()

	iterations := 0
	for ; iterations < simMaxIterations; iterations++ {
		if iterations%simSampleEvery == 0 {
			tr.Points = append(tr.Points, PathPoint{Position: tr.body.Position})
		}

		applyBallisticForces(tr.body, env, simStep)
		step := tr.body.Integrate(simStep)

		if step.Position.Y >= groundY {
			tr.Points = append(tr.Points, PathPoint{Position: step.Position})
			tr.HitGround = true
			iterations++
			break
		}

		if step.Position.X < 0 || step.Position.X > env.PlayfieldWidth {
			tr.wrap(env, step)
		}
	}

	tr.Iterations = iterations
	tr.state = simSimulated
	tr.RenderDirty = true
}

// wrap records the exact point where the arc crosses a vertical edge,
// inserts the gap sentinel, and teleports the body to the opposite edge
// with its velocity intact so the flight continues.
func (tr *Trajectory) wrap(env *Environment, step physics.Step) {
	exit := 0.0
	entry := env.PlayfieldWidth
	if step.Position.X > env.PlayfieldWidth {
		exit = env.PlayfieldWidth
		entry = 0
	}

	hit := physics.RayBoundaryIntersection(step.OldPosition, step.Velocity, exit, physics.Vertical)
	if hit.Intersects {
		tr.Points = append(tr.Points, PathPoint{Position: hit.Point})
	}
	tr.Points = append(tr.Points, PathPoint{Gap: true})

	tr.body.Position.X = entry
	tr.body.OldPosition = tr.body.Position.Sub(step.Velocity)

	tr.Points = append(tr.Points, PathPoint{Position: tr.body.Position})
}

// Simulated reports whether the preview holds a computed arc.
func (tr *Trajectory) Simulated() bool {
	return tr.state == simSimulated
}
