// pkg/entity/bullet.go
package entity

import (
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// DestroyReason says why a shell left play.
type DestroyReason string

const (
	DestroyedGround      DestroyReason = "ground"
	DestroyedOutOfBounds DestroyReason = "out_of_bounds"
)

// Bullet is a live shell in flight. Unlike the trajectory preview it
// integrates with real frame time and never wraps: leaving the
// playfield sideways destroys it.
type Bullet struct {
	BaseEntity
	Cannon    string
	Radius    float64
	Destroyed DestroyReason // set when Active drops to false

	body *physics.Body
}

// NewBullet creates a shell at position moving with the given per-step
// velocity.
func NewBullet(position, velocity physics.Vector2D, radius float64, cannon string) *Bullet {
	return &Bullet{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Active:   true,
		},
		Cannon: cannon,
		Radius: radius,
		body:   physics.NewBody(position, velocity),
	}
}

// Update flies the shell for one frame under gravity and wind, then
// checks for ground impact and the playfield side edges. The shell's
// bottom edge, not its center, decides the ground hit.
func (b *Bullet) Update(env *Environment, deltaTime float64) {
	if !b.Active {
		return
	}

	applyBallisticForces(b.body, env, deltaTime)
	step := b.body.Integrate(deltaTime)
	b.Position = step.Position

	if b.Position.Y+b.Radius >= env.GroundY() {
		b.Active = false
		b.Destroyed = DestroyedGround
		return
	}

	if b.Position.X < 0 || b.Position.X > env.PlayfieldWidth {
		b.Active = false
		b.Destroyed = DestroyedOutOfBounds
	}
}

// Velocity returns the shell's current per-step displacement.
func (b *Bullet) Velocity() physics.Vector2D {
	return b.body.Velocity()
}
