// pkg/entity/turret.go
package entity

import (
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// TurretStats contains the tuning parameters for the player turret.
type TurretStats struct {
	MoveSpeed    float64 // carriage px/s at full drive
	AimSpeed     float64 // rad/s at full aim input
	MinAngle     float64 // radians above the horizon
	MaxAngle     float64
	PowerMin     float64 // muzzle speed, px per 1/60 s step
	PowerMax     float64
	ChargeRate   float64 // power units/s at full charge input
	BarrelLength float64
}

// Turret is the player-controlled artillery piece. The carriage slides
// along the ground line; the barrel aims above the horizon. Input
// fields are written by the engine each tick and consumed by Update.
type Turret struct {
	BaseEntity
	Stats    TurretStats
	Movement physics.MovementState
	Angle    float64 // radians above the horizon, y-down world
	Power    float64 // muzzle speed, px per 1/60 s step
	Cannons  []CannonSpec
	Selected int

	MoveInput   float64 // -1..1
	AimInput    float64 // -1..1, positive raises the barrel
	ChargeInput float64 // -1..1, positive charges up

	cooldown float64 // seconds until the next shot
}

// NewTurret creates a turret resting on the ground line at startX.
func NewTurret(startX, startAngle, startPower float64, stats TurretStats, cannons []CannonSpec) *Turret {
	if len(cannons) == 0 {
		cannons = DefaultCannons()
	}

	return &Turret{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: physics.Vector2D{X: startX},
			Active:   true,
		},
		Stats: stats,
		Movement: physics.MovementState{
			Position: startX,
			Drive:    stats.MoveSpeed * 4,
			MaxSpeed: stats.MoveSpeed,
		},
		Angle:   clamp(startAngle, stats.MinAngle, stats.MaxAngle),
		Power:   clamp(startPower, stats.PowerMin, stats.PowerMax),
		Cannons: cannons,
	}
}

// Update handles the turret's state update for a single game tick:
// carriage drive with friction, aim and charge rates, cooldown.
func (t *Turret) Update(env *Environment, deltaTime float64) {
	physics.UpdateMovement(&t.Movement, deltaTime, t.MoveInput, env.Friction)

	margin := t.Stats.BarrelLength
	if t.Movement.Position < margin {
		t.Movement.Position = margin
		t.Movement.Velocity = 0
	}
	if t.Movement.Position > env.PlayfieldWidth-margin {
		t.Movement.Position = env.PlayfieldWidth - margin
		t.Movement.Velocity = 0
	}

	t.Angle = clamp(t.Angle+t.AimInput*t.Stats.AimSpeed*deltaTime, t.Stats.MinAngle, t.Stats.MaxAngle)
	t.Power = clamp(t.Power+t.ChargeInput*t.Stats.ChargeRate*deltaTime, t.Stats.PowerMin, t.Stats.PowerMax)

	if t.cooldown > 0 {
		t.cooldown -= deltaTime
		if t.cooldown < 0 {
			t.cooldown = 0
		}
	}

	t.Position = physics.Vector2D{X: t.Movement.Position, Y: env.GroundY()}
}

// SelectCannon switches to the cannon at index, ignoring out-of-range
// values. The reload in progress carries over.
func (t *Turret) SelectCannon(index int) {
	if index < 0 || index >= len(t.Cannons) {
		return
	}
	t.Selected = index
}

// SelectedCannon returns the active cannon spec.
func (t *Turret) SelectedCannon() CannonSpec {
	return t.Cannons[t.Selected]
}

// MuzzlePosition returns the world position of the barrel tip.
func (t *Turret) MuzzlePosition() physics.Vector2D {
	return t.Position.Add(physics.FromAngle(-t.Angle, t.Stats.BarrelLength))
}

// MuzzleVelocity returns the per-step displacement a shell leaves the
// barrel with. Up is negative Y, so the aim angle is negated.
func (t *Turret) MuzzleVelocity() physics.Vector2D {
	return physics.FromAngle(-t.Angle, t.Power*t.SelectedCannon().PowerScale)
}

// Fire attempts to fire the selected cannon. It returns nil while the
// cannon is reloading; otherwise it creates the shell and starts the
// cooldown.
func (t *Turret) Fire() *Bullet {
	if t.cooldown > 0 {
		return nil
	}

	cannon := t.SelectedCannon()
	t.cooldown = cannon.Cooldown.Seconds()

	return cannon.CreateShell(t.MuzzlePosition(), t.MuzzleVelocity())
}

// CooldownRemaining returns the seconds left until the turret may fire.
func (t *Turret) CooldownRemaining() float64 {
	return t.cooldown
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
