// pkg/entity/cannon.go
package entity

import (
	"time"

	"github.com/opd-ai/go-ballista/pkg/physics"
)

// CannonSpec describes one selectable cannon loadout. PowerScale
// multiplies the turret's charged power into the muzzle speed, so a
// heavy cannon can fire slower shells from the same charge.
type CannonSpec struct {
	Name        string
	Cooldown    time.Duration
	ShellRadius float64
	PowerScale  float64
}

// CreateShell builds the projectile this cannon fires. Position is the
// muzzle point and velocity the per-step muzzle displacement.
func (c CannonSpec) CreateShell(position, velocity physics.Vector2D) *Bullet {
	return NewBullet(position, velocity, c.ShellRadius, c.Name)
}

// NewFieldGun creates the default light cannon: quick to reload,
// small shell, full muzzle speed.
func NewFieldGun() CannonSpec {
	return CannonSpec{
		Name:        "field gun",
		Cooldown:    400 * time.Millisecond,
		ShellRadius: 3,
		PowerScale:  1.0,
	}
}

// NewMortar creates the heavy cannon: slow to reload, large shell,
// reduced muzzle speed for high lobbed arcs.
func NewMortar() CannonSpec {
	return CannonSpec{
		Name:        "mortar",
		Cooldown:    1200 * time.Millisecond,
		ShellRadius: 6,
		PowerScale:  0.65,
	}
}

// DefaultCannons returns the built-in cannon catalog in selection order.
func DefaultCannons() []CannonSpec {
	return []CannonSpec{
		NewFieldGun(),
		NewMortar(),
	}
}
