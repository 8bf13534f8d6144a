// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	Update(env *Environment, deltaTime float64)
	Render(r Renderer) // Interface for rendering
}

// Environment carries the simulation parameters shared by every entity
// for one tick. The engine rebuilds it from the active config each tick,
// so parameter changes take effect on the next update without any
// global state.
type Environment struct {
	PlayfieldWidth  float64
	PlayfieldHeight float64
	Gravity         float64 // y-down scalar, unscaled config value
	Wind            physics.Vector2D
	Friction        float64
	GroundHeight    float64
}

// GroundY returns the world Y of the ground line.
func (e *Environment) GroundY() float64 {
	return e.PlayfieldHeight - e.GroundHeight
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// Entity.Render() dispatch for each entity type:
func (t *Turret) Render(r Renderer) {
	r.RenderTurret(t)
}

func (b *Bullet) Render(r Renderer) {
	r.RenderBullet(b)
}

func (tr *Trajectory) Render(r Renderer) {
	r.RenderTrajectory(tr)
}

// GenerateID generates a unique ID for entities
// In a real implementation, this would use a more robust approach
var nextID ID = 1

func GenerateID() ID {
	id := nextID
	nextID++
	return id
}
