// pkg/render/engo/recoil.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
)

// maxShakeAmplitude caps the camera displacement in pixels no matter how
// fast the player fires.
const maxShakeAmplitude = 12.0

// RecoilSystem manages the game camera: recoil shake when a shot is
// fired, and zoom controls. Shake is applied as incremental camera
// moves that always net back to zero, so the view never drifts.
type RecoilSystem struct {
	// Shake state
	amplitude float32
	damping   float32
	frequency float32
	elapsed   float32

	// Camera displacement currently applied
	offset engo.Point

	// Zoom properties
	zoom       float32
	minZoom    float32
	maxZoom    float32
	zoomActive bool
}

// NewRecoilSystem creates a new recoil camera system
func NewRecoilSystem() *RecoilSystem {
	return &RecoilSystem{
		damping:   6.0,
		frequency: 24.0,
		zoom:      1.0,
		minZoom:   0.5,
		maxZoom:   2.5,
	}
}

// Add satisfies the ecs.System interface
func (rs *RecoilSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for recoil system
}

// Remove satisfies the ecs.System interface
func (rs *RecoilSystem) Remove(basic ecs.BasicEntity) {
	// Not used for recoil system
}

// Update advances the shake envelope and processes zoom input
func (rs *RecoilSystem) Update(dt float32) {
	// Handle zoom input
	rs.handleZoomInput()

	// Update shake displacement
	rs.updateShake(dt)
}

// Kick starts or reinforces the camera shake. Strength is in pixels.
func (rs *RecoilSystem) Kick(strength float32) {
	rs.amplitude += strength
	if rs.amplitude > maxShakeAmplitude {
		rs.amplitude = maxShakeAmplitude
	}
	rs.elapsed = 0
}

// updateShake moves the camera along a decaying oscillation and returns
// it to rest once the amplitude has died out.
func (rs *RecoilSystem) updateShake(dt float32) {
	if rs.amplitude < 0.5 {
		if rs.offset.X != 0 || rs.offset.Y != 0 {
			rs.moveCamera(engo.Point{X: 0, Y: 0})
		}
		rs.amplitude = 0
		return
	}

	rs.elapsed += dt
	phase := float64(rs.elapsed * rs.frequency)
	target := engo.Point{
		X: rs.amplitude * float32(math.Sin(2*math.Pi*phase)),
		Y: rs.amplitude * 0.4 * float32(math.Cos(2*math.Pi*phase)),
	}
	rs.moveCamera(target)

	rs.amplitude *= float32(math.Exp(-float64(rs.damping) * float64(dt)))
}

// moveCamera dispatches the incremental moves that bring the camera
// displacement to target.
func (rs *RecoilSystem) moveCamera(target engo.Point) {
	if dx := target.X - rs.offset.X; dx != 0 {
		engo.Mailbox.Dispatch(common.CameraMessage{
			Axis:        common.XAxis,
			Value:       dx,
			Incremental: true,
		})
	}
	if dy := target.Y - rs.offset.Y; dy != 0 {
		engo.Mailbox.Dispatch(common.CameraMessage{
			Axis:        common.YAxis,
			Value:       dy,
			Incremental: true,
		})
	}
	rs.offset = target
}

// handleZoomInput processes zoom-related input
func (rs *RecoilSystem) handleZoomInput() {
	// Mouse wheel zoom
	scrollY := engo.Input.Mouse.ScrollY
	if scrollY != 0 {
		zoomFactor := float32(1.0 + scrollY*0.1)
		rs.SetZoom(rs.zoom * zoomFactor)
	}

	// Keyboard zoom
	if engo.Input.Button("zoomIn").Down() {
		rs.SetZoom(rs.zoom * 1.02)
	}
	if engo.Input.Button("zoomOut").Down() {
		rs.SetZoom(rs.zoom * 0.98)
	}

	// Reset zoom
	if engo.Input.Button("resetZoom").JustPressed() {
		rs.SetZoom(1.0)
	}

	if rs.zoomActive {
		engo.Mailbox.Dispatch(common.CameraMessage{
			Axis:  common.ZAxis,
			Value: rs.zoom,
		})
		rs.zoomActive = false
	}
}

// SetZoom sets the camera zoom level
func (rs *RecoilSystem) SetZoom(zoom float32) {
	clamped := rs.clampZoom(zoom)
	if clamped != rs.zoom {
		rs.zoom = clamped
		rs.zoomActive = true
	}
}

// GetZoom returns the current zoom level
func (rs *RecoilSystem) GetZoom() float32 {
	return rs.zoom
}

// clampZoom ensures zoom is within valid bounds
func (rs *RecoilSystem) clampZoom(zoom float32) float32 {
	if zoom < rs.minZoom {
		return rs.minZoom
	}
	if zoom > rs.maxZoom {
		return rs.maxZoom
	}
	return zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (rs *RecoilSystem) SetZoomLimits(min, max float32) {
	rs.minZoom = min
	rs.maxZoom = max
	rs.zoom = rs.clampZoom(rs.zoom)
}

// GetZoomLimits returns the current zoom limits
func (rs *RecoilSystem) GetZoomLimits() (float32, float32) {
	return rs.minZoom, rs.maxZoom
}

// Amplitude returns the current shake strength in pixels
func (rs *RecoilSystem) Amplitude() float32 {
	return rs.amplitude
}

// Offset returns the camera displacement currently applied
func (rs *RecoilSystem) Offset() engo.Point {
	return rs.offset
}

// SetDamping sets the shake decay rate
func (rs *RecoilSystem) SetDamping(damping float32) {
	rs.damping = damping
}

// GetDamping returns the shake decay rate
func (rs *RecoilSystem) GetDamping() float32 {
	return rs.damping
}

// SetupCameraControls sets up camera control key bindings
func SetupCameraControls() {
	engo.Input.RegisterButton("zoomIn", engo.KeyI)
	engo.Input.RegisterButton("zoomOut", engo.KeyO)
	engo.Input.RegisterButton("resetZoom", engo.KeyZ)
}
