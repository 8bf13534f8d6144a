// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// Z layers, low draws first.
const (
	layerBackground = 0
	layerGround     = 1
	layerTrajectory = 2
	layerShell      = 3
	layerBarrel     = 4
	layerCarriage   = 5
	layerHUD        = 10
)

// Screen sizes in pixels for fixed-size sprites.
const (
	carriageWidth  = 32
	carriageHeight = 18
	barrelHeight   = 6
	dotSize        = 3
	minShellSize   = 4
)

// renderEntity bundles an ECS identity with the components registered
// for it. The render system holds pointers to these components, so
// mutating them here moves what is drawn on the next frame.
type renderEntity struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// EngoRenderer implements entity.Renderer using the Engo game engine
type EngoRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem

	// Playfield geometry for world to screen mapping
	env entity.Environment

	// Entity management
	shellEntities map[entity.ID]*renderEntity
	shellSeen     map[entity.ID]bool
	carriage      *renderEntity
	barrel        *renderEntity
	ground        *renderEntity
	background    *renderEntity
	dots          []*renderEntity
	dotsInUse     int

	// Asset management
	assets *AssetManager
}

// NewEngoRenderer creates a new Engo-based renderer
func NewEngoRenderer(world *ecs.World, env entity.Environment) *EngoRenderer {
	return &EngoRenderer{
		world:         world,
		env:           env,
		shellEntities: make(map[entity.ID]*renderEntity),
		shellSeen:     make(map[entity.ID]bool),
		assets:        NewAssetManager(),
	}
}

// Initialize sets up the renderer's systems
func (r *EngoRenderer) Initialize() error {
	// Initialize render system
	r.renderSystem = &common.RenderSystem{}
	r.world.AddSystem(r.renderSystem)

	// Load assets
	if err := r.assets.LoadAssets(); err != nil {
		return err
	}

	// Static scenery exists for the whole scene lifetime
	r.background = r.newRenderEntity(r.assets.GetBackgroundTexture(), color.RGBA{255, 255, 255, 255}, layerBackground)
	r.ground = r.newRenderEntity(r.assets.GetGroundSprite(), color.RGBA{88, 140, 72, 255}, layerGround)
	r.layoutScenery()

	return nil
}

// SetEnvironment updates the playfield geometry, moving the ground band
// when physics parameters change mid-session.
func (r *EngoRenderer) SetEnvironment(env entity.Environment) {
	r.env = env
	if r.ground != nil {
		r.layoutScenery()
	}
}

// Clear implements entity.Renderer. It opens a frame by forgetting which
// shells and trajectory dots the previous frame used.
func (r *EngoRenderer) Clear() {
	for id := range r.shellSeen {
		delete(r.shellSeen, id)
	}
	r.dotsInUse = 0
}

// Present implements entity.Renderer. Shells not rendered this frame are
// dropped from the render system and spare trajectory dots are parked
// offscreen. Engo presents the frame itself.
func (r *EngoRenderer) Present() {
	for id, re := range r.shellEntities {
		if !r.shellSeen[id] {
			r.renderSystem.Remove(re.basic)
			delete(r.shellEntities, id)
		}
	}
	for i := r.dotsInUse; i < len(r.dots); i++ {
		r.dots[i].space.Position = engo.Point{X: -100, Y: -100}
	}
}

// RenderTurret implements entity.Renderer
func (r *EngoRenderer) RenderTurret(turret *entity.Turret) {
	if turret == nil {
		return
	}
	if r.carriage == nil {
		r.barrel = r.newRenderEntity(r.assets.GetBarrelSprite(), color.RGBA{72, 80, 88, 255}, layerBarrel)
		r.carriage = r.newRenderEntity(r.assets.GetCarriageSprite(), color.RGBA{96, 112, 128, 255}, layerCarriage)
	}

	pivot := r.worldToScreen(turret.Position)

	// Carriage sits on the ground line, centered under the pivot
	r.carriage.space.Position = engo.Point{X: pivot.X - carriageWidth/2, Y: pivot.Y - carriageHeight}
	r.carriage.space.Width = carriageWidth
	r.carriage.space.Height = carriageHeight

	// Barrel rotates about its SpaceComponent position, so the rear of
	// the strip stays pinned to the pivot. Rotation is in degrees and
	// negative raises the muzzle in the y-down screen space.
	r.barrel.space.Position = pivot
	r.barrel.space.Width = float32(turret.Stats.BarrelLength) * r.scaleX()
	r.barrel.space.Height = barrelHeight
	r.barrel.space.Rotation = float32(-turret.Angle * 180 / math.Pi)
}

// RenderBullet implements entity.Renderer
func (r *EngoRenderer) RenderBullet(bullet *entity.Bullet) {
	if bullet == nil {
		return
	}
	re := r.getOrCreateShellEntity(bullet.ID, bullet.Cannon)
	r.shellSeen[bullet.ID] = true

	size := float32(bullet.Radius*2) * r.scaleX()
	if size < minShellSize {
		size = minShellSize
	}
	pos := r.worldToScreen(bullet.Position)
	re.space.Position = engo.Point{X: pos.X - size/2, Y: pos.Y - size/2}
	re.space.Width = size
	re.space.Height = size
	re.render.Drawable = r.assets.GetShellSprite(bullet.Cannon)
	re.render.Color = r.getShellColor(bullet.Cannon)
}

// RenderTrajectory implements entity.Renderer. Dots are pooled and reused
// frame to frame; gap sentinels from horizontal wrapping are skipped.
func (r *EngoRenderer) RenderTrajectory(trajectory *entity.Trajectory) {
	if trajectory == nil {
		return
	}
	for _, point := range trajectory.Points {
		if point.Gap {
			continue
		}
		dot := r.dotEntity(r.dotsInUse)
		r.dotsInUse++

		pos := r.worldToScreen(point.Position)
		dot.space.Position = engo.Point{X: pos.X - dotSize/2, Y: pos.Y - dotSize/2}
	}
}

// RemoveShell removes a shell entity from rendering
func (r *EngoRenderer) RemoveShell(id entity.ID) {
	if re, exists := r.shellEntities[id]; exists {
		r.renderSystem.Remove(re.basic)
		delete(r.shellEntities, id)
		delete(r.shellSeen, id)
	}
}

// newRenderEntity registers a drawable with the render system and keeps
// the component pointers for later mutation.
func (r *EngoRenderer) newRenderEntity(drawable common.Drawable, tint color.Color, layer float32) *renderEntity {
	re := &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: drawable,
			Color:    tint,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: -100, Y: -100},
		},
	}
	re.render.SetZIndex(layer)
	r.renderSystem.Add(&re.basic, &re.render, &re.space)
	return re
}

// getOrCreateShellEntity gets an existing shell entity or creates a new one
func (r *EngoRenderer) getOrCreateShellEntity(id entity.ID, cannonName string) *renderEntity {
	if re, exists := r.shellEntities[id]; exists {
		return re
	}
	re := r.newRenderEntity(r.assets.GetShellSprite(cannonName), r.getShellColor(cannonName), layerShell)
	r.shellEntities[id] = re
	return re
}

// dotEntity returns the pooled trajectory dot at index, growing the pool
// as needed.
func (r *EngoRenderer) dotEntity(index int) *renderEntity {
	for len(r.dots) <= index {
		dot := r.newRenderEntity(r.assets.GetDotSprite(), color.RGBA{255, 255, 255, 150}, layerTrajectory)
		dot.space.Width = dotSize
		dot.space.Height = dotSize
		r.dots = append(r.dots, dot)
	}
	return r.dots[index]
}

// layoutScenery stretches the background over the window and the ground
// band from the ground line to the bottom edge.
func (r *EngoRenderer) layoutScenery() {
	width := float32(r.env.PlayfieldWidth) * r.scaleX()
	height := float32(r.env.PlayfieldHeight) * r.scaleY()

	r.background.space.Position = engo.Point{X: 0, Y: 0}
	r.background.space.Width = width
	r.background.space.Height = height

	groundY := float32(r.env.GroundY()) * r.scaleY()
	r.ground.space.Position = engo.Point{X: 0, Y: groundY}
	r.ground.space.Width = width
	r.ground.space.Height = height - groundY
}

// worldToScreen converts world coordinates to screen coordinates
func (r *EngoRenderer) worldToScreen(worldPos physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(worldPos.X) * r.scaleX(),
		Y: float32(worldPos.Y) * r.scaleY(),
	}
}

// scaleX returns the horizontal world-to-pixel factor. Before the window
// exists, engo reports a zero size and the mapping stays 1:1.
func (r *EngoRenderer) scaleX() float32 {
	if w := engo.GameWidth(); w > 0 && r.env.PlayfieldWidth > 0 {
		return w / float32(r.env.PlayfieldWidth)
	}
	return 1
}

func (r *EngoRenderer) scaleY() float32 {
	if h := engo.GameHeight(); h > 0 && r.env.PlayfieldHeight > 0 {
		return h / float32(r.env.PlayfieldHeight)
	}
	return 1
}

// getShellColor returns the tint for a cannon's shells
func (r *EngoRenderer) getShellColor(cannonName string) color.Color {
	shellColors := map[string]color.Color{
		"field gun": color.RGBA{255, 232, 120, 255},
		"mortar":    color.RGBA{255, 150, 60, 255},
	}

	if c, exists := shellColors[cannonName]; exists {
		return c
	}

	return color.RGBA{255, 255, 255, 255} // White for unknown cannons
}
