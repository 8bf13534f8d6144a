// pkg/render/engo/scene.go
package engo

import (
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballista/pkg/engine"
	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/event"
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// GameScene represents the main game scene in Engo
type GameScene struct {
	world *ecs.World

	// Simulation
	game     *engine.Game
	eventBus *event.Bus

	// Rendering components
	renderer *EngoRenderer
	recoil   *RecoilSystem
	input    *InputSystem
	hud      *HUDSystem

	// Set by the config event handler, applied on the next frame
	envDirty bool
}

// NewGameScene creates a new game scene around an existing simulation
func NewGameScene(game *engine.Game) *GameScene {
	return &GameScene{
		game:     game,
		eventBus: game.EventBus,
		world:    &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	// Sprites are generated in Setup, nothing to load from disk
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	// Set up the world
	scene.world = &ecs.World{}
	scene.world.AddSystem(&common.MouseSystem{})

	// Initialize renderer; it owns the render system
	state := scene.game.Snapshot()
	scene.renderer = NewEngoRenderer(scene.world, environmentFromParams(state.Params))
	if err := scene.renderer.Initialize(); err != nil {
		panic("Failed to initialize renderer: " + err.Error())
	}

	// Initialize recoil camera system
	scene.recoil = NewRecoilSystem()
	scene.world.AddSystem(scene.recoil)

	// Initialize input system
	scene.input = NewInputSystem(scene.game)
	scene.world.AddSystem(scene.input)

	// Initialize HUD system
	scene.hud = NewHUDSystem(scene.renderer.renderSystem)
	scene.world.AddSystem(scene.hud)

	// The game system ticks the simulation and feeds the renderer
	scene.world.AddSystem(&gameSystem{scene: scene})

	// Register key bindings
	SetupInputBindings()
	SetupCameraControls()

	// Subscribe to events
	scene.subscribeToEvents()

	scene.game.Start()
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	scene.game.Stop()
}

// subscribeToEvents sets up event handlers. The bus dispatches
// synchronously from the simulation step, so handlers stay on the main
// thread but must not call back into locking game methods.
func (scene *GameScene) subscribeToEvents() {
	scene.eventBus.Subscribe(event.ShellFired, func(e event.Event) {
		if ev, ok := e.(*event.ShellEvent); ok {
			scene.recoil.Kick(recoilStrength(ev.Velocity))
			scene.hud.AddMessage(fmt.Sprintf("%s fired", ev.Cannon))
		}
	})

	scene.eventBus.Subscribe(event.ShellDestroyed, func(e event.Event) {
		if ev, ok := e.(*event.ShellImpactEvent); ok {
			scene.renderer.RemoveShell(entity.ID(ev.ShellID))
			scene.hud.AddMessage(impactMessage(ev))
		}
	})

	scene.eventBus.Subscribe(event.ConfigChanged, func(e event.Event) {
		if ev, ok := e.(*event.ConfigEvent); ok {
			scene.envDirty = true
			scene.hud.AddMessage(fmt.Sprintf("%s = %.2f", ev.Field, ev.Value))
		}
	})

	scene.eventBus.Subscribe(event.GameEnded, func(e event.Event) {
		scene.hud.AddMessage("session over")
	})
}

// gameSystem advances the simulation and renders the resulting frame.
type gameSystem struct {
	scene *GameScene
}

// Add satisfies the ecs.System interface
func (gs *gameSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for game system
}

// Remove satisfies the ecs.System interface
func (gs *gameSystem) Remove(basic ecs.BasicEntity) {
	// Not used for game system
}

// Update runs one display frame: tick the simulation unless paused,
// then mirror the snapshot into the scene.
func (gs *gameSystem) Update(dt float32) {
	scene := gs.scene

	if !scene.input.IsPaused() {
		scene.game.Update()
	}

	state := scene.game.Snapshot()

	if scene.envDirty {
		scene.renderer.SetEnvironment(environmentFromParams(state.Params))
		scene.envDirty = false
	}

	scene.updateGame(state)
}

// updateGame renders the current frame from a game snapshot
func (scene *GameScene) updateGame(state *engine.GameState) {
	// Clear the previous frame
	scene.renderer.Clear()

	// Render the trajectory preview
	scene.renderer.RenderTrajectory(scene.convertTrajectoryStateToEntity(state.Trajectory))

	// Render shells
	for _, shellState := range state.Shells {
		shell := scene.convertShellStateToEntity(shellState)
		scene.renderer.RenderBullet(shell)
	}

	// Render the turret
	scene.renderer.RenderTurret(scene.convertTurretStateToEntity(state.Turret))

	// Update HUD with current game state
	scene.hud.UpdateGameState(state)

	// Present the rendered frame
	scene.renderer.Present()
}

// convertTurretStateToEntity converts a TurretState to a Turret entity
// for rendering
func (scene *GameScene) convertTurretStateToEntity(turretState engine.TurretState) *entity.Turret {
	return &entity.Turret{
		BaseEntity: entity.BaseEntity{
			ID:       turretState.ID,
			Position: turretState.Position,
			Active:   true,
		},
		Stats: entity.TurretStats{
			BarrelLength: turretState.BarrelLength,
		},
		Angle: turretState.Angle,
		Power: turretState.Power,
	}
}

// convertShellStateToEntity converts a ShellState to a Bullet entity for
// rendering, keeping the ID stable so the renderer can reuse its entity
func (scene *GameScene) convertShellStateToEntity(shellState engine.ShellState) *entity.Bullet {
	return &entity.Bullet{
		BaseEntity: entity.BaseEntity{
			ID:       shellState.ID,
			Position: shellState.Position,
			Active:   true,
		},
		Cannon: shellState.Cannon,
		Radius: shellState.Radius,
	}
}

// convertTrajectoryStateToEntity converts a TrajectoryState to a
// Trajectory entity for rendering
func (scene *GameScene) convertTrajectoryStateToEntity(trajectoryState engine.TrajectoryState) *entity.Trajectory {
	return &entity.Trajectory{
		Points:     trajectoryState.Points,
		Iterations: trajectoryState.Iterations,
		HitGround:  trajectoryState.HitGround,
	}
}

// environmentFromParams rebuilds the playfield geometry the renderer
// scales against from a snapshot's parameters.
func environmentFromParams(params engine.ParamState) entity.Environment {
	return entity.Environment{
		PlayfieldWidth:  params.PlayfieldWidth,
		PlayfieldHeight: params.PlayfieldHeight,
		Gravity:         params.Gravity,
		Wind:            params.Wind,
		Friction:        params.Friction,
		GroundHeight:    params.GroundHeight,
	}
}

// recoilStrength maps muzzle velocity onto a camera kick in pixels.
func recoilStrength(velocity physics.Vector2D) float32 {
	return 2 + float32(velocity.Length())*0.15
}

// impactMessage describes a shell impact for the session log.
func impactMessage(ev *event.ShellImpactEvent) string {
	if ev.Reason == string(entity.DestroyedGround) {
		return fmt.Sprintf("shell hit the ground at x=%.0f", ev.Position.X)
	}
	return "shell left the field"
}
