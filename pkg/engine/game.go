// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/opd-ai/go-ballista/pkg/config"
	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/event"
	"github.com/opd-ai/go-ballista/pkg/physics"
	"github.com/opd-ai/go-ballista/pkg/resource"
)

// GameStatus represents the current state of the session
type GameStatus int

const (
	// GameStatusWaiting means the game has not started
	GameStatusWaiting GameStatus = iota
	// GameStatusActive means the simulation is running
	GameStatusActive
	// GameStatusEnded means the session finished
	GameStatusEnded
)

// String returns a human-readable status name
func (gs GameStatus) String() string {
	switch gs {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Input carries the player intent for the next tick. Move, Aim and
// Charge are rates in -1..1 and persist until replaced; Fire and
// SelectCannon are one-shot and consumed by the tick that sees them.
// A negative SelectCannon leaves the selection alone.
type Input struct {
	Move         float64
	Aim          float64
	Charge       float64
	Fire         bool
	SelectCannon int
}

// SessionStats counts what happened since the session started.
type SessionStats struct {
	ShotsFired    int
	GroundImpacts int
	OutOfBounds   int
}

// aimSignature captures everything that shapes the preview arc. The
// engine retriggers the trajectory whenever the signature changes, so
// moving the carriage, touching the aim or editing a physics parameter
// all refresh the preview on the next tick. Carriage friction is
// absent: it damps the carriage, never a shell in flight.
type aimSignature struct {
	muzzle   physics.Vector2D
	velocity physics.Vector2D
	gravity  float64
	wind     physics.Vector2D
	groundY  float64
	width    float64
}

// Game holds the complete simulation state: the turret, the shells in
// flight, the trajectory preview and the environment they share. All
// mutation happens under EntityLock, one tick at a time.
type Game struct {
	Config *config.GameConfig
	Env    entity.Environment

	Turret     *entity.Turret
	Shells     map[entity.ID]*entity.Bullet
	Trajectory *entity.Trajectory

	// EntityLock protects all game state during updates
	EntityLock sync.RWMutex

	Running     bool
	Status      GameStatus
	CurrentTick uint64
	StartTime   time.Time
	EndTime     time.Time
	ElapsedTime float64
	LastUpdate  time.Time

	Stats SessionStats

	EventBus        *event.Bus
	ResourceManager *resource.ResourceManager

	input   Input
	lastAim aimSignature
}

// NewGame creates a new game from the given configuration. A nil
// config falls back to the defaults.
func NewGame(cfg *config.GameConfig) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	turret := entity.NewTurret(
		cfg.Turret.StartX,
		cfg.Turret.StartAngle,
		cfg.Turret.StartPower,
		cfg.Turret.Stats(),
		cfg.CannonSpecs(),
	)

	return &Game{
		Config:     cfg,
		Env:        cfg.Environment(),
		Turret:     turret,
		Shells:     make(map[entity.ID]*entity.Bullet),
		Trajectory: entity.NewTrajectory(),
		Status:     GameStatusWaiting,
		EventBus:   event.NewEventBus(),
		input:      Input{SelectCannon: -1},
	}
}

// InitializeResourceManager sets up resource monitoring for the game.
// It reads limits from the environment and falls back to safe defaults
// when the environment is not configured.
func (g *Game) InitializeResourceManager() error {
	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		envConfig = &config.EnvironmentConfig{
			MaxMemoryMB:           500,
			MaxGoroutines:         100,
			ShutdownTimeout:       30 * time.Second,
			ResourceCheckInterval: 10 * time.Second,
		}
	}

	g.ResourceManager = resource.NewResourceManager(envConfig)
	if err := g.ResourceManager.Start(); err != nil {
		return fmt.Errorf("failed to start resource manager: %w", err)
	}

	return nil
}

// Start begins the session and publishes GameStarted.
func (g *Game) Start() {
	g.EntityLock.Lock()
	g.Running = true
	g.Status = GameStatusActive
	now := time.Now()
	g.StartTime = now
	g.LastUpdate = now
	g.EntityLock.Unlock()

	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Stop ends the session. Stopping an already ended game is a no-op.
func (g *Game) Stop() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status == GameStatusEnded {
		return
	}
	g.endGameLocked()
}

// endGameLocked finishes the session and publishes GameEnded. Callers
// must hold EntityLock.
func (g *Game) endGameLocked() {
	g.Running = false
	g.Status = GameStatusEnded
	g.EndTime = time.Now()

	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
}

// Shutdown stops the session and releases the resource monitor.
func (g *Game) Shutdown(ctx context.Context) error {
	g.Stop()
	if g.ResourceManager != nil {
		return g.ResourceManager.Shutdown(ctx)
	}
	return nil
}

// SetInput replaces the pending player input for the next tick.
func (g *Game) SetInput(in Input) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	g.input = in
}

// Update advances the simulation by the real time since the last
// update. Frontends call this once per frame.
func (g *Game) Update() {
	started := time.Now()

	deltaTime := g.calculateDeltaTime()
	g.Step(deltaTime)

	if g.ResourceManager != nil {
		g.ResourceManager.RecordTick(time.Since(started))
	}
}

// calculateDeltaTime returns the seconds since the last update, capped
// at 0.1 so a stalled frame cannot tunnel shells through the ground.
func (g *Game) calculateDeltaTime() float64 {
	now := time.Now()
	deltaTime := now.Sub(g.LastUpdate).Seconds()
	g.LastUpdate = now

	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	return deltaTime
}

// Step advances the simulation by deltaTime seconds. The order is
// fixed: input lands on the turret before it updates, shots leave the
// muzzle the turret just settled into, and the preview sees the same
// aim the player does. Headless drivers and tests call Step directly
// with a fixed delta for reproducible runs.
func (g *Game) Step(deltaTime float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if !g.Running || g.Status != GameStatusActive {
		return
	}

	fire := g.input.Fire
	g.input.Fire = false
	if g.input.SelectCannon >= 0 {
		g.Turret.SelectCannon(g.input.SelectCannon)
		g.input.SelectCannon = -1
	}
	g.Turret.MoveInput = g.input.Move
	g.Turret.AimInput = g.input.Aim
	g.Turret.ChargeInput = g.input.Charge

	g.Turret.Update(&g.Env, deltaTime)

	if fire {
		g.fireShell()
	}

	g.updateShells(deltaTime)
	g.updatePreview(deltaTime)

	g.ElapsedTime += deltaTime
	if limit := g.Config.Rules.TimeLimit; limit > 0 && g.ElapsedTime >= limit {
		g.endGameLocked()
	}

	g.CurrentTick++
}

// fireShell fires the selected cannon if the reload and the in-flight
// shell cap both allow it. The cap is checked before the turret fires
// so a blocked shot does not consume the cooldown.
func (g *Game) fireShell() {
	if len(g.Shells) >= g.Config.Rules.MaxActiveShells {
		return
	}

	shell := g.Turret.Fire()
	if shell == nil {
		return
	}

	g.Shells[shell.ID] = shell
	g.Stats.ShotsFired++

	g.EventBus.Publish(event.NewShellEvent(
		g, uint64(shell.ID), shell.Cannon, shell.Position, shell.Velocity(),
	))
}

// updateShells flies every live shell and reaps the ones that hit the
// ground or left the playfield, publishing ShellDestroyed for each.
func (g *Game) updateShells(deltaTime float64) {
	for id, shell := range g.Shells {
		shell.Update(&g.Env, deltaTime)
		if shell.Active {
			continue
		}

		delete(g.Shells, id)
		switch shell.Destroyed {
		case entity.DestroyedGround:
			g.Stats.GroundImpacts++
		case entity.DestroyedOutOfBounds:
			g.Stats.OutOfBounds++
		}

		g.EventBus.Publish(event.NewShellImpactEvent(
			g, uint64(id), string(shell.Destroyed), shell.Position,
		))
	}
}

// updatePreview retriggers the trajectory when the aim signature has
// changed since the last simulation, then runs the preview update. A
// freshly completed simulation publishes TrajectoryComputed.
func (g *Game) updatePreview(deltaTime float64) {
	sig := aimSignature{
		muzzle:   g.Turret.MuzzlePosition(),
		velocity: g.Turret.MuzzleVelocity(),
		gravity:  g.Env.Gravity,
		wind:     g.Env.Wind,
		groundY:  g.Env.GroundY(),
		width:    g.Env.PlayfieldWidth,
	}
	if sig != g.lastAim {
		g.lastAim = sig
		g.Trajectory.Trigger(sig.muzzle, sig.velocity)
	}

	wasSimulated := g.Trajectory.Simulated()
	g.Trajectory.Update(&g.Env, deltaTime)

	if !wasSimulated && g.Trajectory.Simulated() {
		g.EventBus.Publish(event.NewTrajectoryEvent(
			g, len(g.Trajectory.Points), g.Trajectory.Iterations, g.Trajectory.HitGround,
		))
	}
}

// SetPhysicsParam applies a live tuning change to one simulation
// parameter, keeping the loaded config in step so a later SaveConfig
// captures it. It reports whether the name matched a tunable parameter.
// The preview picks the change up on the next tick.
func (g *Game) SetPhysicsParam(name string, value float64) bool {
	g.EntityLock.Lock()
	applied := true
	switch name {
	case "gravity":
		g.Env.Gravity = value
		g.Config.Physics.Gravity = value
	case "windX":
		g.Env.Wind.X = value
		g.Config.Physics.Wind.X = value
	case "windY":
		g.Env.Wind.Y = value
		g.Config.Physics.Wind.Y = value
	case "friction":
		g.Env.Friction = value
		g.Config.Physics.Friction = value
	case "groundHeight":
		g.Env.GroundHeight = value
		g.Config.Physics.GroundHeight = value
	default:
		applied = false
	}
	g.EntityLock.Unlock()

	if applied {
		g.EventBus.Publish(event.NewConfigEvent(g, name, value))
	}

	return applied
}

// Reset restores the opening state for a fresh round. The turret
// returns to its start position; shells, the preview and the session
// counters are cleared. Tuned physics parameters and event
// subscriptions survive.
func (g *Game) Reset() {
	g.EntityLock.Lock()
	g.Env = g.Config.Environment()
	g.Turret = entity.NewTurret(
		g.Config.Turret.StartX,
		g.Config.Turret.StartAngle,
		g.Config.Turret.StartPower,
		g.Config.Turret.Stats(),
		g.Config.CannonSpecs(),
	)
	g.Shells = make(map[entity.ID]*entity.Bullet)
	g.Trajectory = entity.NewTrajectory()
	g.CurrentTick = 0
	g.ElapsedTime = 0
	g.Stats = SessionStats{}
	g.input = Input{SelectCannon: -1}
	g.lastAim = aimSignature{}
	g.Running = true
	g.Status = GameStatusActive
	now := time.Now()
	g.StartTime = now
	g.LastUpdate = now
	g.EntityLock.Unlock()

	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Render draws one frame: preview arc under the shells, turret on top.
func (g *Game) Render(r entity.Renderer) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	r.Clear()
	g.Trajectory.Render(r)
	for _, shell := range g.Shells {
		shell.Render(r)
	}
	g.Turret.Render(r)
	r.Present()
}

// TurretState is a render-ready copy of the turret for one frame.
type TurretState struct {
	ID                entity.ID
	Position          physics.Vector2D
	Angle             float64
	Power             float64
	PowerMin          float64
	PowerMax          float64
	BarrelLength      float64
	Cannon            string
	CannonIndex       int
	CannonCount       int
	CooldownRemaining float64
	CooldownTotal     float64
	MuzzlePosition    physics.Vector2D
}

// ShellState is a render-ready copy of one live shell.
type ShellState struct {
	ID       entity.ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Cannon   string
}

// TrajectoryState is a render-ready copy of the preview arc.
type TrajectoryState struct {
	Points     []entity.PathPoint
	Iterations int
	HitGround  bool
	Simulated  bool
}

// ParamState reports the live simulation parameters.
type ParamState struct {
	PlayfieldWidth  float64
	PlayfieldHeight float64
	Gravity         float64
	Wind            physics.Vector2D
	Friction        float64
	GroundHeight    float64
	GroundY         float64
	MaxActiveShells int
	TimeLimit       float64
}

// GameState is a consistent copy of the whole simulation for one
// frame. Nothing in it aliases live entities, so frontends may hold it
// across ticks.
type GameState struct {
	Tick       uint64
	Elapsed    float64
	Status     GameStatus
	Turret     TurretState
	Shells     []ShellState
	Trajectory TrajectoryState
	Params     ParamState
	Stats      SessionStats
}

// Snapshot returns a copy of the current game state. Shells come back
// sorted by ID so frontends see a stable order.
func (g *Game) Snapshot() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	cannon := g.Turret.SelectedCannon()
	state := &GameState{
		Tick:    g.CurrentTick,
		Elapsed: g.ElapsedTime,
		Status:  g.Status,
		Stats:   g.Stats,
		Turret: TurretState{
			ID:                g.Turret.ID,
			Position:          g.Turret.Position,
			Angle:             g.Turret.Angle,
			Power:             g.Turret.Power,
			PowerMin:          g.Turret.Stats.PowerMin,
			PowerMax:          g.Turret.Stats.PowerMax,
			BarrelLength:      g.Turret.Stats.BarrelLength,
			Cannon:            cannon.Name,
			CannonIndex:       g.Turret.Selected,
			CannonCount:       len(g.Turret.Cannons),
			CooldownRemaining: g.Turret.CooldownRemaining(),
			CooldownTotal:     cannon.Cooldown.Seconds(),
			MuzzlePosition:    g.Turret.MuzzlePosition(),
		},
		Shells: make([]ShellState, 0, len(g.Shells)),
		Trajectory: TrajectoryState{
			Points:     append([]entity.PathPoint(nil), g.Trajectory.Points...),
			Iterations: g.Trajectory.Iterations,
			HitGround:  g.Trajectory.HitGround,
			Simulated:  g.Trajectory.Simulated(),
		},
		Params: ParamState{
			PlayfieldWidth:  g.Env.PlayfieldWidth,
			PlayfieldHeight: g.Env.PlayfieldHeight,
			Gravity:         g.Env.Gravity,
			Wind:            g.Env.Wind,
			Friction:        g.Env.Friction,
			GroundHeight:    g.Env.GroundHeight,
			GroundY:         g.Env.GroundY(),
			MaxActiveShells: g.Config.Rules.MaxActiveShells,
			TimeLimit:       g.Config.Rules.TimeLimit,
		},
	}

	for _, shell := range g.Shells {
		state.Shells = append(state.Shells, ShellState{
			ID:       shell.ID,
			Position: shell.Position,
			Velocity: shell.Velocity(),
			Radius:   shell.Radius,
			Cannon:   shell.Cannon,
		})
	}
	sort.Slice(state.Shells, func(i, j int) bool {
		return state.Shells[i].ID < state.Shells[j].ID
	})

	return state
}
