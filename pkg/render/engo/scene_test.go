// pkg/render/engo/scene_test.go
package engo

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-ballista/pkg/engine"
	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/event"
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// TestNewGameScene tests the creation of a new game scene
func TestNewGameScene(t *testing.T) {
	game := engine.NewGame(nil)

	scene := NewGameScene(game)

	if scene == nil {
		t.Fatal("NewGameScene() returned nil")
	}

	if scene.game != game {
		t.Errorf("Expected game to be set correctly")
	}

	if scene.eventBus != game.EventBus {
		t.Errorf("Expected eventBus to come from the game")
	}

	if scene.world == nil {
		t.Errorf("Expected world to be initialized")
	}
}

// TestGameScene_Type tests the Type method
func TestGameScene_Type(t *testing.T) {
	scene := NewGameScene(engine.NewGame(nil))

	expectedType := "GameScene"
	actualType := scene.Type()

	if actualType != expectedType {
		t.Errorf("Expected Type() to return %q, got %q", expectedType, actualType)
	}
}

// TestGameScene_Preload tests that preload runs without side effects
func TestGameScene_Preload(t *testing.T) {
	scene := NewGameScene(engine.NewGame(nil))
	scene.Preload()
}

// TestGameScene_Exit tests that leaving the scene stops the simulation
func TestGameScene_Exit(t *testing.T) {
	game := engine.NewGame(nil)
	scene := NewGameScene(game)

	game.Start()
	scene.Exit()

	if state := game.Snapshot(); state.Status != engine.GameStatusEnded {
		t.Errorf("Expected game status %v after exit, got %v", engine.GameStatusEnded, state.Status)
	}
}

// TestGameScene_ConvertTurretStateToEntity tests turret state conversion
func TestGameScene_ConvertTurretStateToEntity(t *testing.T) {
	scene := NewGameScene(engine.NewGame(nil))

	turretState := engine.TurretState{
		ID:           entity.ID(7),
		Position:     physics.Vector2D{X: 400, Y: 550},
		Angle:        0.7,
		Power:        24,
		BarrelLength: 48,
	}

	turret := scene.convertTurretStateToEntity(turretState)

	if turret.ID != turretState.ID {
		t.Errorf("Expected ID %v, got %v", turretState.ID, turret.ID)
	}
	if turret.Position != turretState.Position {
		t.Errorf("Expected position %v, got %v", turretState.Position, turret.Position)
	}
	if turret.Angle != turretState.Angle {
		t.Errorf("Expected angle %v, got %v", turretState.Angle, turret.Angle)
	}
	if turret.Power != turretState.Power {
		t.Errorf("Expected power %v, got %v", turretState.Power, turret.Power)
	}
	if turret.Stats.BarrelLength != turretState.BarrelLength {
		t.Errorf("Expected barrel length %v, got %v", turretState.BarrelLength, turret.Stats.BarrelLength)
	}
	if !turret.Active {
		t.Error("Expected converted turret to be active")
	}
}

// TestGameScene_ConvertShellStateToEntity tests shell state conversion
func TestGameScene_ConvertShellStateToEntity(t *testing.T) {
	scene := NewGameScene(engine.NewGame(nil))

	tests := []struct {
		name  string
		state engine.ShellState
	}{
		{
			name: "field_gun_shell",
			state: engine.ShellState{
				ID:       entity.ID(12),
				Position: physics.Vector2D{X: 420, Y: 500},
				Radius:   3,
				Cannon:   "field gun",
			},
		},
		{
			name: "mortar_shell",
			state: engine.ShellState{
				ID:       entity.ID(13),
				Position: physics.Vector2D{X: 100, Y: 80},
				Radius:   6,
				Cannon:   "mortar",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell := scene.convertShellStateToEntity(tt.state)

			if shell.ID != tt.state.ID {
				t.Errorf("Expected ID %v, got %v", tt.state.ID, shell.ID)
			}
			if shell.Position != tt.state.Position {
				t.Errorf("Expected position %v, got %v", tt.state.Position, shell.Position)
			}
			if shell.Radius != tt.state.Radius {
				t.Errorf("Expected radius %v, got %v", tt.state.Radius, shell.Radius)
			}
			if shell.Cannon != tt.state.Cannon {
				t.Errorf("Expected cannon %q, got %q", tt.state.Cannon, shell.Cannon)
			}
			if !shell.Active {
				t.Error("Expected converted shell to be active")
			}
		})
	}
}

// TestGameScene_ConvertTrajectoryStateToEntity tests preview conversion
func TestGameScene_ConvertTrajectoryStateToEntity(t *testing.T) {
	scene := NewGameScene(engine.NewGame(nil))

	trajectoryState := engine.TrajectoryState{
		Points: []entity.PathPoint{
			{Position: physics.Vector2D{X: 10, Y: 20}},
			{Gap: true},
			{Position: physics.Vector2D{X: 30, Y: 40}},
		},
		Iterations: 42,
		HitGround:  true,
	}

	trajectory := scene.convertTrajectoryStateToEntity(trajectoryState)

	if len(trajectory.Points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(trajectory.Points))
	}
	if !trajectory.Points[1].Gap {
		t.Error("Expected gap sentinel to survive conversion")
	}
	if trajectory.Iterations != 42 {
		t.Errorf("Expected 42 iterations, got %d", trajectory.Iterations)
	}
	if !trajectory.HitGround {
		t.Error("Expected hit ground flag to survive conversion")
	}
}

// TestEnvironmentFromParams tests the snapshot to environment mapping
func TestEnvironmentFromParams(t *testing.T) {
	params := engine.ParamState{
		PlayfieldWidth:  800,
		PlayfieldHeight: 600,
		Gravity:         9.8,
		Wind:            physics.Vector2D{X: 2.5},
		Friction:        0.8,
		GroundHeight:    50,
		GroundY:         550,
	}

	env := environmentFromParams(params)

	if env.PlayfieldWidth != 800 || env.PlayfieldHeight != 600 {
		t.Errorf("Expected 800x600 playfield, got %vx%v", env.PlayfieldWidth, env.PlayfieldHeight)
	}
	if env.Gravity != 9.8 {
		t.Errorf("Expected gravity 9.8, got %v", env.Gravity)
	}
	if env.Wind.X != 2.5 {
		t.Errorf("Expected wind 2.5, got %v", env.Wind.X)
	}
	if env.Friction != 0.8 {
		t.Errorf("Expected friction 0.8, got %v", env.Friction)
	}
	if env.GroundY() != params.GroundY {
		t.Errorf("Expected ground line %v, got %v", params.GroundY, env.GroundY())
	}
}

// TestRecoilStrength tests the muzzle velocity to kick mapping
func TestRecoilStrength(t *testing.T) {
	slow := recoilStrength(physics.Vector2D{X: 5, Y: 0})
	fast := recoilStrength(physics.Vector2D{X: 40, Y: 0})

	if slow <= 2 {
		t.Errorf("Expected kick above the 2px floor, got %f", slow)
	}
	if fast <= slow {
		t.Errorf("Expected faster shells to kick harder: slow %f, fast %f", slow, fast)
	}
}

// TestImpactMessage tests the session log wording for shell impacts
func TestImpactMessage(t *testing.T) {
	ground := event.NewShellImpactEvent(nil, 1, string(entity.DestroyedGround), physics.Vector2D{X: 512, Y: 550})
	if msg := impactMessage(ground); !strings.Contains(msg, "x=512") {
		t.Errorf("Expected ground impact message to name the spot, got %q", msg)
	}

	oob := event.NewShellImpactEvent(nil, 2, string(entity.DestroyedOutOfBounds), physics.Vector2D{X: 900, Y: 100})
	if msg := impactMessage(oob); msg != "shell left the field" {
		t.Errorf("Expected out of bounds message, got %q", msg)
	}
}
