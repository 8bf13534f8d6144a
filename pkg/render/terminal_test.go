// pkg/render/terminal_test.go
package render

import (
	"strings"
	"testing"

	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/physics"
)

func testWorld() entity.Environment {
	return entity.Environment{
		PlayfieldWidth:  800,
		PlayfieldHeight: 600,
		Gravity:         9.8,
		Friction:        0.8,
		GroundHeight:    50,
	}
}

func testTurret() *entity.Turret {
	stats := entity.TurretStats{
		MoveSpeed:    120,
		AimSpeed:     1.2,
		MinAngle:     0.1,
		MaxAngle:     1.4,
		PowerMin:     8,
		PowerMax:     48,
		ChargeRate:   20,
		BarrelLength: 24,
	}
	turret := entity.NewTurret(400, 0.7, 24, stats, nil)
	turret.Position = physics.Vector2D{X: 400, Y: 550}
	return turret
}

func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name string
		cols int
		rows int
	}{
		{name: "small renderer", cols: 10, rows: 5},
		{name: "medium renderer", cols: 80, rows: 24},
		{name: "large renderer", cols: 120, rows: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRenderer(tt.cols, tt.rows, testWorld())

			if renderer == nil {
				t.Fatal("NewTerminalRenderer returned nil")
			}
			if renderer.cols != tt.cols {
				t.Errorf("expected cols %d, got %d", tt.cols, renderer.cols)
			}
			if renderer.rows != tt.rows {
				t.Errorf("expected rows %d, got %d", tt.rows, renderer.rows)
			}
			if len(renderer.buffer) != tt.rows {
				t.Errorf("expected buffer height %d, got %d", tt.rows, len(renderer.buffer))
			}
			for i, row := range renderer.buffer {
				if len(row) != tt.cols {
					t.Errorf("row %d: expected width %d, got %d", i, tt.cols, len(row))
				}
			}
			if renderer.world.PlayfieldWidth != 800 {
				t.Errorf("expected world width 800, got %v", renderer.world.PlayfieldWidth)
			}
		})
	}
}

func TestWorldToScreen_ConvertsCoordinates_Correctly(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())

	tests := []struct {
		name      string
		pos       physics.Vector2D
		expectedX int
		expectedY int
	}{
		{name: "origin", pos: physics.Vector2D{X: 0, Y: 0}, expectedX: 0, expectedY: 0},
		{name: "center", pos: physics.Vector2D{X: 400, Y: 300}, expectedX: 40, expectedY: 12},
		{name: "ground line", pos: physics.Vector2D{X: 400, Y: 550}, expectedX: 40, expectedY: 22},
		{name: "far corner", pos: physics.Vector2D{X: 799, Y: 599}, expectedX: 79, expectedY: 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := renderer.worldToScreen(tt.pos)
			if x != tt.expectedX || y != tt.expectedY {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.expectedX, tt.expectedY, x, y)
			}
		})
	}
}

func TestClear_PaintsGroundRow_AndSpacesElsewhere(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())
	renderer.Clear()

	// groundY 550 of 600 lands on row 22 of 24.
	for x := 0; x < 80; x++ {
		if renderer.buffer[22][x] != '=' {
			t.Fatalf("expected '=' across ground row, got %q at column %d", renderer.buffer[22][x], x)
		}
	}
	if renderer.buffer[0][0] != ' ' {
		t.Errorf("expected space above ground, got %q", renderer.buffer[0][0])
	}
	if renderer.buffer[23][0] != ' ' {
		t.Errorf("expected space below ground, got %q", renderer.buffer[23][0])
	}
}

func TestSetWorld_MovesGroundLine(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())

	world := testWorld()
	world.GroundHeight = 300
	renderer.SetWorld(world)
	renderer.Clear()

	// groundY 300 of 600 lands on row 12.
	if renderer.buffer[12][0] != '=' {
		t.Errorf("expected ground on row 12 after SetWorld, got %q", renderer.buffer[12][0])
	}
	if renderer.buffer[22][0] != ' ' {
		t.Errorf("expected old ground row cleared, got %q", renderer.buffer[22][0])
	}
}

func TestRenderTurret_DrawsCarriageAndMuzzle(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())
	renderer.Clear()

	renderer.RenderTurret(testTurret())

	if renderer.buffer[22][40] != '#' {
		t.Errorf("expected '#' at carriage cell (40, 22), got %q", renderer.buffer[22][40])
	}

	// Muzzle at 24 px along -0.7 rad from (400, 550): about (418, 535),
	// cell (41, 21).
	if renderer.buffer[21][41] != '+' {
		t.Errorf("expected '+' at muzzle cell (41, 21), got %q", renderer.buffer[21][41])
	}
}

func TestRenderBullet_DrawsShell_AtCorrectPosition(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())
	renderer.Clear()

	bullet := entity.NewBullet(physics.Vector2D{X: 200, Y: 150}, physics.Vector2D{}, 3, "field gun")
	renderer.RenderBullet(bullet)

	if renderer.buffer[6][20] != 'o' {
		t.Errorf("expected 'o' at (20, 6), got %q", renderer.buffer[6][20])
	}
}

func TestRenderBullet_OffGridPosition_IsIgnored(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())
	renderer.Clear()

	bullet := entity.NewBullet(physics.Vector2D{X: -50, Y: 150}, physics.Vector2D{}, 3, "field gun")
	renderer.RenderBullet(bullet)

	for y := range renderer.buffer {
		for x := range renderer.buffer[y] {
			if renderer.buffer[y][x] == 'o' {
				t.Fatalf("off-grid shell drawn at (%d, %d)", x, y)
			}
		}
	}
}

func TestRenderTrajectory_SkipsGapSentinels(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())
	renderer.Clear()

	trajectory := entity.NewTrajectory()
	trajectory.Points = []entity.PathPoint{
		{Position: physics.Vector2D{X: 100, Y: 100}},
		{Position: physics.Vector2D{X: 400, Y: 90}, Gap: true},
		{Position: physics.Vector2D{X: 700, Y: 100}},
	}
	renderer.RenderTrajectory(trajectory)

	if renderer.buffer[4][10] != '.' {
		t.Errorf("expected '.' at (10, 4), got %q", renderer.buffer[4][10])
	}
	if renderer.buffer[4][70] != '.' {
		t.Errorf("expected '.' at (70, 4), got %q", renderer.buffer[4][70])
	}
	if renderer.buffer[3][40] != ' ' {
		t.Errorf("gap sentinel was drawn at (40, 3): %q", renderer.buffer[3][40])
	}
}

func TestFrame_IncludesBorders_AndRowsMatch(t *testing.T) {
	renderer := NewTerminalRenderer(20, 8, testWorld())
	renderer.Clear()

	frame := renderer.Frame()
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")

	if len(lines) != 10 {
		t.Fatalf("expected 10 lines (8 rows + 2 borders), got %d", len(lines))
	}

	border := "+" + strings.Repeat("-", 20) + "+"
	if lines[0] != border || lines[9] != border {
		t.Errorf("expected border %q, got first %q last %q", border, lines[0], lines[9])
	}
	for i := 1; i < 9; i++ {
		if len(lines[i]) != 22 || lines[i][0] != '|' || lines[i][21] != '|' {
			t.Errorf("row %d not framed: %q", i, lines[i])
		}
	}
}

func TestPresent_ExecutesWithoutError_ForVariousSizes(t *testing.T) {
	sizes := []struct {
		cols int
		rows int
	}{
		{cols: 10, rows: 5},
		{cols: 40, rows: 12},
		{cols: 80, rows: 24},
	}

	for _, size := range sizes {
		renderer := NewTerminalRenderer(size.cols, size.rows, testWorld())
		renderer.Clear()
		renderer.Present()
	}
}

func TestIntegration_RendersFullScene_Correctly(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, testWorld())
	renderer.Clear()

	trajectory := entity.NewTrajectory()
	trajectory.Points = []entity.PathPoint{
		{Position: physics.Vector2D{X: 450, Y: 500}},
		{Position: physics.Vector2D{X: 500, Y: 460}},
	}
	renderer.RenderTrajectory(trajectory)
	renderer.RenderBullet(entity.NewBullet(physics.Vector2D{X: 480, Y: 480}, physics.Vector2D{}, 3, "field gun"))
	renderer.RenderTurret(testTurret())

	frame := renderer.Frame()
	for _, glyph := range []string{"#", "+", "o", ".", "="} {
		if !strings.Contains(frame, glyph) {
			t.Errorf("expected frame to contain %q:\n%s", glyph, frame)
		}
	}
}
