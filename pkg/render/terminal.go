// pkg/render/terminal.go
package render

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// TerminalRenderer provides a simple ASCII-based rendering for
// terminals. The whole playfield maps onto a fixed character grid: the
// ground is a line of '=', the turret a '#' with a '+' at the muzzle,
// shells are 'o' and the trajectory preview a chain of dots.
type TerminalRenderer struct {
	cols   int
	rows   int
	buffer [][]rune
	world  entity.Environment
}

// NewTerminalRenderer creates a terminal renderer that maps the given
// world onto a cols x rows character grid.
func NewTerminalRenderer(cols, rows int, world entity.Environment) *TerminalRenderer {
	buffer := make([][]rune, rows)
	for i := range buffer {
		buffer[i] = make([]rune, cols)
	}

	return &TerminalRenderer{
		cols:   cols,
		rows:   rows,
		buffer: buffer,
		world:  world,
	}
}

// SetWorld replaces the world mapping. Live parameter edits call this
// so the ground line tracks the current ground height.
func (r *TerminalRenderer) SetWorld(world entity.Environment) {
	r.world = world
}

// worldToScreen converts world coordinates to grid coordinates. The
// multiply comes first so grid-aligned world positions map exactly.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int(pos.X * float64(r.cols) / r.world.PlayfieldWidth)
	screenY := int(pos.Y * float64(r.rows) / r.world.PlayfieldHeight)
	return screenX, screenY
}

// groundRow returns the grid row of the ground line.
func (r *TerminalRenderer) groundRow() int {
	row := int(r.world.GroundY() * float64(r.rows) / r.world.PlayfieldHeight)
	if row < 0 {
		row = 0
	}
	if row >= r.rows {
		row = r.rows - 1
	}
	return row
}

// put writes one glyph, ignoring cells outside the grid.
func (r *TerminalRenderer) put(x, y int, ch rune) {
	if x < 0 || x >= r.cols || y < 0 || y >= r.rows {
		return
	}
	r.buffer[y][x] = ch
}

// Clear implements entity.Renderer. It resets the grid and repaints
// the ground line.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}

	ground := r.groundRow()
	for x := 0; x < r.cols; x++ {
		r.buffer[ground][x] = '='
	}
}

// RenderTurret implements entity.Renderer.
func (r *TerminalRenderer) RenderTurret(turret *entity.Turret) {
	x, y := r.worldToScreen(turret.Position)
	r.put(x, y, '#')

	mx, my := r.worldToScreen(turret.MuzzlePosition())
	r.put(mx, my, '+')
}

// RenderBullet implements entity.Renderer.
func (r *TerminalRenderer) RenderBullet(bullet *entity.Bullet) {
	x, y := r.worldToScreen(bullet.Position)
	r.put(x, y, 'o')
}

// RenderTrajectory implements entity.Renderer. Gap sentinels mark the
// horizontal wrap and are not drawn.
func (r *TerminalRenderer) RenderTrajectory(trajectory *entity.Trajectory) {
	for _, pt := range trajectory.Points {
		if pt.Gap {
			continue
		}
		x, y := r.worldToScreen(pt.Position)
		r.put(x, y, '.')
	}
}

// Frame returns the bordered frame as a string.
func (r *TerminalRenderer) Frame() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", r.cols) + "+\n"

	sb.WriteString(border)
	for y := range r.buffer {
		sb.WriteByte('|')
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)

	return sb.String()
}

// Present implements entity.Renderer. It homes the cursor, clears the
// terminal and prints the frame.
func (r *TerminalRenderer) Present() {
	fmt.Print("\033[H\033[2J")
	fmt.Print(r.Frame())
}
