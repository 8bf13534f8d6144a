// pkg/render/tui/view.go
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/opd-ai/go-ballista/pkg/engine"
	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/resource"
)

const (
	defaultPlayCols = 96
	defaultPlayRows = 24
	sidePanelWidth  = 42
	minPlayCols     = 40
	maxPlayCols     = 160
	minPlayRows     = 12
	maxPlayRows     = 48
	powerBarWidth   = 14
)

var (
	playfieldStyle = lipgloss.NewStyle().
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(sidePanelWidth)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(9)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	activeParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	graphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("150"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.state == nil {
		return "starting..."
	}

	playfield := playfieldStyle.Render(m.renderPlayfield())
	panel := panelStyle.Render(m.renderSidePanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, playfield, panel)

	return body + "\n" + m.renderFooter()
}

// renderPlayfield draws the last snapshot through the character
// renderer and returns the bordered frame. SetWorld runs every frame
// so ground height edits show up immediately.
func (m Model) renderPlayfield() string {
	st := m.state
	m.renderer.SetWorld(environmentFromParams(st.Params))
	m.renderer.Clear()

	m.renderer.RenderTrajectory(&entity.Trajectory{
		Points:     st.Trajectory.Points,
		Iterations: st.Trajectory.Iterations,
		HitGround:  st.Trajectory.HitGround,
	})

	for _, shell := range st.Shells {
		m.renderer.RenderBullet(&entity.Bullet{
			BaseEntity: entity.BaseEntity{
				ID:       shell.ID,
				Position: shell.Position,
				Active:   true,
			},
			Cannon: shell.Cannon,
			Radius: shell.Radius,
		})
	}

	m.renderer.RenderTurret(&entity.Turret{
		BaseEntity: entity.BaseEntity{
			ID:       st.Turret.ID,
			Position: st.Turret.Position,
			Active:   true,
		},
		Stats: entity.TurretStats{
			BarrelLength: st.Turret.BarrelLength,
		},
		Angle: st.Turret.Angle,
		Power: st.Turret.Power,
	})

	return strings.TrimRight(m.renderer.Frame(), "\n")
}

// renderSidePanel builds the readout column: session status, aim
// state, live physics tuning, the preview plot and shot counters.
func (m Model) renderSidePanel() string {
	st := m.state
	var b strings.Builder

	b.WriteString(headerStyle.Render("BALLISTA"))
	if m.paused {
		b.WriteString(pausedStyle.Render("  PAUSED"))
	}
	b.WriteString("\n\n")

	writeRow(&b, "status", statusText(st.Status))
	writeRow(&b, "elapsed", elapsedText(st))
	writeRow(&b, "cannon", fmt.Sprintf("%s (%d/%d)", st.Turret.Cannon, st.Turret.CannonIndex+1, st.Turret.CannonCount))
	writeRow(&b, "angle", fmt.Sprintf("%.1f deg", st.Turret.Angle*180/math.Pi))
	writeRow(&b, "power", fmt.Sprintf("%s %.1f", barString(m.powerFraction(), powerBarWidth), m.powerPos))
	writeRow(&b, "reload", reloadText(st.Turret))

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("physics"))
	b.WriteString("\n")
	for i, name := range paramOrder {
		row := fmt.Sprintf("%-13s %s", name, formatParamValue(name, m.paramValue(name)))
		if i == m.selected {
			b.WriteString(activeParamStyle.Render("> " + row))
		} else {
			b.WriteString("  ")
			b.WriteString(valueStyle.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("preview"))
	b.WriteString("\n")
	b.WriteString(m.renderPreviewGraph())
	b.WriteString("\n\n")

	writeRow(&b, "shots", fmt.Sprintf("%d", st.Stats.ShotsFired))
	writeRow(&b, "impacts", fmt.Sprintf("%d ground, %d out", st.Stats.GroundImpacts, st.Stats.OutOfBounds))

	return b.String()
}

// renderPreviewGraph plots the preview arc's height above ground from
// muzzle to impact.
func (m Model) renderPreviewGraph() string {
	heights := heightProfile(m.state.Trajectory, m.state.Params.GroundY)
	if len(heights) < 2 {
		return helpStyle.Render("no preview")
	}

	plot := asciigraph.Plot(heights,
		asciigraph.Height(5),
		asciigraph.Width(sidePanelWidth-12),
		asciigraph.Caption(previewCaption(m.state.Trajectory)),
	)

	return graphStyle.Render(plot)
}

// renderFooter lays the key help over the resource readout when the
// game carries a resource monitor.
func (m Model) renderFooter() string {
	help := helpStyle.Render("A/D move  W/S aim  +/- power  F fire  1/2 cannon  Tab/Up/Down tune  P pause  R reset  Q quit")

	rm := m.game.ResourceManager
	if rm == nil {
		return help
	}

	stats := rm.GetResourceStats()
	debug := helpStyle.Render(fmt.Sprintf(
		"ticks %d (slow %d)  avg %s  max %s  goroutines %d/%d  mem %d/%dMB",
		stats.Ticks.TotalTicks, stats.Ticks.SlowTicks,
		stats.Ticks.AverageTick.Round(10*time.Microsecond),
		stats.Ticks.MaxTick.Round(10*time.Microsecond),
		stats.GoroutineCount, stats.MaxGoroutines,
		stats.MemoryUsageMB, stats.MaxMemoryMB,
	))

	if err := resource.NewResourceHealthCheck(rm).Check(context.Background()); err != nil {
		debug += "  " + pausedStyle.Render("degraded: "+err.Error())
	}

	return help + "\n" + debug
}

// writeRow appends one aligned label/value line to the panel.
func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

// powerFraction normalizes the spring-smoothed power readout into the
// turret's power range.
func (m Model) powerFraction() float64 {
	span := m.state.Turret.PowerMax - m.state.Turret.PowerMin
	if span <= 0 {
		return 1
	}

	f := (m.powerPos - m.state.Turret.PowerMin) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// barString renders a fixed-width fill gauge like "[======----]".
func barString(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(fraction*float64(width) + 0.5)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// heightProfile converts preview points to height above ground,
// skipping the wrap gap sentinels.
func heightProfile(traj engine.TrajectoryState, groundY float64) []float64 {
	heights := make([]float64, 0, len(traj.Points))
	for _, pt := range traj.Points {
		if pt.Gap {
			continue
		}
		h := groundY - pt.Position.Y
		if h < 0 {
			h = 0
		}
		heights = append(heights, h)
	}
	return heights
}

// previewCaption summarizes where the preview arc ends.
func previewCaption(traj engine.TrajectoryState) string {
	if traj.HitGround {
		for i := len(traj.Points) - 1; i >= 0; i-- {
			if !traj.Points[i].Gap {
				return fmt.Sprintf("impact x=%.0f", traj.Points[i].Position.X)
			}
		}
	}
	return fmt.Sprintf("%d steps, no impact", traj.Iterations)
}

// statusText maps the session status onto the panel readout.
func statusText(status engine.GameStatus) string {
	switch status {
	case engine.GameStatusActive:
		return "active"
	case engine.GameStatusEnded:
		return "ended"
	default:
		return "waiting"
	}
}

// elapsedText shows elapsed time, with the limit when one is set.
func elapsedText(st *engine.GameState) string {
	if st.Params.TimeLimit > 0 {
		return fmt.Sprintf("%.1fs / %.0fs", st.Elapsed, st.Params.TimeLimit)
	}
	return fmt.Sprintf("%.1fs", st.Elapsed)
}

// reloadText shows cannon readiness.
func reloadText(t engine.TurretState) string {
	if t.CooldownRemaining > 0 {
		return fmt.Sprintf("%.1fs", t.CooldownRemaining)
	}
	return "ready"
}

// formatParamValue formats a tunable for its panel row.
func formatParamValue(name string, value float64) string {
	switch name {
	case "windX":
		return fmt.Sprintf("%+.1f", value)
	case "friction":
		return fmt.Sprintf("%.2f", value)
	default:
		return fmt.Sprintf("%.1f", value)
	}
}

// playfieldSize fits the character grid to the terminal, leaving room
// for the side panel and footer.
func playfieldSize(width, height int) (int, int) {
	cols := width - sidePanelWidth - 6
	rows := height - 5

	if cols < minPlayCols {
		cols = minPlayCols
	}
	if cols > maxPlayCols {
		cols = maxPlayCols
	}
	if rows < minPlayRows {
		rows = minPlayRows
	}
	if rows > maxPlayRows {
		rows = maxPlayRows
	}

	return cols, rows
}

// environmentFromParams rebuilds the entity view of the tunable world.
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
