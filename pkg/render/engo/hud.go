// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ballista/pkg/engine"
)

// HUD layout constants, pixels.
const (
	hudMargin   = 10
	gaugeWidth  = 160
	gaugeHeight = 12
	gaugeGap    = 6
)

// HUDSystem manages the heads-up display: power and reload gauges, wind
// indicator, cannon loadout, session status, and a message log. Gauges
// are drawn with shapes; text elements appear only when a font is set.
type HUDSystem struct {
	renderSystem *common.RenderSystem

	// HUD entities, rebuilt every frame
	hudEntities []*renderEntity

	// Latest game snapshot
	gameState *engine.GameState

	// Session log
	messages    []LogMessage
	maxLogLines int

	// Font for text rendering
	font *common.Font

	// Colors
	hudColor    color.Color
	chargeColor color.Color
	reloadColor color.Color
	windColor   color.Color
	panelColor  color.Color
}

// LogMessage represents one line of the session log
type LogMessage struct {
	Text      string
	Timestamp time.Time
	Color     color.Color
}

// NewHUDSystem creates a new HUD system drawing into the given render
// system. A nil render system disables drawing but keeps the state
// tracking alive.
func NewHUDSystem(renderSystem *common.RenderSystem) *HUDSystem {
	return &HUDSystem{
		renderSystem: renderSystem,
		maxLogLines:  6,
		hudColor:     color.RGBA{255, 255, 255, 255},
		chargeColor:  color.RGBA{255, 200, 80, 255},
		reloadColor:  color.RGBA{120, 200, 255, 255},
		windColor:    color.RGBA{160, 255, 160, 255},
		panelColor:   color.RGBA{0, 0, 0, 128},
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// Update rebuilds the HUD from the latest game snapshot
func (hud *HUDSystem) Update(dt float32) {
	// Clear previous HUD entities
	hud.clearHUDEntities()

	if hud.gameState == nil {
		return
	}

	// Render HUD components
	hud.renderPowerGauge()
	hud.renderReloadGauge()
	hud.renderWindIndicator()
	hud.renderLoadout()
	hud.renderSessionStatus()
	hud.renderMessageLog()
}

// clearHUDEntities removes the previous frame's HUD entities
func (hud *HUDSystem) clearHUDEntities() {
	for _, re := range hud.hudEntities {
		hud.renderSystem.Remove(re.basic)
	}
	hud.hudEntities = hud.hudEntities[:0]
}

// renderPowerGauge draws the muzzle power charge bar
func (hud *HUDSystem) renderPowerGauge() {
	turret := hud.gameState.Turret

	hud.renderRectOutline(hudMargin, hudMargin, gaugeWidth, gaugeHeight, hud.hudColor)
	if fill := float32(powerFraction(turret)) * (gaugeWidth - 4); fill > 0 {
		hud.renderRect(hudMargin+2, hudMargin+2, fill, gaugeHeight-4, hud.chargeColor)
	}

	hud.renderText(
		fmt.Sprintf("power %.0f", turret.Power),
		hudMargin+gaugeWidth+8, hudMargin,
		hud.hudColor,
	)
}

// renderReloadGauge draws the cannon cooldown bar
func (hud *HUDSystem) renderReloadGauge() {
	turret := hud.gameState.Turret
	y := float32(hudMargin + gaugeHeight + gaugeGap)

	hud.renderRectOutline(hudMargin, y, gaugeWidth, gaugeHeight, hud.hudColor)
	if fill := float32(reloadFraction(turret)) * (gaugeWidth - 4); fill > 0 {
		hud.renderRect(hudMargin+2, y+2, fill, gaugeHeight-4, hud.reloadColor)
	}

	label := "ready"
	if turret.CooldownRemaining > 0 {
		label = fmt.Sprintf("reloading %.1fs", turret.CooldownRemaining)
	}
	hud.renderText(label, hudMargin+gaugeWidth+8, y, hud.hudColor)
}

// renderWindIndicator draws a bar growing from a center tick in the wind
// direction, top center of the screen.
func (hud *HUDSystem) renderWindIndicator() {
	cx := engo.GameWidth() / 2
	wind := hud.gameState.Params.Wind.X

	hud.renderRect(cx-1, hudMargin, 2, gaugeHeight, hud.hudColor)

	length := float32(wind) * 8
	switch {
	case length > 0:
		hud.renderRect(cx+2, hudMargin+3, length, gaugeHeight-6, hud.windColor)
	case length < 0:
		hud.renderRect(cx+2+length, hudMargin+3, -length, gaugeHeight-6, hud.windColor)
	}

	hud.renderText(fmt.Sprintf("wind %+.1f", wind), cx+40, hudMargin, hud.hudColor)
}

// renderLoadout draws one pip per cannon, the selected one filled
func (hud *HUDSystem) renderLoadout() {
	turret := hud.gameState.Turret
	y := float32(hudMargin + 2*(gaugeHeight+gaugeGap))

	for i := 0; i < turret.CannonCount; i++ {
		x := float32(hudMargin + i*14)
		if i == turret.CannonIndex {
			hud.renderRect(x, y, 10, 10, hud.hudColor)
		} else {
			hud.renderRectOutline(x, y, 10, 10, hud.hudColor)
		}
	}

	hud.renderText(turret.Cannon, float32(hudMargin+turret.CannonCount*14+8), y, hud.hudColor)
}

// renderSessionStatus draws status, clock, and shot count top right,
// with a draining bar when a time limit is set.
func (hud *HUDSystem) renderSessionStatus() {
	state := hud.gameState
	x := engo.GameWidth() - 220

	hud.renderText(
		fmt.Sprintf("%s  %5.1fs  shots %d", state.Status, state.Elapsed, state.Stats.ShotsFired),
		x, hudMargin,
		hud.hudColor,
	)

	if state.Params.TimeLimit > 0 {
		y := float32(hudMargin + gaugeHeight + gaugeGap)
		hud.renderRectOutline(x, y, gaugeWidth, 6, hud.hudColor)
		if fill := float32(timeFraction(state.Params, state.Elapsed)) * (gaugeWidth - 2); fill > 0 {
			hud.renderRect(x+1, y+1, fill, 4, hud.reloadColor)
		}
	}
}

// renderMessageLog draws the recent session messages bottom left
func (hud *HUDSystem) renderMessageLog() {
	if hud.font == nil || len(hud.messages) == 0 {
		return
	}

	panelHeight := float32(hud.maxLogLines*15 + 10)
	startY := engo.GameHeight() - panelHeight - hudMargin
	hud.renderRect(hudMargin, startY, 360, panelHeight, hud.panelColor)

	y := startY + 5
	first := len(hud.messages) - hud.maxLogLines
	if first < 0 {
		first = 0
	}
	for _, msg := range hud.messages[first:] {
		hud.renderText(msg.Text, hudMargin+5, y, msg.Color)
		y += 15
	}
}

// renderText renders text at the specified position. Without a font the
// call is a no-op.
func (hud *HUDSystem) renderText(text string, x, y float32, textColor color.Color) {
	if hud.font == nil || hud.renderSystem == nil {
		return
	}

	re := &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: common.Text{
				Font: hud.font,
				Text: text,
			},
			Color: textColor,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: x, Y: y},
			Width:    float32(len(text) * 8), // Approximate width
			Height:   16,
		},
	}
	re.render.SetZIndex(layerHUD)

	hud.renderSystem.Add(&re.basic, &re.render, &re.space)
	hud.hudEntities = append(hud.hudEntities, re)
}

// renderRect renders a filled rectangle
func (hud *HUDSystem) renderRect(x, y, width, height float32, rectColor color.Color) {
	if hud.renderSystem == nil {
		return
	}

	re := &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: common.Rectangle{
				BorderWidth: 0,
				BorderColor: color.Transparent,
			},
			Color: rectColor,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: x, Y: y},
			Width:    width,
			Height:   height,
		},
	}
	re.render.SetZIndex(layerHUD)

	hud.renderSystem.Add(&re.basic, &re.render, &re.space)
	hud.hudEntities = append(hud.hudEntities, re)
}

// renderRectOutline renders a rectangle outline
func (hud *HUDSystem) renderRectOutline(x, y, width, height float32, outlineColor color.Color) {
	if hud.renderSystem == nil {
		return
	}

	re := &renderEntity{
		basic: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: common.Rectangle{
				BorderWidth: 2,
				BorderColor: outlineColor,
			},
			Color: color.Transparent,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: x, Y: y},
			Width:    width,
			Height:   height,
		},
	}
	re.render.SetZIndex(layerHUD)

	hud.renderSystem.Add(&re.basic, &re.render, &re.space)
	hud.hudEntities = append(hud.hudEntities, re)
}

// AddMessage adds a line to the session log
func (hud *HUDSystem) AddMessage(text string) {
	msg := LogMessage{
		Text:      text,
		Timestamp: time.Now(),
		Color:     hud.hudColor,
	}

	hud.messages = append(hud.messages, msg)

	// Keep only the most recent messages
	if len(hud.messages) > hud.maxLogLines*2 {
		hud.messages = hud.messages[len(hud.messages)-hud.maxLogLines:]
	}
}

// UpdateGameState updates the HUD with the current game snapshot
func (hud *HUDSystem) UpdateGameState(gameState *engine.GameState) {
	hud.gameState = gameState
}

// SetFont sets the font used for HUD text rendering
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
}

// GetMessages returns the current session log
func (hud *HUDSystem) GetMessages() []LogMessage {
	return hud.messages
}

// ClearMessages clears the session log
func (hud *HUDSystem) ClearMessages() {
	hud.messages = hud.messages[:0]
}

// powerFraction maps the turret's power between its limits onto 0..1.
func powerFraction(t engine.TurretState) float64 {
	span := t.PowerMax - t.PowerMin
	if span <= 0 {
		return 1
	}
	return clampFraction((t.Power - t.PowerMin) / span)
}

// reloadFraction reports readiness: 1 when the cannon can fire.
func reloadFraction(t engine.TurretState) float64 {
	if t.CooldownTotal <= 0 || t.CooldownRemaining <= 0 {
		return 1
	}
	return clampFraction(1 - t.CooldownRemaining/t.CooldownTotal)
}

// timeFraction reports the share of the session time limit remaining.
func timeFraction(p engine.ParamState, elapsed float64) float64 {
	if p.TimeLimit <= 0 {
		return 1
	}
	return clampFraction(1 - elapsed/p.TimeLimit)
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
