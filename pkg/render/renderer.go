// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/logging"
)

// NullRenderer is a simple implementation of entity.Renderer. It draws
// nothing and logs every call, which makes it the renderer of choice
// for headless runs and for tracing frontend draw order.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Present called")
}

// RenderTurret implements entity.Renderer.
func (d *NullRenderer) RenderTurret(turret *entity.Turret) {
	ctx := context.Background()
	if turret == nil {
		d.logger.Debug(ctx, "RenderTurret called with nil turret")
		return
	}
	d.logger.Debug(ctx, "RenderTurret called",
		"turret_id", turret.ID,
		"angle", turret.Angle,
		"power", turret.Power,
	)
}

// RenderBullet implements entity.Renderer.
func (d *NullRenderer) RenderBullet(bullet *entity.Bullet) {
	ctx := context.Background()
	if bullet == nil {
		d.logger.Debug(ctx, "RenderBullet called with nil bullet")
		return
	}
	d.logger.Debug(ctx, "RenderBullet called",
		"bullet_id", bullet.ID,
		"cannon", bullet.Cannon,
	)
}

// RenderTrajectory implements entity.Renderer.
func (d *NullRenderer) RenderTrajectory(trajectory *entity.Trajectory) {
	ctx := context.Background()
	if trajectory == nil {
		d.logger.Debug(ctx, "RenderTrajectory called with nil trajectory")
		return
	}
	d.logger.Debug(ctx, "RenderTrajectory called",
		"points", len(trajectory.Points),
		"iterations", trajectory.Iterations,
		"hit_ground", trajectory.HitGround,
	)
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance entity.Renderer = NewNullRenderer()
