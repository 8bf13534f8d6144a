package entity

// Renderer handles rendering game entities
type Renderer interface {
	RenderTurret(turret *Turret)
	RenderBullet(bullet *Bullet)
	RenderTrajectory(trajectory *Trajectory)
	Clear()
	Present()
}
