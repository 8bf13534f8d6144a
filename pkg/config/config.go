// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/opd-ai/go-ballista/pkg/entity"
	"github.com/opd-ai/go-ballista/pkg/physics"
)

// GameConfig contains configuration for a ballistics session
type GameConfig struct {
	PlayfieldWidth  float64        `json:"playfieldWidth"`
	PlayfieldHeight float64        `json:"playfieldHeight"`
	Physics         PhysicsConfig  `json:"physics"`
	Turret          TurretConfig   `json:"turret"`
	Cannons         []CannonConfig `json:"cannons"`
	Rules           GameRules      `json:"rules"`
}

// PhysicsConfig contains the ballistic environment parameters
type PhysicsConfig struct {
	Gravity      float64    `json:"gravity"`
	Wind         WindConfig `json:"wind"`
	Friction     float64    `json:"friction"`
	GroundHeight float64    `json:"groundHeight"`
}

// WindConfig is the wind force vector. Y is almost always zero but
// kept configurable for updraft scenarios.
type WindConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TurretConfig contains the player turret tuning
type TurretConfig struct {
	StartX       float64 `json:"startX"`
	MoveSpeed    float64 `json:"moveSpeed"`
	AimSpeed     float64 `json:"aimSpeed"`
	MinAngle     float64 `json:"minAngle"`
	MaxAngle     float64 `json:"maxAngle"`
	StartAngle   float64 `json:"startAngle"`
	PowerMin     float64 `json:"powerMin"`
	PowerMax     float64 `json:"powerMax"`
	StartPower   float64 `json:"startPower"`
	ChargeRate   float64 `json:"chargeRate"`
	BarrelLength float64 `json:"barrelLength"`
}

// CannonConfig contains configuration for one selectable cannon
type CannonConfig struct {
	Name        string  `json:"name"`
	CooldownMS  int     `json:"cooldownMs"`
	ShellRadius float64 `json:"shellRadius"`
	PowerScale  float64 `json:"powerScale"`
}

// GameRules contains session rules configuration
type GameRules struct {
	MaxActiveShells int     `json:"maxActiveShells"`
	TimeLimit       float64 `json:"timeLimit"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := ioutil.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		PlayfieldWidth:  800,
		PlayfieldHeight: 600,
		Physics: PhysicsConfig{
			Gravity:      9.8,
			Wind:         WindConfig{X: 2, Y: 0},
			Friction:     0.8,
			GroundHeight: 50,
		},
		Turret: TurretConfig{
			StartX:       400,
			MoveSpeed:    120,
			AimSpeed:     1.2,
			MinAngle:     0.1,
			MaxAngle:     1.4,
			StartAngle:   0.7,
			PowerMin:     8,
			PowerMax:     48,
			StartPower:   24,
			ChargeRate:   20,
			BarrelLength: 24,
		},
		Cannons: []CannonConfig{
			{
				Name:        "field gun",
				CooldownMS:  400,
				ShellRadius: 3,
				PowerScale:  1.0,
			},
			{
				Name:        "mortar",
				CooldownMS:  1200,
				ShellRadius: 6,
				PowerScale:  0.65,
			},
		},
		Rules: GameRules{
			MaxActiveShells: 8,
			TimeLimit:       0,
		},
	}
}

// Environment builds the simulation environment described by the config.
func (c *GameConfig) Environment() entity.Environment {
	return entity.Environment{
		PlayfieldWidth:  c.PlayfieldWidth,
		PlayfieldHeight: c.PlayfieldHeight,
		Gravity:         c.Physics.Gravity,
		Wind:            physics.Vector2D{X: c.Physics.Wind.X, Y: c.Physics.Wind.Y},
		Friction:        c.Physics.Friction,
		GroundHeight:    c.Physics.GroundHeight,
	}
}

// Stats converts the turret section into entity turret stats.
func (t TurretConfig) Stats() entity.TurretStats {
	return entity.TurretStats{
		MoveSpeed:    t.MoveSpeed,
		AimSpeed:     t.AimSpeed,
		MinAngle:     t.MinAngle,
		MaxAngle:     t.MaxAngle,
		PowerMin:     t.PowerMin,
		PowerMax:     t.PowerMax,
		ChargeRate:   t.ChargeRate,
		BarrelLength: t.BarrelLength,
	}
}

// Spec converts a cannon entry into a weapon spec.
func (c CannonConfig) Spec() entity.CannonSpec {
	return entity.CannonSpec{
		Name:        c.Name,
		Cooldown:    time.Duration(c.CooldownMS) * time.Millisecond,
		ShellRadius: c.ShellRadius,
		PowerScale:  c.PowerScale,
	}
}

// CannonSpecs converts every configured cannon into a weapon spec.
func (c *GameConfig) CannonSpecs() []entity.CannonSpec {
	specs := make([]entity.CannonSpec, len(c.Cannons))
	for i, cannon := range c.Cannons {
		specs[i] = cannon.Spec()
	}
	return specs
}
