// pkg/config/validate.go
package config

import (
	"fmt"
	"math"
)

// ValidateGameConfig checks a game configuration for values the
// simulation cannot run with. The physics and entity packages trust
// their inputs, so every file, environment, or UI sourced value passes
// through here before it reaches them.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return &ValidationError{Field: "GameConfig", Message: "config is nil"}
	}

	if config.PlayfieldWidth <= 0 {
		return &ValidationError{
			Field:   "PlayfieldWidth",
			Message: fmt.Sprintf("must be positive, got %v", config.PlayfieldWidth),
		}
	}

	if config.PlayfieldHeight <= 0 {
		return &ValidationError{
			Field:   "PlayfieldHeight",
			Message: fmt.Sprintf("must be positive, got %v", config.PlayfieldHeight),
		}
	}

	if err := validatePhysicsConfig(config); err != nil {
		return err
	}

	if err := validateTurretConfig(config); err != nil {
		return err
	}

	if err := validateCannonConfigs(config.Cannons); err != nil {
		return err
	}

	if config.Rules.MaxActiveShells < 1 {
		return &ValidationError{
			Field:   "Rules.MaxActiveShells",
			Message: fmt.Sprintf("must be at least 1, got %d", config.Rules.MaxActiveShells),
		}
	}

	if config.Rules.TimeLimit < 0 {
		return &ValidationError{
			Field:   "Rules.TimeLimit",
			Message: fmt.Sprintf("must not be negative, got %v", config.Rules.TimeLimit),
		}
	}

	return nil
}

func validatePhysicsConfig(config *GameConfig) error {
	if config.Physics.Gravity < 0 {
		return &ValidationError{
			Field:   "Physics.Gravity",
			Message: fmt.Sprintf("must not be negative, got %v", config.Physics.Gravity),
		}
	}

	if config.Physics.Friction < 0 || config.Physics.Friction > 1 {
		return &ValidationError{
			Field:   "Physics.Friction",
			Message: fmt.Sprintf("must be between 0 and 1, got %v", config.Physics.Friction),
		}
	}

	if config.Physics.GroundHeight < 0 || config.Physics.GroundHeight >= config.PlayfieldHeight {
		return &ValidationError{
			Field:   "Physics.GroundHeight",
			Message: fmt.Sprintf("must be between 0 and the playfield height, got %v", config.Physics.GroundHeight),
		}
	}

	return nil
}

func validateTurretConfig(config *GameConfig) error {
	turret := config.Turret

	if turret.MoveSpeed <= 0 {
		return &ValidationError{
			Field:   "Turret.MoveSpeed",
			Message: fmt.Sprintf("must be positive, got %v", turret.MoveSpeed),
		}
	}

	if turret.AimSpeed <= 0 {
		return &ValidationError{
			Field:   "Turret.AimSpeed",
			Message: fmt.Sprintf("must be positive, got %v", turret.AimSpeed),
		}
	}

	if turret.MinAngle < 0 {
		return &ValidationError{
			Field:   "Turret.MinAngle",
			Message: fmt.Sprintf("must not aim below the horizon, got %v", turret.MinAngle),
		}
	}

	if turret.MaxAngle <= turret.MinAngle || turret.MaxAngle > math.Pi/2 {
		return &ValidationError{
			Field:   "Turret.MaxAngle",
			Message: fmt.Sprintf("must be above MinAngle and at most pi/2, got %v", turret.MaxAngle),
		}
	}

	if turret.PowerMin <= 0 {
		return &ValidationError{
			Field:   "Turret.PowerMin",
			Message: fmt.Sprintf("must be positive, got %v", turret.PowerMin),
		}
	}

	if turret.PowerMax <= turret.PowerMin {
		return &ValidationError{
			Field:   "Turret.PowerMax",
			Message: fmt.Sprintf("must be above PowerMin, got %v", turret.PowerMax),
		}
	}

	if turret.ChargeRate <= 0 {
		return &ValidationError{
			Field:   "Turret.ChargeRate",
			Message: fmt.Sprintf("must be positive, got %v", turret.ChargeRate),
		}
	}

	if turret.BarrelLength <= 0 || turret.BarrelLength*2 >= config.PlayfieldWidth {
		return &ValidationError{
			Field:   "Turret.BarrelLength",
			Message: fmt.Sprintf("must be positive and fit the playfield, got %v", turret.BarrelLength),
		}
	}

	if turret.StartX < 0 || turret.StartX > config.PlayfieldWidth {
		return &ValidationError{
			Field:   "Turret.StartX",
			Message: fmt.Sprintf("must be inside the playfield, got %v", turret.StartX),
		}
	}

	return nil
}

func validateCannonConfigs(cannons []CannonConfig) error {
	if len(cannons) == 0 {
		return &ValidationError{
			Field:   "Cannons",
			Message: "at least one cannon is required",
		}
	}

	for i, cannon := range cannons {
		if cannon.Name == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("Cannons[%d].Name", i),
				Message: "cannon name cannot be empty",
			}
		}
		if cannon.CooldownMS < 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("Cannons[%d].CooldownMS", i),
				Message: fmt.Sprintf("must not be negative, got %d", cannon.CooldownMS),
			}
		}
		if cannon.ShellRadius <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("Cannons[%d].ShellRadius", i),
				Message: fmt.Sprintf("must be positive, got %v", cannon.ShellRadius),
			}
		}
		if cannon.PowerScale <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("Cannons[%d].PowerScale", i),
				Message: fmt.Sprintf("must be positive, got %v", cannon.PowerScale),
			}
		}
	}

	return nil
}
