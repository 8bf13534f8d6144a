// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Renderer names accepted by BALLISTA_RENDERER.
const (
	RendererTUI      = "tui"
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
)

// EnvironmentConfig holds process-level settings sourced from
// BALLISTA_* environment variables. Simulation tuning lives in
// GameConfig; this covers how the process hosts it.
type EnvironmentConfig struct {
	Renderer   string
	ConfigPath string

	// Window Configuration (engo renderer only)
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	TargetFPS    int

	// Resource Management Configuration
	MaxMemoryMB           int64
	MaxGoroutines         int
	ShutdownTimeout       time.Duration
	ResourceCheckInterval time.Duration
}

// ValidationError describes a configuration value that is out of range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Message)
}

// LoadConfigFromEnv builds an EnvironmentConfig from environment
// variables, falling back to defaults for anything unset.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		Renderer:              getEnvOrDefault("BALLISTA_RENDERER", RendererTUI),
		ConfigPath:            getEnvOrDefault("BALLISTA_CONFIG_PATH", ""),
		WindowWidth:           getEnvAsIntOrDefault("BALLISTA_WINDOW_WIDTH", 1024),
		WindowHeight:          getEnvAsIntOrDefault("BALLISTA_WINDOW_HEIGHT", 768),
		Fullscreen:            getEnvAsBoolOrDefault("BALLISTA_FULLSCREEN", false),
		TargetFPS:             getEnvAsIntOrDefault("BALLISTA_TARGET_FPS", 60),
		MaxMemoryMB:           int64(getEnvAsIntOrDefault("BALLISTA_MAX_MEMORY_MB", 500)),
		MaxGoroutines:         getEnvAsIntOrDefault("BALLISTA_MAX_GOROUTINES", 100),
		ShutdownTimeout:       getEnvAsDurationOrDefault("BALLISTA_SHUTDOWN_TIMEOUT", 30*time.Second),
		ResourceCheckInterval: getEnvAsDurationOrDefault("BALLISTA_RESOURCE_CHECK_INTERVAL", 10*time.Second),
	}

	if err := validateEnvironmentConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateEnvironmentConfig checks that every process setting is inside
// its supported range.
func validateEnvironmentConfig(config *EnvironmentConfig) error {
	switch config.Renderer {
	case RendererTUI, RendererEngo, RendererTerminal:
	default:
		return &ValidationError{
			Field:   "Renderer",
			Message: fmt.Sprintf("must be one of %q, %q, %q, got %q", RendererTUI, RendererEngo, RendererTerminal, config.Renderer),
		}
	}

	if config.WindowWidth < 320 || config.WindowWidth > 7680 {
		return &ValidationError{
			Field:   "WindowWidth",
			Message: fmt.Sprintf("must be between 320 and 7680, got %d", config.WindowWidth),
		}
	}

	if config.WindowHeight < 240 || config.WindowHeight > 4320 {
		return &ValidationError{
			Field:   "WindowHeight",
			Message: fmt.Sprintf("must be between 240 and 4320, got %d", config.WindowHeight),
		}
	}

	if config.TargetFPS < 1 || config.TargetFPS > 240 {
		return &ValidationError{
			Field:   "TargetFPS",
			Message: fmt.Sprintf("must be between 1 and 240, got %d", config.TargetFPS),
		}
	}

	if config.MaxMemoryMB < 16 || config.MaxMemoryMB > 65536 {
		return &ValidationError{
			Field:   "MaxMemoryMB",
			Message: fmt.Sprintf("must be between 16 and 65536, got %d", config.MaxMemoryMB),
		}
	}

	if config.MaxGoroutines < 8 || config.MaxGoroutines > 100000 {
		return &ValidationError{
			Field:   "MaxGoroutines",
			Message: fmt.Sprintf("must be between 8 and 100000, got %d", config.MaxGoroutines),
		}
	}

	if config.ShutdownTimeout < time.Second || config.ShutdownTimeout > 5*time.Minute {
		return &ValidationError{
			Field:   "ShutdownTimeout",
			Message: fmt.Sprintf("must be between 1s and 5m, got %v", config.ShutdownTimeout),
		}
	}

	if config.ResourceCheckInterval < 100*time.Millisecond || config.ResourceCheckInterval > time.Minute {
		return &ValidationError{
			Field:   "ResourceCheckInterval",
			Message: fmt.Sprintf("must be between 100ms and 1m, got %v", config.ResourceCheckInterval),
		}
	}

	return nil
}

// ApplyEnvironmentOverrides overlays BALLISTA_* simulation variables
// onto a loaded game configuration. Unset variables leave the config
// untouched. The result is validated before it is accepted.
func ApplyEnvironmentOverrides(gameConfig *GameConfig) error {
	gameConfig.PlayfieldWidth = getEnvAsFloatOrDefault("BALLISTA_PLAYFIELD_WIDTH", gameConfig.PlayfieldWidth)
	gameConfig.PlayfieldHeight = getEnvAsFloatOrDefault("BALLISTA_PLAYFIELD_HEIGHT", gameConfig.PlayfieldHeight)
	gameConfig.Physics.Gravity = getEnvAsFloatOrDefault("BALLISTA_GRAVITY", gameConfig.Physics.Gravity)
	gameConfig.Physics.Wind.X = getEnvAsFloatOrDefault("BALLISTA_WIND_X", gameConfig.Physics.Wind.X)
	gameConfig.Physics.Wind.Y = getEnvAsFloatOrDefault("BALLISTA_WIND_Y", gameConfig.Physics.Wind.Y)
	gameConfig.Physics.Friction = getEnvAsFloatOrDefault("BALLISTA_FRICTION", gameConfig.Physics.Friction)
	gameConfig.Physics.GroundHeight = getEnvAsFloatOrDefault("BALLISTA_GROUND_HEIGHT", gameConfig.Physics.GroundHeight)
	gameConfig.Rules.MaxActiveShells = getEnvAsIntOrDefault("BALLISTA_MAX_SHELLS", gameConfig.Rules.MaxActiveShells)
	gameConfig.Rules.TimeLimit = getEnvAsFloatOrDefault("BALLISTA_TIME_LIMIT", gameConfig.Rules.TimeLimit)

	if err := ValidateGameConfig(gameConfig); err != nil {
		return fmt.Errorf("environment overrides produced an invalid config: %w", err)
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
// when unset.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault parses the environment variable as an int,
// returning the default when unset or unparseable.
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault parses the environment variable as a bool,
// returning the default when unset or unparseable.
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault parses the environment variable as a float64,
// returning the default when unset or unparseable.
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault parses the environment variable as a
// time.Duration, returning the default when unset or unparseable.
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
