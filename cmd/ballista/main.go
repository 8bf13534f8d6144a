// cmd/ballista/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-ballista/pkg/config"
	"github.com/opd-ai/go-ballista/pkg/engine"
	"github.com/opd-ai/go-ballista/pkg/logging"
	"github.com/opd-ai/go-ballista/pkg/render"
	engorender "github.com/opd-ai/go-ballista/pkg/render/engo"
	"github.com/opd-ai/go-ballista/pkg/render/tui"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	rendererName := flag.String("renderer", "tui", "Renderer type: 'tui', 'engo' or 'terminal'")
	width := flag.Int("width", 1024, "Window width (Engo only)")
	height := flag.Int("height", 768, "Window height (Engo only)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig := loadGameConfig(ctx, logger, *configPath)

	// Apply environment variable overrides
	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	if err := config.ValidateGameConfig(gameConfig); err != nil {
		logger.Error(ctx, "Invalid configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	game := engine.NewGame(gameConfig)
	if err := game.InitializeResourceManager(); err != nil {
		logger.Error(ctx, "Failed to start resource monitoring", err)
		os.Exit(1)
	}

	// Choose renderer based on command line flag
	switch *rendererName {
	case "engo":
		runEngo(game, *width, *height, *fullscreen)
	case "terminal":
		runTerminal(ctx, logger, game, gameConfig)
	case "tui":
		fallthrough
	default:
		if err := tui.Run(game); err != nil {
			logger.Error(ctx, "Terminal frontend failed", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := game.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Shutdown incomplete", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Shut down cleanly")
}

// loadGameConfig reads the config file, falling back to the default
// configuration when the file does not exist.
func loadGameConfig(ctx context.Context, logger *logging.Logger, path string) *config.GameConfig {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.DefaultConfig()
	}

	gameConfig, err := config.LoadConfig(path)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", path,
		)
		os.Exit(1)
	}

	return gameConfig
}

// runEngo starts the windowed frontend. The scene owns the game
// lifecycle from here: Setup starts it, Exit stops it.
func runEngo(game *engine.Game, width, height int, fullscreen bool) {
	scene := engorender.NewGameScene(game)

	opts := engo.RunOptions{
		Title:      "Go Ballista",
		Width:      width,
		Height:     height,
		Fullscreen: fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}

// runTerminal runs the bare ASCII viewer: a fixed 60 Hz loop printing
// frames straight to stdout until SIGINT/SIGTERM. A scripted aim sweep
// with a fire cadence keeps shells in the air, since this mode reads
// no input.
func runTerminal(ctx context.Context, logger *logging.Logger, game *engine.Game, gameConfig *config.GameConfig) {
	game.Start()

	renderer := render.NewTerminalRenderer(100, 30, gameConfig.Environment())

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		aim := 1.0
		n := 0
		for range ticker.C {
			n++
			if n%30 == 0 {
				aim = -aim
			}
			game.SetInput(engine.Input{
				Aim:          aim * 0.4,
				Fire:         n%20 == 0,
				SelectCannon: -1,
			})
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	logger.Info(ctx, "Terminal viewer running")

	for {
		select {
		case <-ticker.C:
			game.Update()
			game.Render(renderer)
		case <-sigChan:
			logger.Info(ctx, "Stopping terminal viewer")
			game.Stop()
			return
		}
	}
}
