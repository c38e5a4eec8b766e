package main

import (
	"flag"
	"os"

	"portfolio3d/internal/analytics"
	"portfolio3d/internal/config"
	"portfolio3d/internal/loop"
	"portfolio3d/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	assetsPath := flag.String("assets", "", "Path to the assets folder")
	layoutPath := flag.String("layout", "", "World layout to apply at startup")
	exportPath := flag.String("export-layout", "", "Write the main world layout to this file and exit")
	pkgPath := flag.String("pkg", "", "Asset bundle to unpack before starting")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	silentFlag := flag.Bool("silent", false, "Disable audio")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			utils.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	}

	if level, err := utils.ParseLevel(cfg.LogLevel); err == nil {
		utils.CurrentLevel = level
	} else {
		utils.Warn("%v, keeping %s", err, utils.CurrentLevel)
	}
	utils.DebugMode = *debugFlag
	if utils.DebugMode {
		utils.CurrentLevel = utils.LevelDebug
	}
	utils.SilentMode = *silentFlag || !cfg.Audio.Enabled

	utils.Info("--- Portfolio 3D Start ---")
	utils.DiscoverAssets(*assetsPath)

	if *pkgPath != "" {
		if err := unpackAssets(*pkgPath); err != nil {
			utils.Error("Failed to unpack %s: %v", *pkgPath, err)
			os.Exit(1)
		}
	}

	tracker := analytics.New(nil)
	if *exportPath != "" {
		w := BuildWorld(tracker, nil)
		if err := exportLayout(w, *exportPath); err != nil {
			utils.Error("Failed to export layout: %v", err)
			os.Exit(1)
		}
		return
	}

	width, height := cfg.ScreenSize()
	utils.CloseX11()

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), cfg.Window.Title)
	defer rl.CloseWindow()

	previews := loadPreviews()
	w := BuildWorld(tracker, previews)

	layout := *layoutPath
	if layout == "" {
		layout = cfg.World.Layout
	}
	if layout != "" {
		if err := loadLayoutFile(w, layout); err != nil {
			utils.Warn("Layout %s not applied: %v", layout, err)
		}
	}

	game := NewGame(cfg, loop.SystemClock{}, w, tracker, width, height)
	game.Init(previews)
	defer game.Close()

	if layout != "" && cfg.World.WatchLayout {
		if err := game.Watch(layout); err != nil {
			utils.Warn("Layout hot reload disabled: %v", err)
		}
	}

	utils.Info("Starting game loop...")
	game.Run()
	utils.Info("Recorded %d interactions", tracker.Data().TotalInteractions)
}
