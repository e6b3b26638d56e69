package config

import (
	"flag"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Frame width in pixels")
	flagHeight     = flag.Int("height", 0, "Frame height in pixels")
	flagCamera     = flag.String("camera", "", "Camera mode: track or orbit")
	flagAssets     = flag.String("assets", "", "Comma-separated asset roots, searched after the configured ones")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
// Width and height apply to both the window and snapshots.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	switch {
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
		cfg.Snapshot.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
		cfg.Snapshot.Height = *flagHeight
	}
	if *flagCamera != "" {
		cfg.Camera.Mode = *flagCamera
	}
	for _, root := range strings.Split(*flagAssets, ",") {
		if root = strings.TrimSpace(root); root != "" {
			cfg.Scene.AssetRoots = append(cfg.Scene.AssetRoots, root)
		}
	}
}
