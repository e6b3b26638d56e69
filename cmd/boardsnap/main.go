// Package main renders the configured scene without a window and writes the
// last frame to an image file.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/assets"
	"github.com/Faultbox/boardview/internal/config"
	"github.com/Faultbox/boardview/internal/logger"
	"github.com/Faultbox/boardview/internal/viewer"
)

var (
	flagFrames = flag.Int("frames", 0, "Number of simulated frames (overrides config)")
	flagFormat = flag.String("format", "", "Output format: png or webp (overrides config)")
	flagOut    = flag.String("out", "", "Output directory (overrides config)")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *flagFrames > 0 {
		cfg.Snapshot.Frames = *flagFrames
	}
	if *flagFormat != "" {
		cfg.Snapshot.Format = *flagFormat
	}
	if *flagOut != "" {
		cfg.Snapshot.Dir = *flagOut
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	am := assets.NewManager()
	for _, root := range cfg.Scene.AssetRoots {
		if err := am.AddRoot(root); err != nil {
			logger.Error("bad asset root", zap.Error(err))
			os.Exit(1)
		}
	}

	path, err := viewer.Snapshot(cfg, am)
	if err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(path)
}
