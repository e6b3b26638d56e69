package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/assets"
	"github.com/Faultbox/boardview/internal/config"
	"github.com/Faultbox/boardview/internal/engine/gfx/soft"
	"github.com/Faultbox/boardview/internal/engine/snapshot"
	"github.com/Faultbox/boardview/internal/logger"
)

// SimulatedFrameTime is the time step between headless frames, in seconds.
const SimulatedFrameTime = 1.0 / 60

// Snapshot renders cfg.Snapshot.Frames frames on the software device and
// writes the last one. It returns the written file path.
func Snapshot(cfg *config.Config, am *assets.Manager) (string, error) {
	sn := cfg.Snapshot
	width, height := sn.Width, sn.Height
	if width == 0 || height == 0 {
		width, height = cfg.Graphics.Width, cfg.Graphics.Height
	}
	ss := max(sn.Supersample, 1)
	frames := max(sn.Frames, 1)

	format, err := snapshot.ParseFormat(sn.Format)
	if err != nil {
		return "", err
	}

	dev, err := soft.New(width*ss, height*ss)
	if err != nil {
		return "", err
	}
	program, err := LoadProgram(dev, am, cfg.Scene.Shaders)
	if err != nil {
		return "", err
	}
	sc, err := LoadScene(dev, am, cfg.Scene, program)
	program.Release()
	if err != nil {
		return "", err
	}
	defer sc.Close()

	cam := NewCamera(cfg.Camera)
	orbiters := Orbiters(sc, cfg.Scene)
	clear := RGBA(cfg.Render.ClearColor)

	for i := 0; i < frames; i++ {
		// Objects move after the frame is drawn, as in the windowed loop.
		frame, err := BuildFrame(cfg, cam, Target(sc, cfg.Camera.Target), width*ss, height*ss)
		if err != nil {
			return "", fmt.Errorf("frame %d: %w", i, err)
		}
		if _, err := RenderFrame(dev, frame, clear, sc); err != nil {
			return "", fmt.Errorf("frame %d: %w", i, err)
		}
		Tick(orbiters, SimulatedFrameTime)
	}

	w := &snapshot.Writer{Dir: sn.Dir, Prefix: sn.Prefix, Format: format}
	if ss > 1 {
		w.Width, w.Height = width, height
	}
	path, err := w.Save(dev.LastFrame())
	if err != nil {
		return "", err
	}
	logger.Info("snapshot written",
		zap.String("path", path),
		zap.Int("frames", frames),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return path, nil
}
