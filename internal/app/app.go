// Package app runs the windowed viewer loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/boardview/internal/assets"
	"github.com/Faultbox/boardview/internal/config"
	"github.com/Faultbox/boardview/internal/engine/camera"
	"github.com/Faultbox/boardview/internal/engine/gfx"
	"github.com/Faultbox/boardview/internal/engine/input"
	"github.com/Faultbox/boardview/internal/engine/opengl"
	"github.com/Faultbox/boardview/internal/engine/picking"
	"github.com/Faultbox/boardview/internal/engine/renderer"
	"github.com/Faultbox/boardview/internal/engine/scene"
	"github.com/Faultbox/boardview/internal/engine/snapshot"
	"github.com/Faultbox/boardview/internal/engine/window"
	"github.com/Faultbox/boardview/internal/logger"
	"github.com/Faultbox/boardview/internal/viewer"
)

const windowTitle = "Boardview"

// App is the windowed viewer.
type App struct {
	cfg     *config.Config
	running bool

	window *window.Window
	device *opengl.Device
	input  *input.Input
	assets *assets.Manager

	scene    *scene.Scene
	orbiters []*viewer.Orbiter
	camera   *camera.Camera
	orbit    *camera.OrbitCamera
	clear    gfx.Color
	shots    *snapshot.Writer

	target    string
	lastFrame renderer.Frame
}

// New opens the window and loads the configured scene.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	a := &App{
		cfg:    cfg,
		input:  input.New(),
		assets: assets.NewManager(),
		camera: viewer.NewCamera(cfg.Camera),
		clear:  viewer.RGBA(cfg.Render.ClearColor),
		target: cfg.Camera.Target,
	}
	for _, root := range cfg.Scene.AssetRoots {
		if err := a.assets.AddRoot(root); err != nil {
			return nil, err
		}
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		DepthBits:  24,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create device (AFTER window, since OpenGL context must exist)
	w, h := a.window.DrawableSize()
	a.device, err = opengl.New(a.window.SwapBuffers, w, h)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	program, err := viewer.LoadProgram(a.device, a.assets, cfg.Scene.Shaders)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.scene, err = viewer.LoadScene(a.device, a.assets, cfg.Scene, program)
	program.Release()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.orbiters = viewer.Orbiters(a.scene, cfg.Scene)

	if cfg.Camera.Mode == config.CameraOrbit {
		a.orbit = camera.NewOrbitCamera()
		a.orbit.Center = viewer.Target(a.scene, a.target)
	}

	format, err := snapshot.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.shots = &snapshot.Writer{Dir: cfg.Snapshot.Dir, Prefix: cfg.Snapshot.Prefix, Format: format}

	logger.Info("viewer initialized successfully")
	return a, nil
}

// Run loops until the window is closed or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for a.running {
		// Calculate delta time
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Render
		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 3. Update scene
		viewer.Tick(a.orbiters, dt)

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.device.Resize(a.window.DrawableSize())
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_F12 {
				a.saveScreenshot()
			}
		case input.EventMouseMove:
			if a.orbit != nil && a.input.IsButtonDown(sdl.BUTTON_LEFT) {
				a.orbit.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			if a.orbit != nil {
				a.orbit.HandleZoom(float32(event.DeltaY))
			}
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				a.pick(event.MouseX, event.MouseY)
			}
		}
	}
}

// pick retargets the camera at the object under the cursor.
func (a *App) pick(x, y int) {
	// Mouse coordinates are in window units, the viewport in pixels.
	ww, wh := a.window.Size()
	dw, dh := a.device.Size()
	sx := float32(x) * float32(dw) / float32(ww)
	sy := float32(y) * float32(dh) / float32(wh)

	ray, err := picking.ScreenToRay(sx, sy, float32(dw), float32(dh), a.lastFrame.View, a.lastFrame.Projection)
	if err != nil {
		logger.Debug("pick ray failed", zap.Error(err))
		return
	}
	obj, dist := picking.Pick(ray, a.scene.Objects())
	if obj == nil {
		return
	}
	a.target = obj.Name
	logger.Info("camera target changed", zap.String("object", obj.Name), zap.Float32("distance", dist))
}

// minimizedDelayMS throttles the loop while there is nothing to draw.
const minimizedDelayMS = 16

// render draws one frame with a fresh renderer. A minimized window has no
// drawable area; the frame is skipped until it is restored.
func (a *App) render() error {
	w, h := a.device.Size()
	if w <= 0 || h <= 0 {
		sdl.Delay(minimizedDelayMS)
		return nil
	}
	target := viewer.Target(a.scene, a.target)
	frame, err := viewer.BuildFrame(a.cfg, a.camera, target, w, h)
	if err != nil {
		return err
	}
	if a.orbit != nil {
		a.orbit.Center = target
		if frame.View, err = a.orbit.ViewMatrix(); err != nil {
			return fmt.Errorf("orbit view: %w", err)
		}
	}
	a.lastFrame = frame
	_, err = viewer.RenderFrame(a.device, frame, a.clear, a.scene)
	return err
}

// saveScreenshot reads back the color buffer.
func (a *App) saveScreenshot() {
	path, err := a.shots.Save(a.device.ReadPixels())
	if err != nil {
		logger.Error("failed to save screenshot", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close frees the scene, the device and the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.scene != nil {
		a.scene.Close()
	}
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.assets.Close()
}
