// Package main runs the heightmap viewer in a bare SDL2 window without the
// editor UI.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/app"
	"github.com/Faultbox/heightmap-viewer/internal/config"
	"github.com/Faultbox/heightmap-viewer/internal/editor"
	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
	"github.com/Faultbox/heightmap-viewer/internal/engine/input"
	"github.com/Faultbox/heightmap-viewer/internal/engine/renderer"
	"github.com/Faultbox/heightmap-viewer/internal/engine/scene"
	"github.com/Faultbox/heightmap-viewer/internal/engine/screenshot"
	"github.com/Faultbox/heightmap-viewer/internal/engine/window"
	"github.com/Faultbox/heightmap-viewer/internal/logger"
	"github.com/Faultbox/heightmap-viewer/internal/scenefile"
)

// lightSpeed is how far the light moves per second while a key is held.
const lightSpeed = 5

var keyActions = map[sdl.Scancode]editor.Action{
	sdl.SCANCODE_ESCAPE: editor.ActionExit,
	sdl.SCANCODE_W:      editor.ActionToggleWireframe,
	sdl.SCANCODE_SPACE:  editor.ActionToggleRotation,
	sdl.SCANCODE_F12:    editor.ActionScreenshot,
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Heightmap Viewer (lite) ===")

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sampler := heightfield.NewSampler(cfg.Mesh.Amplitude)
	sampler.Epsilon = cfg.Mesh.Epsilon
	sampler.ColorFrequency = cfg.Mesh.ColorFrequency

	mesh, err := sampler.BuildMesh(cfg.Mesh.Resolution, cfg.Mesh.Step)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}

	win, err := window.New(window.Config{
		Title:      "Heightmap Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if _, err := renderer.Init(); err != nil {
		return err
	}

	hm, err := scene.NewHeightmapRenderer(mesh)
	if err != nil {
		return err
	}

	format, _ := screenshot.ParseFormat(cfg.Screenshot.Format)
	capture := screenshot.New(cfg.Screenshot.Dir, "heightmap", format)
	ed := editor.New(scenefile.FromConfig(cfg), nil)
	log := logger.Named("lite")

	renderer.Viewport(win.DisplaySize())
	var (
		meter fpsMeter
		title string
	)

	frame := func(a *app.Application) {
		in := win.Input()
		if err := dispatchKeys(ed, in, keyActions); err != nil {
			log.Warn("action failed", zap.Error(err))
		}
		moveLight(&ed.Settings, in, a.FrameDeltaTime())

		if in.IsMouseDown(sdl.BUTTON_LEFT) {
			dx, _ := in.MouseDelta()
			ed.Drag(float32(dx))
		}
		if wheel := in.Wheel(); wheel != 0 {
			ed.Zoom(wheel)
		}
		ed.Update(a.FrameDeltaTime())

		w, h := int32(a.Width()), int32(a.Height())
		if a.DimensionChanged() {
			renderer.Viewport(w, h)
		}
		renderer.Clear(ed.ClearColor())
		hm.Render(ed.FrameParams(a.AspectRatio()))
		renderer.CheckError("frame")

		if ed.TakeScreenshotRequest() {
			path, err := capture.SavePixels(renderer.ReadPixels(w, h), int(w), int(h))
			if err != nil {
				log.Error("screenshot failed", zap.Error(err))
			} else {
				log.Info("screenshot saved", zap.String("path", path))
			}
		}
		if fps, ok := meter.sample(a.Frames(), a.Time()); ok || ed.Title() != title {
			title = ed.Title()
			win.SetTitle(fmt.Sprintf("%s (%.0f fps)", title, fps))
		}
		if ed.ExitRequested() {
			a.Exit()
		}
	}

	a := app.New(win)
	a.Defer(func() error {
		hm.Destroy()
		return renderer.DrainErrors("teardown")
	})
	return a.Run(frame)
}

// dispatchKeys runs the action bound to each key pressed this frame.
func dispatchKeys(ed *editor.Editor, in *input.Input, bindings map[sdl.Scancode]editor.Action) error {
	var err error
	for key, action := range bindings {
		if in.IsKeyPressed(key) {
			err = multierr.Append(err, ed.Dispatch(action))
		}
	}
	return err
}

// fpsMeter averages the frame rate over windows of at least one second.
type fpsMeter struct {
	frames uint64
	since  float32
	fps    float32
}

// sample returns the latest average and whether it was just recomputed.
func (m *fpsMeter) sample(frames uint64, now float32) (float32, bool) {
	elapsed := now - m.since
	if elapsed < 1 {
		return m.fps, false
	}
	m.fps = float32(frames-m.frames) / elapsed
	m.frames, m.since = frames, now
	return m.fps, true
}

// moveLight applies held arrow and page keys to the light position.
func moveLight(s *scenefile.Settings, in *input.Input, dt float32) {
	axes := []struct {
		minus, plus sdl.Scancode
		axis        int
	}{
		{sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT, 0},
		{sdl.SCANCODE_DOWN, sdl.SCANCODE_UP, 1},
		{sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_PAGEUP, 2},
	}
	for _, a := range axes {
		var d float32
		if in.IsKeyDown(a.plus) {
			d += lightSpeed * dt
		}
		if in.IsKeyDown(a.minus) {
			d -= lightSpeed * dt
		}
		s.LightPos[a.axis] = mgl32.Clamp(s.LightPos[a.axis]+d, -editor.LightRange, editor.LightRange)
	}
}
