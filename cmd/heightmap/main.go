// Package main is the entry point for the heightmap viewer with its ImGui
// editor.
package main

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/app"
	"github.com/Faultbox/heightmap-viewer/internal/config"
	"github.com/Faultbox/heightmap-viewer/internal/editor"
	"github.com/Faultbox/heightmap-viewer/internal/editor/gui"
	"github.com/Faultbox/heightmap-viewer/internal/engine/framebuffer"
	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
	"github.com/Faultbox/heightmap-viewer/internal/engine/renderer"
	"github.com/Faultbox/heightmap-viewer/internal/engine/scene"
	"github.com/Faultbox/heightmap-viewer/internal/engine/screenshot"
	"github.com/Faultbox/heightmap-viewer/internal/engine/ui"
	"github.com/Faultbox/heightmap-viewer/internal/logger"
	"github.com/Faultbox/heightmap-viewer/internal/scenefile"
)

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

	logger.Info("=== Heightmap Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	sampler := heightfield.NewSampler(cfg.Mesh.Amplitude)
	sampler.Epsilon = cfg.Mesh.Epsilon
	sampler.ColorFrequency = cfg.Mesh.ColorFrequency

	mesh, err := sampler.BuildMesh(cfg.Mesh.Resolution, cfg.Mesh.Step)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}
	logger.Info("mesh built",
		zap.Int("resolution", mesh.Resolution),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("indices", mesh.IndexCount()),
	)

	if cfg.Graphics.Fullscreen {
		logger.Warn("fullscreen is not supported by the editor window, using windowed mode")
	}

	backend, err := ui.NewBackend(ui.Options{
		Title:     "Heightmap Viewer",
		Width:     cfg.Graphics.Width,
		Height:    cfg.Graphics.Height,
		Docking:   cfg.UI.Docking,
		Viewports: cfg.UI.Viewports,
		TargetFPS: uint(cfg.Graphics.FPSLimit),
		FontPath:  cfg.UI.FontPath,
		FontSize:  cfg.UI.FontSize,
		BgColor:   cfg.Scene.ClearColor,
	})
	if err != nil {
		return err
	}

	// GL objects must be released before the backend drops the context,
	// including when a later startup step fails.
	var (
		release     releaseStack
		teardownErr error
	)
	backend.OnClose(release.run)
	fail := func(err error) error {
		backend.Close()
		return multierr.Append(err, teardownErr)
	}

	if _, err := renderer.Init(); err != nil {
		return fail(err)
	}
	release.push(func() { teardownErr = renderer.DrainErrors("teardown") })

	hm, err := scene.NewHeightmapRenderer(mesh)
	if err != nil {
		return fail(err)
	}
	release.push(hm.Destroy)

	target, err := framebuffer.New(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return fail(err)
	}
	release.push(target.Destroy)

	// Validated by config.Load.
	format, _ := screenshot.ParseFormat(cfg.Screenshot.Format)
	capture := screenshot.New(cfg.Screenshot.Dir, "heightmap", format)

	ed := editor.New(scenefile.FromConfig(cfg), gui.NativeDialogs{})
	ed.ScreenshotFormat = format
	ed.SetDemoWindow(cfg.UI.ShowDemoWindow)

	view := gui.New(ed, backend, hm, target, capture, mesh, cfg.UI.Docking)
	view.SavePreferences = func(f screenshot.Format) error {
		cfg.Screenshot.Format = string(f)
		return cfg.Save()
	}
	release.push(view.Destroy)

	a := app.New(backend)
	a.Defer(func() error { return teardownErr })
	return a.Run(view.Frame)
}

// releaseStack holds cleanups for objects created after the backend.
type releaseStack []func()

func (s *releaseStack) push(fn func()) {
	*s = append(*s, fn)
}

// run calls every cleanup, newest first, and empties the stack.
func (s *releaseStack) run() {
	for i := len(*s) - 1; i >= 0; i-- {
		(*s)[i]()
	}
	*s = nil
}
