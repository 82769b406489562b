// Package ui provides the ImGui window backend. The backend owns the SDL
// window and GL context and drives the frame loop.
package ui

import (
	"fmt"
	"os"
	"runtime"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

func init() {
	// SDL and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

// latinGlyphRanges covers Basic Latin and Latin-1 Supplement.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF,
	0,
}

// Options configures the backend window and ImGui context.
type Options struct {
	Title     string
	Width     int
	Height    int
	Docking   bool
	Viewports bool
	TargetFPS uint
	FontPath  string
	FontSize  float32
	BgColor   [4]float32
}

// Backend wraps the cimgui-go SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	opts    Options
	log     *zap.Logger
}

// NewBackend creates the window and ImGui context. GL function pointers are
// not loaded here; call renderer.Init afterwards.
func NewBackend(opts Options) (*Backend, error) {
	b := &Backend{
		opts: opts,
		log:  logger.Named("ui"),
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(b.configureContext)

	c := opts.BgColor
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], c[3]))
	b.backend.CreateWindow(opts.Title, opts.Width, opts.Height)
	if opts.TargetFPS > 0 {
		b.backend.SetTargetFPS(opts.TargetFPS)
	}

	b.log.Info("window created",
		zap.String("title", opts.Title),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Bool("docking", opts.Docking),
		zap.Bool("viewports", opts.Viewports),
	)
	return b, nil
}

// configureContext runs once the ImGui context exists.
func (b *Backend) configureContext() {
	io := imgui.CurrentIO()

	flags := io.ConfigFlags() | imgui.ConfigFlagsNavEnableKeyboard
	if b.opts.Docking {
		flags |= imgui.ConfigFlagsDockingEnable
	}
	if b.opts.Viewports {
		flags |= imgui.ConfigFlagsViewportsEnable
	}
	io.SetConfigFlags(flags)

	b.loadFont()
}

func (b *Backend) loadFont() {
	path := b.opts.FontPath
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		b.log.Warn("font not found, using default font", zap.String("path", path))
		return
	}

	size := b.opts.FontSize
	if size <= 0 {
		size = 16
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	font := imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, size, fontCfg, &latinGlyphRanges[0])
	if font == nil {
		b.log.Warn("failed to load font", zap.String("path", path))
		return
	}
	b.log.Info("loaded font", zap.String("path", path), zap.Float32("size", size))
}

// OnClose registers fn to run while the GL context is still current, just
// before the backend destroys it.
func (b *Backend) OnClose(fn func()) {
	b.backend.SetBeforeDestroyContextHook(fn)
}

// Close releases the window and GL context when startup fails before Run.
// The backend loop is entered with the window already closed, so its own
// cleanup and the OnClose hook still run.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
	b.backend.Run(func() {})
}

// Run starts the main render loop. It returns when the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// DisplaySize returns the current window size in logical pixels.
func (b *Backend) DisplaySize() (int32, int32) {
	return b.backend.DisplaySize()
}

// SetShouldClose asks the backend to end the loop after this frame.
func (b *Backend) SetShouldClose(v bool) {
	b.backend.SetShouldClose(v)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// SetBgColor changes the color the backend clears the window with.
func (b *Backend) SetBgColor(c [4]float32) {
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], c[3]))
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsChordPressed checks a modifier+key combination.
func IsChordPressed(mod, key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(mod) | imgui.KeyChord(key))
}
