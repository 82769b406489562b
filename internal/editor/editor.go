// Package editor holds the viewer's scene state and the command dispatch
// behind its menus and key bindings. It has no UI toolkit dependency; the
// ImGui panels live in the gui subpackage.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/engine/camera"
	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
	"github.com/Faultbox/heightmap-viewer/internal/engine/scene"
	"github.com/Faultbox/heightmap-viewer/internal/engine/screenshot"
	"github.com/Faultbox/heightmap-viewer/internal/logger"
	"github.com/Faultbox/heightmap-viewer/internal/scenefile"
)

// ErrUnsupported is returned for menu entries the viewer only lists.
var ErrUnsupported = errors.New("editor: action not supported")

// Height scale slider range.
const (
	MinHeightScale float32 = 0.1
	MaxHeightScale float32 = 5.0
	LightRange     float32 = 20
)

// notifyDuration is how long status messages stay on screen.
const notifyDuration = 3 * time.Second

type fileOp int

const (
	fileOpen fileOp = iota
	fileSave
)

type pendingFile struct {
	op   fileOp
	path string
	err  error
}

// Editor is the viewer's interactive state.
type Editor struct {
	// Settings is the live scene state bound to the widgets.
	Settings scenefile.Settings
	Camera   *camera.OrbitCamera

	ScenePath string
	Dirty     bool

	ShowDemoWindow  bool
	ShowMetrics     bool
	ShowCamera      bool
	ShowPreferences bool
	ShowHelp        bool

	ScreenshotFormat screenshot.Format

	defaults scenefile.Settings
	history  *scenefile.History
	dialogs  Dialogs
	pending  chan pendingFile
	spawn    func(func())
	now      func() time.Time
	log      *zap.Logger

	exitRequested       bool
	screenshotRequested bool
	aboutRequested      bool

	message     string
	messageTime time.Time
}

// New creates an editor starting from initial settings. dialogs may be nil
// when no file dialogs are available.
func New(initial scenefile.Settings, dialogs Dialogs) *Editor {
	cam := camera.NewOrbitCamera(initial.Camera.Radius, initial.Camera.Height, initial.Camera.Speed)
	e := &Editor{
		Settings:         initial,
		Camera:           cam,
		ScreenshotFormat: screenshot.FormatPNG,
		defaults:         initial,
		history:          scenefile.NewHistory(initial, scenefile.DefaultHistoryDepth),
		dialogs:          dialogs,
		pending:          make(chan pendingFile, 4),
		spawn:            func(f func()) { go f() },
		now:              time.Now,
		log:              logger.Named("editor"),
	}
	e.syncCamera()
	return e
}

// Dispatch runs a menu or shortcut action.
func (e *Editor) Dispatch(a Action) error {
	e.log.Debug("action", zap.Stringer("action", a))

	switch a {
	case ActionNone:
	case ActionNewScene:
		e.Settings = e.defaults
		e.history.Reset(e.Settings)
		e.ScenePath = ""
		e.Dirty = false
		e.Notify("New scene")
	case ActionOpenScene:
		e.askPath(fileOpen)
	case ActionSaveScene:
		if e.ScenePath == "" {
			e.askPath(fileSave)
			return nil
		}
		return e.saveTo(e.ScenePath)
	case ActionSaveSceneAs:
		e.askPath(fileSave)
	case ActionExit:
		e.exitRequested = true
	case ActionUndo:
		if s, ok := e.history.Undo(); ok {
			e.Settings = s
			e.Dirty = true
		}
	case ActionRedo:
		if s, ok := e.history.Redo(); ok {
			e.Settings = s
			e.Dirty = true
		}
	case ActionPreferences:
		e.ShowPreferences = true
	case ActionToggleWireframe:
		e.Settings.Wireframe = !e.Settings.Wireframe
		e.Commit()
	case ActionCameraSettings:
		e.ShowCamera = true
	case ActionToggleRotation:
		e.Settings.Camera.AutoRotate = !e.Settings.Camera.AutoRotate
		e.Commit()
	case ActionScreenshot:
		e.screenshotRequested = true
	case ActionAddCube, ActionAddSphere, ActionDeleteObject:
		e.log.Warn("scene objects are not supported", zap.Stringer("action", a))
		return fmt.Errorf("%w: %s", ErrUnsupported, a)
	case ActionDocumentation:
		e.ShowHelp = true
	case ActionAbout:
		e.aboutRequested = true
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, a)
	}
	return nil
}

// Commit records the live settings in the undo history once an edit has
// settled.
func (e *Editor) Commit() {
	if e.history.Commit(e.Settings) {
		e.Dirty = true
	}
}

// CanUndo reports whether Undo has an effect.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo has an effect.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// SetDemoWindow shows or hides the ImGui demo window. It is exclusive with
// the metrics window.
func (e *Editor) SetDemoWindow(on bool) {
	e.ShowDemoWindow = on
	if on {
		e.ShowMetrics = false
	}
}

// SetMetrics shows or hides the ImGui metrics window.
func (e *Editor) SetMetrics(on bool) {
	e.ShowMetrics = on
	if on {
		e.ShowDemoWindow = false
	}
}

// SetScreenshotFormat changes the screenshot encoding.
func (e *Editor) SetScreenshotFormat(f screenshot.Format) {
	if e.ScreenshotFormat == f {
		return
	}
	e.ScreenshotFormat = f
	e.log.Info("screenshot format changed", zap.String("format", string(f)))
}

// ResetCamera restores the startup camera parameters.
func (e *Editor) ResetCamera() {
	e.Settings.Camera = e.defaults.Camera
	e.Camera.Center = mgl32.Vec3{}
	e.Camera.Angle = 0
	e.Commit()
}

// FrameBounds moves the orbit so the whole box is in view.
func (e *Editor) FrameBounds(b heightfield.Bounds) {
	e.Camera.FitToBounds(b.Min, b.Max)
	e.Settings.Camera.Radius = e.Camera.Radius
	e.Settings.Camera.Height = e.Camera.Height
	e.Commit()
}

// Update advances the camera by dt seconds.
func (e *Editor) Update(dt float32) {
	e.Settings.HeightScale = mgl32.Clamp(e.Settings.HeightScale, MinHeightScale, MaxHeightScale)
	e.syncCamera()
	e.Camera.Update(dt)
}

// Drag rotates the camera by a horizontal mouse delta.
func (e *Editor) Drag(dx float32) {
	e.Camera.HandleDrag(dx)
}

// Zoom changes the orbit radius and records it.
func (e *Editor) Zoom(wheel float32) {
	e.syncCamera()
	e.Camera.HandleZoom(wheel)
	e.Settings.Camera.Radius = e.Camera.Radius
	e.Commit()
}

func (e *Editor) syncCamera() {
	c := e.Settings.Camera
	e.Camera.Radius = mgl32.Clamp(c.Radius, e.Camera.MinRadius, e.Camera.MaxRadius)
	e.Camera.Height = c.Height
	e.Camera.Speed = c.Speed
	e.Camera.AutoRotate = c.AutoRotate
}

// FrameParams returns the draw parameters for the current state.
func (e *Editor) FrameParams(aspect float32) scene.FrameParams {
	l := e.Settings.LightPos
	return scene.FrameParams{
		Projection:  e.Camera.ProjectionMatrix(aspect),
		View:        e.Camera.ViewMatrix(),
		Model:       mgl32.Ident4(),
		LightPos:    mgl32.Vec3{l[0], l[1], l[2]},
		HeightScale: e.Settings.HeightScale,
		Wireframe:   e.Settings.Wireframe,
	}
}

// ClearColor returns the background color.
func (e *Editor) ClearColor() mgl32.Vec4 {
	return mgl32.Vec4(e.Settings.ClearColor)
}

// ExitRequested reports whether Exit was chosen.
func (e *Editor) ExitRequested() bool { return e.exitRequested }

// TakeScreenshotRequest returns and clears a pending screenshot request.
func (e *Editor) TakeScreenshotRequest() bool {
	r := e.screenshotRequested
	e.screenshotRequested = false
	return r
}

// TakeAboutRequest returns and clears a pending request to open About.
func (e *Editor) TakeAboutRequest() bool {
	r := e.aboutRequested
	e.aboutRequested = false
	return r
}

// Notify shows a short status message.
func (e *Editor) Notify(msg string) {
	e.message = msg
	e.messageTime = e.now()
}

// Message returns the status message while it is still visible.
func (e *Editor) Message() (string, bool) {
	if e.message == "" || e.now().Sub(e.messageTime) > notifyDuration {
		return "", false
	}
	return e.message, true
}

// Title returns the window title for the current scene.
func (e *Editor) Title() string {
	name := "Untitled"
	if e.ScenePath != "" {
		name = filepath.Base(e.ScenePath)
	}
	if e.Dirty {
		name += "*"
	}
	return name + " - Heightmap Viewer"
}

// askPath opens a file dialog off the main thread. The result is applied
// by ProcessPending on the next frame.
func (e *Editor) askPath(op fileOp) {
	if e.dialogs == nil {
		e.log.Warn("no file dialogs available")
		e.Notify("File dialogs are not available")
		return
	}
	dir := ""
	if e.ScenePath != "" {
		dir = filepath.Dir(e.ScenePath)
	}
	e.spawn(func() {
		var p pendingFile
		p.op = op
		if op == fileOpen {
			p.path, p.err = e.dialogs.OpenScene(dir)
		} else {
			p.path, p.err = e.dialogs.SaveScene(dir)
		}
		e.pending <- p
	})
}

// ProcessPending applies finished file dialogs. Call once per frame from
// the main thread.
func (e *Editor) ProcessPending() {
	for {
		select {
		case p := <-e.pending:
			e.applyFile(p)
		default:
			return
		}
	}
}

func (e *Editor) applyFile(p pendingFile) {
	if p.err != nil {
		e.log.Error("file dialog failed", zap.Error(p.err))
		e.Notify("File dialog failed")
		return
	}
	if p.path == "" {
		return
	}

	switch p.op {
	case fileOpen:
		if err := e.open(p.path); err != nil {
			e.log.Error("open scene failed", zap.String("path", p.path), zap.Error(err))
			e.Notify("Open failed: " + filepath.Base(p.path))
		}
	case fileSave:
		path := p.path
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			path += "." + scenefile.Extension
		}
		if err := e.saveTo(path); err != nil {
			e.log.Error("save scene failed", zap.String("path", path), zap.Error(err))
			e.Notify("Save failed: " + filepath.Base(path))
		}
	}
}

func (e *Editor) open(path string) error {
	s, err := scenefile.Load(path, e.defaults)
	if err != nil {
		return err
	}
	e.Settings = s
	e.history.Reset(s)
	e.ScenePath = path
	e.Dirty = false
	e.log.Info("scene opened", zap.String("path", path))
	e.Notify("Opened " + filepath.Base(path))
	return nil
}

func (e *Editor) saveTo(path string) error {
	if err := scenefile.Save(path, e.Settings); err != nil {
		return err
	}
	e.ScenePath = path
	e.Dirty = false
	e.log.Info("scene saved", zap.String("path", path))
	e.Notify("Saved " + filepath.Base(path))
	return nil
}
