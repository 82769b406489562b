// Package app drives the per-frame loop: timing, resize detection and the
// Ready -> Run -> Exit lifecycle. It owns no window itself; a Driver supplies
// the event loop and the display size.
package app

import (
	"errors"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

// ErrNotReady is returned by Run when the application already ran.
var ErrNotReady = errors.New("app: application is not in Ready state")

// State is the lifecycle state of an Application.
type State int

const (
	StateReady State = iota
	StateRun
	StateExit
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRun:
		return "run"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Driver is the window/event-loop collaborator.
// Run must call frame once per displayed frame until the window closes or
// SetShouldClose(true) is called.
type Driver interface {
	Run(frame func())
	DisplaySize() (width, height int32)
	SetShouldClose(bool)
}

// FrameFunc renders one frame. It receives the application so it can read
// timing and size, or call Exit.
type FrameFunc func(a *Application)

// Application tracks frame timing and window size for one run loop.
type Application struct {
	driver Driver
	now    func() time.Time
	log    *zap.Logger

	teardown []func() error

	state            State
	start            time.Time
	last             time.Time
	time             float32
	deltaTime        float32
	frames           uint64
	width            int
	height           int
	dimensionChanged bool
}

// New creates an application in the Ready state.
func New(driver Driver) *Application {
	w, h := driver.DisplaySize()
	return &Application{
		driver: driver,
		now:    time.Now,
		log:    logger.Named("app"),
		state:  StateReady,
		width:  int(w),
		height: int(h),
	}
}

// Defer registers fn to run after the loop ends. Functions run in reverse
// registration order and every error is returned from Run.
func (a *Application) Defer(fn func() error) {
	a.teardown = append(a.teardown, fn)
}

// Run executes frame once per driver frame until Exit is called or the
// driver stops. It may only be called once.
func (a *Application) Run(frame FrameFunc) error {
	if a.state != StateReady {
		return ErrNotReady
	}

	a.state = StateRun
	a.start = a.now()
	a.last = a.start
	a.log.Info("run loop started", zap.Int("width", a.width), zap.Int("height", a.height))

	a.driver.Run(func() {
		if a.state != StateRun {
			return
		}
		a.tick()
		frame(a)
	})

	a.state = StateExit
	a.log.Info("run loop finished", zap.Uint64("frames", a.frames), zap.Float32("seconds", a.time))

	var err error
	for i := len(a.teardown) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.teardown[i]())
	}
	a.teardown = nil
	return err
}

// tick advances timing and checks for window size changes.
func (a *Application) tick() {
	now := a.now()
	a.deltaTime = float32(now.Sub(a.last).Seconds())
	a.time = float32(now.Sub(a.start).Seconds())
	a.last = now
	a.frames++

	w, h := a.driver.DisplaySize()
	a.dimensionChanged = int(w) != a.width || int(h) != a.height
	if a.dimensionChanged {
		a.width, a.height = int(w), int(h)
		a.log.Info("window resized", zap.Int("width", a.width), zap.Int("height", a.height))
	}
}

// Exit stops the loop after the current frame.
func (a *Application) Exit() {
	if a.state == StateExit {
		return
	}
	a.state = StateExit
	a.driver.SetShouldClose(true)
}

// Time returns seconds since Run started, as of the current frame.
func (a *Application) Time() float32 { return a.time }

// FrameDeltaTime returns seconds between the current and previous frame.
func (a *Application) FrameDeltaTime() float32 { return a.deltaTime }

// Frames returns the number of frames run so far.
func (a *Application) Frames() uint64 { return a.frames }

// Width returns the display width.
func (a *Application) Width() int { return a.width }

// Height returns the display height.
func (a *Application) Height() int { return a.height }

// AspectRatio returns width/height, or 1 for a zero-height display.
func (a *Application) AspectRatio() float32 {
	if a.height == 0 {
		return 1
	}
	return float32(a.width) / float32(a.height)
}

// DimensionChanged reports whether the size changed since the previous frame.
func (a *Application) DimensionChanged() bool { return a.dimensionChanged }
