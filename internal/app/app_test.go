package app

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/multierr"
)

// fakeDriver runs frames until closed or until its size script runs out.
type fakeDriver struct {
	sizes       [][2]int32
	frame       int
	shouldClose bool
}

func (d *fakeDriver) Run(frame func()) {
	for !d.shouldClose && d.frame < len(d.sizes) {
		frame()
		d.frame++
	}
}

func (d *fakeDriver) DisplaySize() (int32, int32) {
	i := min(d.frame, len(d.sizes)-1)
	return d.sizes[i][0], d.sizes[i][1]
}

func (d *fakeDriver) SetShouldClose(v bool) { d.shouldClose = v }

type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

func newTestApp(sizes ...[2]int32) (*Application, *fakeDriver) {
	d := &fakeDriver{sizes: sizes}
	a := New(d)
	clock := &fakeClock{t: time.Unix(1000, 0), step: 16 * time.Millisecond}
	a.now = clock.now
	return a, d
}

func TestRunCallsFramePerDriverFrame(t *testing.T) {
	a, _ := newTestApp([2]int32{640, 480}, [2]int32{640, 480}, [2]int32{640, 480})

	calls := 0
	if err := a.Run(func(*Application) { calls++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if calls != 3 {
		t.Errorf("expected 3 frames, got %d", calls)
	}
	if a.Frames() != 3 {
		t.Errorf("expected frame counter 3, got %d", a.Frames())
	}
	if a.state != StateExit {
		t.Errorf("expected exit state, got %s", a.state)
	}
}

func TestRunTwiceFails(t *testing.T) {
	a, _ := newTestApp([2]int32{640, 480})
	if err := a.Run(func(*Application) {}); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := a.Run(func(*Application) {}); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

func TestTiming(t *testing.T) {
	a, _ := newTestApp([2]int32{640, 480}, [2]int32{640, 480}, [2]int32{640, 480})

	var deltas, times []float32
	a.Run(func(a *Application) {
		deltas = append(deltas, a.FrameDeltaTime())
		times = append(times, a.Time())
	})

	for i, d := range deltas {
		if d < 0.0159 || d > 0.0161 {
			t.Errorf("frame %d: delta %f, want 0.016", i, d)
		}
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Errorf("time must increase: %v", times)
		}
	}
}

func TestDimensionChanged(t *testing.T) {
	a, _ := newTestApp(
		[2]int32{640, 480},
		[2]int32{800, 600},
		[2]int32{800, 600},
	)

	var changed []bool
	var widths []int
	a.Run(func(a *Application) {
		changed = append(changed, a.DimensionChanged())
		widths = append(widths, a.Width())
	})

	want := []bool{false, true, false}
	for i := range want {
		if changed[i] != want[i] {
			t.Errorf("frame %d: changed=%v, want %v", i, changed[i], want[i])
		}
	}
	if widths[2] != 800 {
		t.Errorf("expected width 800 after resize, got %d", widths[2])
	}
	if r := a.AspectRatio(); r < 1.333 || r > 1.334 {
		t.Errorf("expected aspect 4:3, got %f", r)
	}
}

func TestExitStopsLoop(t *testing.T) {
	sizes := make([][2]int32, 10)
	for i := range sizes {
		sizes[i] = [2]int32{320, 240}
	}
	a, d := newTestApp(sizes...)

	calls := 0
	a.Run(func(a *Application) {
		calls++
		if calls == 2 {
			a.Exit()
		}
	})

	if calls != 2 {
		t.Errorf("expected loop to stop after 2 frames, got %d", calls)
	}
	if !d.shouldClose {
		t.Error("expected driver to be told to close")
	}
}

func TestAspectRatioZeroHeight(t *testing.T) {
	a, _ := newTestApp([2]int32{640, 0})
	if r := a.AspectRatio(); r != 1 {
		t.Errorf("expected 1 for zero height, got %f", r)
	}
}

func TestDeferRunsInReverseAndCombinesErrors(t *testing.T) {
	a, _ := newTestApp([2]int32{640, 480})

	var order []int
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	a.Defer(func() error { order = append(order, 1); return errA })
	a.Defer(func() error { order = append(order, 2); return nil })
	a.Defer(func() error { order = append(order, 3); return errC })

	err := a.Run(func(*Application) {})
	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("teardown order = %v, want [3 2 1]", order)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errC) {
		t.Errorf("Run error = %v, want both teardown errors", err)
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("combined %d errors, want 2", n)
	}
}
