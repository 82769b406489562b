package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   EventType
		wantOK bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, EventQuit, true},
		{"resize", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600}, EventWindowResize, true},
		{"window moved", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MOVED}, EventNone, false},
		{"key down", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}}, EventKeyDown, true},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}}, EventKeyUp, true},
		{"wheel", &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1}, EventMouseWheel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Type != tt.want {
				t.Errorf("Type = %v, want %v", got.Type, tt.want)
			}
		})
	}
}

func TestPushTracksHeldKeys(t *testing.T) {
	in := New()
	in.Push(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_UP}})
	if !in.IsKeyDown(sdl.SCANCODE_UP) {
		t.Error("UP should be held after key down")
	}
	if !in.IsKeyPressed(sdl.SCANCODE_UP) {
		t.Error("UP should be pressed this frame")
	}

	in.Push(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_UP}})
	if in.IsKeyDown(sdl.SCANCODE_UP) {
		t.Error("UP should be released after key up")
	}
}

func TestRepeatIsNotPressed(t *testing.T) {
	in := New()
	in.Push(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_SPACE}})
	if in.IsKeyPressed(sdl.SCANCODE_SPACE) {
		t.Error("auto-repeat should not count as a press")
	}
	if !in.IsKeyDown(sdl.SCANCODE_SPACE) {
		t.Error("auto-repeat still means held")
	}
}

func TestPushQuit(t *testing.T) {
	in := New()
	if !in.Push(&sdl.QuitEvent{Type: sdl.QUIT}) {
		t.Error("quit event should request close")
	}
}

func TestMouseDeltaAndWheel(t *testing.T) {
	in := New()
	in.Push(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT})
	in.Push(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: -1})
	in.Push(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 2, YRel: 4})
	in.Push(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -2})

	if !in.IsMouseDown(sdl.BUTTON_LEFT) {
		t.Error("left button should be held")
	}
	if dx, dy := in.MouseDelta(); dx != 5 || dy != 3 {
		t.Errorf("MouseDelta = %d,%d, want 5,3", dx, dy)
	}
	if w := in.Wheel(); w != -2 {
		t.Errorf("Wheel = %v, want -2", w)
	}
}
