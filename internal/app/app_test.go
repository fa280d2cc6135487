package app

import (
	"errors"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/glsl-primer/internal/engine/input"
)

// fakeProgram counts lifecycle calls instead of touching the GPU.
type fakeProgram struct {
	reloads   int
	destroys  int
	reloadErr error
}

func (f *fakeProgram) Bind()                      {}
func (f *fakeProgram) Unbind()                    {}
func (f *fakeProgram) Destroy()                   { f.destroys++ }
func (f *fakeProgram) Reload() error              { f.reloads++; return f.reloadErr }
func (f *fakeProgram) Location(name string) int32 { return -1 }

func newTestApp() (*App, *fakeProgram) {
	prog := &fakeProgram{}
	return &App{
		state: StateRunning,
		prog:  prog,
	}, prog
}

func keyPress(code sdl.Scancode) input.Event {
	return input.Event{Type: input.EventKeyPress, Key: code}
}

func TestHandleEvents_ReloadOncePerKeypress(t *testing.T) {
	a, prog := newTestApp()

	// One press, regardless of how many frames pass afterwards with no
	// further press events, reloads exactly once.
	a.handleEvents([]input.Event{keyPress(sdl.SCANCODE_SPACE)})
	a.handleEvents(nil)
	a.handleEvents(nil)

	if prog.reloads != 1 {
		t.Errorf("reloads = %d, want 1", prog.reloads)
	}

	// Two distinct presses reload twice.
	a.handleEvents([]input.Event{keyPress(sdl.SCANCODE_SPACE), keyPress(sdl.SCANCODE_SPACE)})
	if prog.reloads != 3 {
		t.Errorf("reloads = %d, want 3", prog.reloads)
	}
}

func TestHandleEvents_ReloadFailureContinues(t *testing.T) {
	a, prog := newTestApp()
	prog.reloadErr = errors.New("syntax error in fragment shader")

	a.handleEvents([]input.Event{keyPress(sdl.SCANCODE_SPACE)})

	if prog.reloads != 1 {
		t.Errorf("reloads = %d, want 1", prog.reloads)
	}
	if a.stopRequested {
		t.Error("failed reload must not terminate the loop")
	}
	if prog.destroys != 0 {
		t.Error("failed reload must keep the old program")
	}
}

func TestHandleEvents_EscapeRequestsStop(t *testing.T) {
	a, _ := newTestApp()

	a.handleEvents([]input.Event{keyPress(sdl.SCANCODE_ESCAPE)})
	if !a.stopRequested {
		t.Error("ESC did not request termination")
	}
}

func TestHandleEvents_QuitEventRequestsStop(t *testing.T) {
	a, _ := newTestApp()

	a.handleEvents([]input.Event{{Type: input.EventQuit}})
	if !a.stopRequested {
		t.Error("quit event did not request termination")
	}
}

func TestHandleEvents_LeftDragRotates(t *testing.T) {
	a, _ := newTestApp()

	a.handleEvents([]input.Event{
		{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 100, MouseY: 100},
		{Type: input.EventMouseMove, MouseX: 120, MouseY: 90},
		{Type: input.EventMouseMove, MouseX: 150, MouseY: 95},
	})

	if a.rotator.Azimuth != 50 {
		t.Errorf("azimuth = %f, want 50", a.rotator.Azimuth)
	}
	if a.rotator.Elevation != -5 {
		t.Errorf("elevation = %f, want -5", a.rotator.Elevation)
	}
}

func TestHandleEvents_MotionWithoutDragIgnored(t *testing.T) {
	a, _ := newTestApp()

	a.handleEvents([]input.Event{
		{Type: input.EventMouseMove, MouseX: 10, MouseY: 10},
		{Type: input.EventMouseMove, MouseX: 300, MouseY: 300},
	})

	if a.rotator.Azimuth != 0 || a.rotator.Elevation != 0 {
		t.Errorf("angles = (%f, %f), want (0, 0)", a.rotator.Azimuth, a.rotator.Elevation)
	}
}

func TestHandleEvents_RightButtonDoesNotDrag(t *testing.T) {
	a, _ := newTestApp()

	a.handleEvents([]input.Event{
		{Type: input.EventMouseDown, Button: sdl.BUTTON_RIGHT, MouseX: 0, MouseY: 0},
		{Type: input.EventMouseMove, MouseX: 100, MouseY: 100},
	})

	if a.rotator.Azimuth != 0 || a.rotator.Elevation != 0 {
		t.Errorf("angles = (%f, %f), want (0, 0)", a.rotator.Azimuth, a.rotator.Elevation)
	}
}

func TestHandleEvents_F12QueuesScreenshot(t *testing.T) {
	a, _ := newTestApp()

	a.handleEvents([]input.Event{keyPress(sdl.SCANCODE_F12)})
	if !a.screenshotNext {
		t.Error("F12 did not queue a screenshot")
	}
}

func TestRun_RefusesWhenNotRunning(t *testing.T) {
	a := &App{state: StateUninitialized}
	if err := a.Run(); err == nil {
		t.Error("Run on an uninitialized app must fail")
	}

	a = &App{state: StateTerminated}
	if err := a.Run(); err == nil {
		t.Error("Run on a terminated app must fail")
	}
}
