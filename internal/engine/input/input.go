// Package input handles SDL2 input events and view rotation state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyPress
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event is one processed input event. MouseX/MouseY are set for the
// mouse event types, Width/Height for resizes and Key for key presses.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Pump drains the SDL event queue once per frame and exposes the
// frame's events as a slice.
type Pump struct {
	events []Event
}

// NewPump creates an event pump.
func NewPump() *Pump {
	return &Pump{
		events: make([]Event, 0, 16),
	}
}

// Poll drains pending SDL events into this frame's event list.
// Returns true when a quit request was seen.
func (p *Pump) Poll() bool {
	p.events = p.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			p.events = append(p.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				p.events = append(p.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Key repeats are dropped so held keys fire exactly once.
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				p.events = append(p.events, Event{
					Type: EventKeyPress,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			p.events = append(p.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			t := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = EventMouseUp
			}
			p.events = append(p.events, Event{
				Type:   t,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})
		}
	}

	return quit
}

// Events returns the events gathered by the last Poll.
func (p *Pump) Events() []Event {
	return p.events
}
