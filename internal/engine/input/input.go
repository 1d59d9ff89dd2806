// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/grove/internal/game/movement"
)

// EventType identifies a window level event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventToggleFullscreen
)

// Event is a non-movement event from the last Update.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Bindings maps physical keys to movement keys.
type Bindings map[sdl.Scancode]movement.Key

// DefaultBindings are the WASD, arrow and Q/E bindings. Ctrl is the run
// modifier, Escape quits and F11 toggles fullscreen.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_W:     movement.KeyForward,
		sdl.SCANCODE_UP:    movement.KeyForward,
		sdl.SCANCODE_S:     movement.KeyBackward,
		sdl.SCANCODE_DOWN:  movement.KeyBackward,
		sdl.SCANCODE_A:     movement.KeyPanLeft,
		sdl.SCANCODE_LEFT:  movement.KeyPanLeft,
		sdl.SCANCODE_D:     movement.KeyPanRight,
		sdl.SCANCODE_RIGHT: movement.KeyPanRight,
		sdl.SCANCODE_Q:     movement.KeyTruckLeft,
		sdl.SCANCODE_E:     movement.KeyTruckRight,
		sdl.SCANCODE_SPACE: movement.KeyJump,
	}
}

// Input polls SDL and splits events into window events and a movement snapshot.
type Input struct {
	bindings Bindings
	events   []Event
	state    movement.InputState
}

// New creates an input handler with the default bindings.
func New() *Input {
	return &Input{
		bindings: DefaultBindings(),
		events:   make([]Event, 0, 4),
		state:    movement.InputState{Events: make([]movement.KeyEvent, 0, 8)},
	}
}

// Update drains the SDL queue. It returns true when the demo should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.state.Reset()
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			down := e.Type == sdl.KEYDOWN
			if down && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				i.events = append(i.events, Event{Type: EventQuit})
				quit = true
				continue
			}
			if down && e.Keysym.Scancode == sdl.SCANCODE_F11 {
				i.events = append(i.events, Event{Type: EventToggleFullscreen})
				continue
			}
			if key, ok := i.bindings[e.Keysym.Scancode]; ok {
				i.state.Add(movement.KeyEvent{
					Key:  key,
					Down: down,
					Run:  e.Keysym.Mod&sdl.KMOD_CTRL != 0,
				})
			}
		}
	}
	return quit
}

// Events returns the window events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Movement returns the key edges from the last Update, in arrival order.
func (i *Input) Movement() movement.InputState {
	return i.state
}
