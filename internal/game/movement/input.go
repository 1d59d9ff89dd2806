package movement

import (
	"fmt"
	"strings"
)

// Key is a movement action, independent of the physical key bound to it.
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBackward
	KeyPanLeft
	KeyPanRight
	KeyTruckLeft
	KeyTruckRight
	KeyJump
)

var keyNames = map[Key]string{
	KeyNone:       "none",
	KeyForward:    "forward",
	KeyBackward:   "backward",
	KeyPanLeft:    "pan-left",
	KeyPanRight:   "pan-right",
	KeyTruckLeft:  "truck-left",
	KeyTruckRight: "truck-right",
	KeyJump:       "jump",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey returns the key with the given name.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name && k != KeyNone {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("unknown movement key %q", name)
}

// KeyEvent is a key-down or key-up edge. Run is set when the run modifier
// was held at the time of the event.
type KeyEvent struct {
	Key  Key
	Down bool
	Run  bool
}

// Press returns a key-down event.
func Press(k Key) KeyEvent { return KeyEvent{Key: k, Down: true} }

// Release returns a key-up event.
func Release(k Key) KeyEvent { return KeyEvent{Key: k} }

// InputState is the input gathered for one frame, in arrival order.
type InputState struct {
	Events []KeyEvent
}

// Add appends an event.
func (s *InputState) Add(ev KeyEvent) {
	s.Events = append(s.Events, ev)
}

// Reset clears the events, keeping the allocation.
func (s *InputState) Reset() {
	s.Events = s.Events[:0]
}
