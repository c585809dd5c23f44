// Package input turns host key and mouse events into per-frame actions.
// Hosts translate their native key codes to key names ("W", "Tab", "F12")
// and feed them through Bindings into a Frame.
package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Action is something the player can ask for.
type Action uint8

const (
	ActionNone Action = iota
	MoveForward
	MoveBack
	StrafeLeft
	StrafeRight
	RotateLeft
	RotateRight
	Regenerate
	ToggleOverlay
	Screenshot
	Quit
)

var actionNames = map[Action]string{
	MoveForward:   "forward",
	MoveBack:      "back",
	StrafeLeft:    "strafe_left",
	StrafeRight:   "strafe_right",
	RotateLeft:    "rotate_left",
	RotateRight:   "rotate_right",
	Regenerate:    "regenerate",
	ToggleOverlay: "toggle_overlay",
	Screenshot:    "screenshot",
	Quit:          "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAction returns the action with the given config name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// Bindings maps key names to actions. Key names compare case-insensitively.
type Bindings struct {
	keys map[string]Action
}

// DefaultBindings returns the standard layout: WASD to move, Q/E to turn,
// R to regenerate, Tab for the map overlay, F12 for screenshots, Escape
// to quit.
func DefaultBindings() *Bindings {
	b, _ := NewBindings(map[string]string{
		"forward":        "W",
		"back":           "S",
		"strafe_left":    "A",
		"strafe_right":   "D",
		"rotate_left":    "Q",
		"rotate_right":   "E",
		"regenerate":     "R",
		"toggle_overlay": "Tab",
		"screenshot":     "F12",
		"quit":           "Escape",
	})
	return b
}

// NewBindings builds bindings from action name to key name pairs, as they
// appear in the controls section of the config.
func NewBindings(byAction map[string]string) (*Bindings, error) {
	b := &Bindings{keys: make(map[string]Action, len(byAction))}
	for name, key := range byAction {
		a, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		if key == "" {
			continue
		}
		norm := normalizeKey(key)
		if prev, ok := b.keys[norm]; ok {
			return nil, fmt.Errorf("key %q bound to both %s and %s", key, prev, a)
		}
		b.keys[norm] = a
	}
	return b, nil
}

// Lookup returns the action bound to key.
func (b *Bindings) Lookup(key string) (Action, bool) {
	a, ok := b.keys[normalizeKey(key)]
	return a, ok
}

// Keys returns every bound key name, sorted.
func (b *Bindings) Keys() []string {
	keys := make([]string, 0, len(b.keys))
	for k := range b.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Frame is the input state for one frame.
type Frame struct {
	pressed mapset.Set[Action] // went down this frame
	held    mapset.Set[Action] // down at the end of the frame

	// Mouse position in window pixels; valid when HasMouse is set.
	MouseX, MouseY float64
	HasMouse       bool

	// View size the mouse position is relative to.
	ViewWidth, ViewHeight int

	// CloseRequested is set when the host window was closed.
	CloseRequested bool
}

// NewFrame returns a frame with nothing pressed.
func NewFrame() Frame {
	return Frame{
		pressed: mapset.New[Action](),
		held:    mapset.New[Action](),
	}
}

// Press records a key going down this frame; it also counts as held.
func (f *Frame) Press(a Action) {
	f.ensure()
	f.pressed.Put(a)
	f.held.Put(a)
}

// Hold records a key that is down.
func (f *Frame) Hold(a Action) {
	f.ensure()
	f.held.Put(a)
}

// Pressed reports whether a went down this frame.
func (f Frame) Pressed(a Action) bool {
	return f.pressed.Size() > 0 && f.pressed.Has(a)
}

// Down reports whether a is held.
func (f Frame) Down(a Action) bool {
	return f.held.Size() > 0 && f.held.Has(a)
}

// HeldCount returns the number of held actions.
func (f Frame) HeldCount() int {
	return f.held.Size()
}

// ensure allocates the sets of a zero Frame. Empty sets hold nothing worth
// keeping, so they are simply replaced.
func (f *Frame) ensure() {
	if f.held.Size() == 0 && f.pressed.Size() == 0 {
		f.pressed = mapset.New[Action]()
		f.held = mapset.New[Action]()
	}
}
