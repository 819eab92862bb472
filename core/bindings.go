package core

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"cabin-engine/config"
	"cabin-engine/input"
)

// Bindings maps GLFW keys and mouse buttons onto input actions. A key may
// drive more than one action, and an action stays held while any key bound
// to it is down.
type Bindings struct {
	Keys    map[glfw.Key][]input.Action
	Buttons map[glfw.MouseButton][]input.Action

	down map[glfw.Key]bool
}

func commonBindings() Bindings {
	return Bindings{
		Keys: map[glfw.Key][]input.Action{
			glfw.KeyA:      {input.TurnLeft},
			glfw.KeyD:      {input.TurnRight},
			glfw.KeyQ:      {input.Quit},
			glfw.KeyEscape: {input.Quit},
		},
		Buttons: map[glfw.MouseButton][]input.Action{
			glfw.MouseButtonLeft: {input.Rotate},
		},
		down: make(map[glfw.Key]bool),
	}
}

// WalkerBindings: W/S walk, A/D turn, Shift + left drag zooms.
func WalkerBindings() Bindings {
	b := commonBindings()
	b.Keys[glfw.KeyW] = []input.Action{input.MoveForward}
	b.Keys[glfw.KeyS] = []input.Action{input.MoveBackward}
	b.Keys[glfw.KeyLeftShift] = []input.Action{input.Zoom}
	b.Keys[glfw.KeyRightShift] = []input.Action{input.Zoom}
	return b
}

// FlyerBindings: Space flies, Shift reverses, A/D yaw, arrows and W/S pitch.
func FlyerBindings() Bindings {
	b := commonBindings()
	b.Keys[glfw.KeySpace] = []input.Action{input.Fly}
	b.Keys[glfw.KeyLeftShift] = []input.Action{input.Reverse}
	b.Keys[glfw.KeyRightShift] = []input.Action{input.Reverse}
	b.Keys[glfw.KeyUp] = []input.Action{input.PitchUp}
	b.Keys[glfw.KeyDown] = []input.Action{input.PitchDown}
	b.Keys[glfw.KeyW] = []input.Action{input.PitchDown}
	b.Keys[glfw.KeyS] = []input.Action{input.PitchUp}
	return b
}

// BindingsFor returns the bindings for a variant name, defaulting to the
// walker's.
func BindingsFor(variant string) Bindings {
	if variant == config.VariantFlyer {
		return FlyerBindings()
	}
	return WalkerBindings()
}

// HandleKey applies one key event to the latch. Repeat events keep the
// action held.
func (b *Bindings) HandleKey(latch *input.Latch, key glfw.Key, action glfw.Action) {
	actions, ok := b.Keys[key]
	if !ok {
		return
	}
	if b.down == nil {
		b.down = make(map[glfw.Key]bool)
	}
	if action == glfw.Release {
		delete(b.down, key)
	} else {
		b.down[key] = true
	}
	for _, a := range actions {
		latch.SetAction(a, b.keyHeld(a))
	}
}

// keyHeld reports whether any key bound to a is down.
func (b *Bindings) keyHeld(a input.Action) bool {
	for key := range b.down {
		for _, bound := range b.Keys[key] {
			if bound == a {
				return true
			}
		}
	}
	return false
}

// Reset forgets every key that is down. Used with Latch.Release when the
// window loses focus and release events may never arrive.
func (b *Bindings) Reset() {
	for key := range b.down {
		delete(b.down, key)
	}
}

// HandleButton applies one mouse button event to the latch.
func (b *Bindings) HandleButton(latch *input.Latch, button glfw.MouseButton, action glfw.Action) {
	for _, a := range b.Buttons[button] {
		latch.SetAction(a, action == glfw.Press)
	}
}
