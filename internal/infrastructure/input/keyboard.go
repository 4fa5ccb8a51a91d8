// Package input reads sandbox controls from ebiten and turns them into
// movement input snapshots.
package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/kinecore/internal/application/system"
)

// Device is the part of ebiten's input API the keyboard reads
type Device interface {
	IsKeyPressed(key ebiten.Key) bool
	CursorPosition() (x, y int)
}

type ebitenDevice struct{}

func (ebitenDevice) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }
func (ebitenDevice) CursorPosition() (int, int)       { return ebiten.CursorPosition() }

// Bindings maps actions to keys. Any key in a list triggers the action.
type Bindings struct {
	Left     []ebiten.Key
	Right    []ebiten.Key
	Forward  []ebiten.Key
	Back     []ebiten.Key
	Jump     []ebiten.Key
	Sprint   []ebiten.Key
	Crouch   []ebiten.Key
	Dash     []ebiten.Key
	Interact []ebiten.Key
}

// DefaultBindings returns the stock sandbox layout
func DefaultBindings() Bindings {
	return Bindings{
		Left:     []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:    []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Forward:  []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Back:     []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Jump:     []ebiten.Key{ebiten.KeySpace},
		Sprint:   []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		Crouch:   []ebiten.Key{ebiten.KeyC, ebiten.KeyControlLeft},
		Dash:     []ebiten.Key{ebiten.KeyX},
		Interact: []ebiten.Key{ebiten.KeyE},
	}
}

// Keyboard is a system.InputSource backed by keyboard and mouse.
// Vertical cursor movement pitches the view; yaw stays fixed in the
// side-on sandbox.
type Keyboard struct {
	device   Device
	bindings Bindings

	// Sensitivity is degrees of pitch per pixel of cursor travel
	Sensitivity float64

	cursorY      int
	hasCursor    bool
	interactHeld bool
}

// NewKeyboard creates a keyboard source reading ebiten directly
func NewKeyboard(bindings Bindings) *Keyboard {
	return NewKeyboardWithDevice(ebitenDevice{}, bindings)
}

// NewKeyboardWithDevice creates a keyboard source reading from d
func NewKeyboardWithDevice(d Device, bindings Bindings) *Keyboard {
	return &Keyboard{
		device:      d,
		bindings:    bindings,
		Sensitivity: 0.5,
	}
}

// Snapshot polls the device once
func (k *Keyboard) Snapshot() system.InputState {
	var move mgl64.Vec2
	if k.any(k.bindings.Left) {
		move[0]--
	}
	if k.any(k.bindings.Right) {
		move[0]++
	}
	if k.any(k.bindings.Forward) {
		move[1]++
	}
	if k.any(k.bindings.Back) {
		move[1]--
	}

	// Interact fires on the press only
	interact := k.any(k.bindings.Interact)
	pressed := interact && !k.interactHeld
	k.interactHeld = interact

	return system.InputState{
		Move:        move,
		Look:        mgl64.Vec2{0, k.pitchDelta()},
		Jump:        k.any(k.bindings.Jump),
		Sprint:      k.any(k.bindings.Sprint),
		Crouch:      k.any(k.bindings.Crouch),
		Dash:        k.any(k.bindings.Dash),
		Interact:    pressed,
		PointerLook: true,
	}
}

// pitchDelta converts cursor travel since the last poll to degrees.
// Moving the cursor up looks up.
func (k *Keyboard) pitchDelta() float64 {
	_, y := k.device.CursorPosition()
	if !k.hasCursor {
		k.cursorY, k.hasCursor = y, true
		return 0
	}
	dy := y - k.cursorY
	k.cursorY = y
	return -float64(dy) * k.Sensitivity
}

func (k *Keyboard) any(keys []ebiten.Key) bool {
	for _, key := range keys {
		if k.device.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
