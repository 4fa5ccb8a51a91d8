package system

import "github.com/go-gl/mathgl/mgl64"

// InputState is one frame of player intent
type InputState struct {
	// Move is the local move axis, x right and y forward
	Move mgl64.Vec2 `json:"move"`
	// Look is the yaw/pitch delta, x right and y up
	Look mgl64.Vec2 `json:"look"`

	Jump     bool `json:"jump,omitempty"`
	Sprint   bool `json:"sprint,omitempty"`
	Crouch   bool `json:"crouch,omitempty"`
	Dash     bool `json:"dash,omitempty"`
	Interact bool `json:"interact,omitempty"`

	// PointerLook marks Look as a per-frame pointer delta that is not
	// scaled by the frame time
	PointerLook bool `json:"pointerLook,omitempty"`
}

// InputSource produces the input snapshot for the current frame
type InputSource interface {
	Snapshot() InputState
}

// InputFunc adapts a function to InputSource
type InputFunc func() InputState

// Snapshot calls f
func (f InputFunc) Snapshot() InputState {
	return f()
}
