package entity

// MovementState is the current movement regime of a character
type MovementState int

const (
	MovementNormal MovementState = iota
	MovementDash
	MovementClimb
)

// String returns the string representation of the movement state
func (s MovementState) String() string {
	switch s {
	case MovementNormal:
		return "Normal"
	case MovementDash:
		return "Dash"
	case MovementClimb:
		return "Climb"
	default:
		return "Unknown"
	}
}

// Grounded reports whether the state runs the walking (ground/air) models.
// Dash is impulse-locked and skips them.
func (s MovementState) Grounded() bool {
	return s == MovementNormal || s == MovementClimb
}
