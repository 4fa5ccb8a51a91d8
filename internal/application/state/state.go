package state

// SimState represents what the sandbox simulation is doing
type SimState int

const (
	StateRunning SimState = iota
	StatePaused
	StateReplaying
	StateFinished
)

// String returns the string representation of the simulation state
func (s SimState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Advancing reports whether the simulation steps every frame
func (s SimState) Advancing() bool {
	return s == StateRunning || s == StateReplaying
}
