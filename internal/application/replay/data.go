package replay

import "github.com/younwookim/kinecore/internal/application/system"

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// FrameInput records the input snapshot for a single frame
type FrameInput struct {
	F int `json:"f"` // Frame number
	system.InputState
}

// ReplayData contains all data needed to replay a sandbox session.
// The run is deterministic, so stage, character and tick rate are enough
// to reproduce it.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Character string       `json:"character"`
	TickRate  int          `json:"tickRate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
