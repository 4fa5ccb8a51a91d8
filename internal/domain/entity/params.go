package entity

// MovementParams is the effective movement tuning for the current zone
// membership. It is always rebuilt wholesale, never patched field by field.
type MovementParams struct {
	BaseSpeed        float64
	MoveSharpness    float64
	AirSpeed         float64
	AirAccel         float64
	AirDrag          float64
	JumpUpSpeed      float64
	Buoyancy         float64
	TerminalVelocity float64
	AscendAccel      float64
	AscendVel        float64
}
