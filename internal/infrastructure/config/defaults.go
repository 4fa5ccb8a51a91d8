package config

// Default returns the stock character tuning
func Default() *CharacterConfig {
	return &CharacterConfig{
		Ground: GroundConfig{
			BaseSpeed:         4,
			MovementSharpness: 15,
		},
		Air: AirConfig{
			Speed: 4,
			Accel: 10,
			Drag:  0.1,
		},
		Sprint: SprintConfig{Multiplier: 2},
		Crouch: CrouchConfig{
			Multiplier: 0.5,
			LerpSpeed:  4,
		},
		Capsule: CapsuleConfig{
			Radius:         0.5,
			Height:         2,
			CrouchedHeight: 1,
		},
		Jump: JumpConfig{
			UpSpeed:                10,
			PreGroundingGraceTime:  0.1,
			PostGroundingGraceTime: 0.1,
			SuperJumpMultiplier:    3,
		},
		Water: WaterConfig{
			BaseSpeed:         3,
			MovementSharpness: 4,
			AirSpeed:          3,
			AirAccel:          7.5,
			AirDrag:           0.8,
			JumpUpSpeed:       3,
			TerminalVelocity:  3,
			Buoyancy:          25,
			AscendAccel:       10,
			AscendVel:         5,
		},
		Climb: ClimbConfig{
			EnableState: true,
			Accel:       30,
			UpVel:       6,
			DownVel:     3,
			SlowFall:    10,
			AirDrag:     1,
		},
		Gravity: GravityConfig{
			Strength:         30,
			TerminalVelocity: 50,
		},
		Respawn: RespawnConfig{
			TimerLength:        1,
			ExcludedGroundTags: []string{"Moving"},
		},
		Dash: DashConfig{
			Length:         0.1,
			CooldownLength: 2,
			Speed:          20,
		},
		Glide: GlideConfig{TerminalVelocity: 2},
		Camera: CameraConfig{
			BaseHeight:      1.375,
			RotationSpeed:   1,
			CoreProbeRadius: 0.1,
		},
		Interact: InteractConfig{Range: 3},
	}
}
