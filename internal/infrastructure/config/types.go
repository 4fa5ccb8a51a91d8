package config

import "github.com/younwookim/kinecore/internal/domain/entity"

// CharacterConfig is the root config for a character tuning file
type CharacterConfig struct {
	Ground   GroundConfig   `json:"ground" yaml:"ground"`
	Air      AirConfig      `json:"air" yaml:"air"`
	Sprint   SprintConfig   `json:"sprint" yaml:"sprint"`
	Crouch   CrouchConfig   `json:"crouch" yaml:"crouch"`
	Capsule  CapsuleConfig  `json:"capsule" yaml:"capsule"`
	Jump     JumpConfig     `json:"jump" yaml:"jump"`
	Water    WaterConfig    `json:"water" yaml:"water"`
	Climb    ClimbConfig    `json:"climb" yaml:"climb"`
	Gravity  GravityConfig  `json:"gravity" yaml:"gravity"`
	Respawn  RespawnConfig  `json:"respawn" yaml:"respawn"`
	Dash     DashConfig     `json:"dash" yaml:"dash"`
	Glide    GlideConfig    `json:"glide" yaml:"glide"`
	Camera   CameraConfig   `json:"camera" yaml:"camera"`
	Interact InteractConfig `json:"interact" yaml:"interact"`

	// Upgrades are unlocked at spawn
	Upgrades entity.UpgradeSet `json:"upgrades" yaml:"upgrades"`
}

type GroundConfig struct {
	BaseSpeed         float64 `json:"baseSpeed" yaml:"baseSpeed"`
	MovementSharpness float64 `json:"movementSharpness" yaml:"movementSharpness"`
}

type AirConfig struct {
	Speed float64 `json:"speed" yaml:"speed"`
	Accel float64 `json:"accel" yaml:"accel"`
	Drag  float64 `json:"drag" yaml:"drag"`
}

type SprintConfig struct {
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

type CrouchConfig struct {
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	LerpSpeed  float64 `json:"lerpSpeed" yaml:"lerpSpeed"` // camera easing rate (1/s)
}

// CapsuleConfig holds the standing and crouched capsule dimensions.
// The capsule center sits at half its height above the feet.
type CapsuleConfig struct {
	Radius         float64 `json:"radius" yaml:"radius"`
	Height         float64 `json:"height" yaml:"height"`
	CrouchedHeight float64 `json:"crouchedHeight" yaml:"crouchedHeight"`
}

type JumpConfig struct {
	UpSpeed                float64 `json:"upSpeed" yaml:"upSpeed"`
	PreGroundingGraceTime  float64 `json:"preGroundingGraceTime" yaml:"preGroundingGraceTime"`
	PostGroundingGraceTime float64 `json:"postGroundingGraceTime" yaml:"postGroundingGraceTime"`
	AllowWhenSliding       bool    `json:"allowWhenSliding" yaml:"allowWhenSliding"`
	SuperJumpMultiplier    float64 `json:"superJumpMultiplier" yaml:"superJumpMultiplier"`
}

type WaterConfig struct {
	BaseSpeed         float64 `json:"baseSpeed" yaml:"baseSpeed"`
	MovementSharpness float64 `json:"movementSharpness" yaml:"movementSharpness"`
	AirSpeed          float64 `json:"airSpeed" yaml:"airSpeed"`
	AirAccel          float64 `json:"airAccel" yaml:"airAccel"`
	AirDrag           float64 `json:"airDrag" yaml:"airDrag"`
	JumpUpSpeed       float64 `json:"jumpUpSpeed" yaml:"jumpUpSpeed"`
	TerminalVelocity  float64 `json:"terminalVelocity" yaml:"terminalVelocity"`
	Buoyancy          float64 `json:"buoyancy" yaml:"buoyancy"`
	AscendAccel       float64 `json:"ascendAccel" yaml:"ascendAccel"`
	AscendVel         float64 `json:"ascendVel" yaml:"ascendVel"`
}

type ClimbConfig struct {
	// EnableState switches Normal into the Climb movement state inside climb zones
	EnableState bool    `json:"enableState" yaml:"enableState"`
	Accel       float64 `json:"accel" yaml:"accel"`
	UpVel       float64 `json:"upVel" yaml:"upVel"`
	DownVel     float64 `json:"downVel" yaml:"downVel"`
	SlowFall    float64 `json:"slowFall" yaml:"slowFall"`
	AirDrag     float64 `json:"airDrag" yaml:"airDrag"`
}

type GravityConfig struct {
	Strength         float64 `json:"strength" yaml:"strength"`
	TerminalVelocity float64 `json:"terminalVelocity" yaml:"terminalVelocity"`
}

type RespawnConfig struct {
	TimerLength float64 `json:"timerLength" yaml:"timerLength"`
	// ExcludedGroundTags are ground collider tags never recorded as a respawn point
	ExcludedGroundTags []string `json:"excludedGroundTags" yaml:"excludedGroundTags"`
}

type DashConfig struct {
	Length         float64 `json:"length" yaml:"length"`
	CooldownLength float64 `json:"cooldownLength" yaml:"cooldownLength"`
	Speed          float64 `json:"speed" yaml:"speed"`
}

type GlideConfig struct {
	TerminalVelocity float64 `json:"terminalVelocity" yaml:"terminalVelocity"`
}

type CameraConfig struct {
	BaseHeight      float64 `json:"baseHeight" yaml:"baseHeight"`
	RotationSpeed   float64 `json:"rotationSpeed" yaml:"rotationSpeed"`
	CoreProbeRadius float64 `json:"coreProbeRadius" yaml:"coreProbeRadius"`
}

type InteractConfig struct {
	Range float64 `json:"range" yaml:"range"`
}

// ExcludesGround reports whether a ground collider tag is respawn-excluded
func (c *RespawnConfig) ExcludesGround(tag string) bool {
	for _, t := range c.ExcludedGroundTags {
		if t == tag {
			return true
		}
	}
	return false
}
