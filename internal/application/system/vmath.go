package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func sqrMagnitude(v mgl64.Vec3) float64 {
	return v.Dot(v)
}

// normalizeSafe returns the unit vector of v, or zero for a degenerate v
func normalizeSafe(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// project returns the component of v along onto
func project(v, onto mgl64.Vec3) mgl64.Vec3 {
	d := onto.Dot(onto)
	if d < epsilon {
		return mgl64.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / d)
}

// projectOnPlane removes the component of v along the plane normal
func projectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(project(v, normal))
}

func clampMagnitude(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	if sqrMagnitude(v) > maxLen*maxLen {
		return normalizeSafe(v).Mul(maxLen)
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	t = mgl64.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// clampAngle wraps once past ±360 then clamps, in degrees
func clampAngle(deg, lo, hi float64) float64 {
	if deg < -360 {
		deg += 360
	}
	if deg > 360 {
		deg -= 360
	}
	return mgl64.Clamp(deg, lo, hi)
}

// smoothingFactor is the framerate-independent blend toward a target
func smoothingFactor(sharpness, dt float64) float64 {
	return 1 - math.Exp(-sharpness*dt)
}
