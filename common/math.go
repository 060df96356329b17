package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the lattice up axis. Motion always pivots around it regardless
// of the session's gravity orientation.
var WorldUp = mgl64.Vec3{0, 1, 0}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// RoundVec rounds each component to the nearest integer.
func RoundVec(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Round(v[0]), math.Round(v[1]), math.Round(v[2])}
}

// PivotAxis returns normalize(cross(up, dir)), the axis a cube tumbles around
// when it moves along dir.
func PivotAxis(up, dir mgl64.Vec3) mgl64.Vec3 {
	axis := up.Cross(dir)
	if axis.Len() == 0 {
		return mgl64.Vec3{}
	}
	return axis.Normalize()
}

// RotateAbout rotates point around pivot by angle radians about axis.
func RotateAbout(point, pivot, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	q := mgl64.QuatRotate(angle, axis)
	return pivot.Add(q.Rotate(point.Sub(pivot)))
}

// RotateOrientation applies a world-space rotation to an orientation.
func RotateOrientation(orientation mgl64.Quat, axis mgl64.Vec3, angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, axis).Mul(orientation).Normalize()
}
