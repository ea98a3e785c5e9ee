package fp

import "math"

// tableEntries gives 0.1-degree resolution across a full turn, satisfying
// the "at least 3600 entries" requirement.
const tableEntries = 3600

// degreeStep is the FP-degree distance between adjacent table entries
// (0.1 degree at FP scale 1000).
const degreeStep Scalar = 100

// FullTurn is the exclusive upper bound of angle-space, in FP-degrees.
const FullTurn Scalar = 360000

var cosTable [tableEntries]Scalar
var sinTable [tableEntries]Scalar

// The trig tables are built once at process start from math.Sincos. This
// is the only place float64 trigonometry is permitted to run: the hot
// resolution path (headingToVector, called from every THRUST handler
// invocation) only ever does integer lookup and interpolation against
// this precomputed table.
func init() {
	for i := 0; i < tableEntries; i++ {
		deg := float64(i) * 0.1
		rad := deg * math.Pi / 180.0
		s, c := math.Sincos(rad)
		cosTable[i] = Scalar(math.Round(c * float64(Scale)))
		sinTable[i] = Scalar(math.Round(s * float64(Scale)))
	}
}

// NormalizeAngle wraps an FP-degree angle into [0, FullTurn).
func NormalizeAngle(angle Scalar) Scalar {
	a := int64(angle) % int64(FullTurn)
	if a < 0 {
		a += int64(FullTurn)
	}
	return Scalar(a)
}

// HeadingToVector converts an FP-degree heading and an FP magnitude into a
// Cartesian displacement, via table lookup plus linear interpolation
// between the two bracketing 0.1-degree samples. No floating point is
// evaluated on this call.
func HeadingToVector(angleFP, magnitudeFP Scalar) Vec2 {
	a := NormalizeAngle(angleFP)
	idx := int64(a) / int64(degreeStep)
	rem := Scalar(int64(a) % int64(degreeStep)) // 0..degreeStep-1

	nextIdx := (idx + 1) % tableEntries
	c0, c1 := cosTable[idx], cosTable[nextIdx]
	s0, s1 := sinTable[idx], sinTable[nextIdx]

	cos := interpolate(c0, c1, rem)
	sin := interpolate(s0, s1, rem)

	return Vec2{
		X: Mul(magnitudeFP, cos),
		Y: Mul(magnitudeFP, sin),
	}
}

// interpolate blends from v0 toward v1 by frac/degreeStep, frac in
// [0, degreeStep).
func interpolate(v0, v1, frac Scalar) Scalar {
	delta := Sub(v1, v0)
	weighted := Div(Mul(delta, frac), degreeStep)
	return Add(v0, weighted)
}
