package fp

// Vec2 is a pair of fixed-point scalars representing a 2D world-space
// position, velocity, or offset.
type Vec2 struct {
	X, Y Scalar
}

// AddVector returns a+b componentwise.
func AddVector(a, b Vec2) Vec2 {
	return Vec2{X: Add(a.X, b.X), Y: Add(a.Y, b.Y)}
}

// SubVector returns a-b componentwise.
func SubVector(a, b Vec2) Vec2 {
	return Vec2{X: Sub(a.X, b.X), Y: Sub(a.Y, b.Y)}
}

// ScaleVector returns v scaled by the fixed-point factor s.
func ScaleVector(v Vec2, s Scalar) Vec2 {
	return Vec2{X: Mul(v.X, s), Y: Mul(v.Y, s)}
}

// IsZero reports whether v is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// DistanceSquared returns |p-q|^2 without taking a square root — the hot
// resolution path compares squared reach against squared distance and
// never needs the root itself.
func DistanceSquared(p, q Vec2) Scalar {
	d := SubVector(p, q)
	return Add(Mul(d.X, d.X), Mul(d.Y, d.Y))
}

// WithinReach reports whether q lies within reach (inclusive) of p,
// comparing squared magnitudes to avoid a square root.
func WithinReach(p, q Vec2, reach Scalar) bool {
	reachSq := Mul(reach, reach)
	return DistanceSquared(p, q) <= reachSq
}
