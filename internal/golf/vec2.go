package golf

import "math"

// Vec2 is a 2D vector in world units. Y grows downward.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Up is the world-space "upward" direction (screen coordinates, y-down).
var Up = Vec2{X: 0, Y: -1}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector, or the zero vector for a zero-length input.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Times(1.0 / m)
}

// NormalizeOr returns the unit vector, or fallback when v has no usable length.
func (v Vec2) NormalizeOr(fallback Vec2) Vec2 {
	m := v.Magnitude()
	if m < 1e-12 {
		return fallback
	}
	return v.Times(1.0 / m)
}

func (v Vec2) RightNormal() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}
}

func (v Vec2) LeftNormal() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotate rotates v by the given angle in radians.
func (v Vec2) Rotate(radians float64) Vec2 {
	sin, cos := math.Sincos(radians)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

func (v Vec2) Invert() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// ClampMagnitude shortens v to max if it is longer.
func (v Vec2) ClampMagnitude(max float64) Vec2 {
	m := v.Magnitude()
	if m <= max || m == 0 {
		return v
	}
	return v.Times(max / m)
}

func (v Vec2) Distance(o Vec2) float64 {
	return v.Minus(o).Magnitude()
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Lerp interpolates between a and b.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

func lerpf(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Rect is an axis-aligned rectangle given by its min/max corners.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}
