package golf

import "sort"

// TerrainCurve is a smoothed ground profile, strictly increasing in x.
// It is built once per level and never mutated.
type TerrainCurve struct {
	Points []Vec2 `json:"points"`
}

// SurfaceSample is the terrain point and its unit, upward-facing normal at some x.
type SurfaceSample struct {
	Point  Vec2
	Normal Vec2
}

// BuildCurve interpolates the control points with Catmull-Rom splines.
// The first and last points act as their own outer neighbours. Samples that
// would not advance in x are dropped so the result stays x-monotonic.
func BuildCurve(control []Vec2) TerrainCurve {
	switch len(control) {
	case 0:
		return TerrainCurve{}
	case 1:
		return TerrainCurve{Points: []Vec2{control[0]}}
	}

	pts := make([]Vec2, 0, (len(control)-1)*SamplesPerSpan+1)
	pts = append(pts, control[0])
	last := len(control) - 1

	for i := 0; i < last; i++ {
		p0 := control[max(i-1, 0)]
		p1 := control[i]
		p2 := control[i+1]
		p3 := control[min(i+2, last)]

		for s := 1; s <= SamplesPerSpan; s++ {
			t := float64(s) / SamplesPerSpan
			p := catmullRom(p0, p1, p2, p3, t)
			if s == SamplesPerSpan {
				p = p2
			}
			if p.X <= pts[len(pts)-1].X {
				continue
			}
			pts = append(pts, p)
		}
	}
	return TerrainCurve{Points: pts}
}

func catmullRom(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b +
			(-a+c)*t +
			(2*a-5*b+4*c-d)*t2 +
			(-a+3*b-3*c+d)*t3)
	}
	return Vec2{
		X: f(p0.X, p1.X, p2.X, p3.X),
		Y: f(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}

// MinX and MaxX return the curve's x domain.
func (c TerrainCurve) MinX() float64 {
	if len(c.Points) == 0 {
		return 0
	}
	return c.Points[0].X
}

func (c TerrainCurve) MaxX() float64 {
	if len(c.Points) == 0 {
		return 0
	}
	return c.Points[len(c.Points)-1].X
}

// Sample returns the surface point and normal at x. Outside the curve's
// domain the first or last segment is extrapolated.
func (c TerrainCurve) Sample(x float64) SurfaceSample {
	n := len(c.Points)
	switch n {
	case 0:
		return SurfaceSample{Point: Vec2{X: x}, Normal: Up}
	case 1:
		return SurfaceSample{Point: Vec2{X: x, Y: c.Points[0].Y}, Normal: Up}
	}

	// First point strictly right of x; the bracketing segment ends there.
	i := sort.Search(n, func(k int) bool { return c.Points[k].X > x })
	seg := clampInt(i-1, 0, n-2)

	a := c.Points[seg]
	b := c.Points[seg+1]
	dx := b.X - a.X

	var y float64
	if dx != 0 {
		y = lerpf(a.Y, b.Y, (x-a.X)/dx)
	} else {
		y = a.Y
	}

	return SurfaceSample{
		Point:  Vec2{X: x, Y: y},
		Normal: c.segmentNormal(seg),
	}
}

// segmentNormal returns the upward unit normal of segment i. Zero-length
// segments reuse the nearest previous valid normal.
func (c TerrainCurve) segmentNormal(i int) Vec2 {
	for k := i; k >= 0; k-- {
		tangent := c.Points[k+1].Minus(c.Points[k])
		if tangent.MagnitudeSquared() < 1e-18 {
			continue
		}
		normal := tangent.Normalize().LeftNormal()
		if normal.Y > 0 {
			normal = normal.Invert()
		}
		return normal
	}
	return Up
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
