package golf

import "math"

// Course is the immutable geometry of one level plus the live state of its
// moving obstacles. Built by the level package from external configuration.
type Course struct {
	Terrain   TerrainCurve
	Hole      Vec2
	Start     Vec2
	Par       int
	Balls     int
	Bounds    Rect
	Platforms []RectBody
	Bouncers  []RectBody
	Static    []Shape
	Moving    []*MovingObstacle
	Hazards   *HazardField
}

// InHoleGap reports whether x falls inside the hole opening, where terrain
// collision is suppressed so the ball can drop into the shaft.
func (c *Course) InHoleGap(x float64) bool {
	return math.Abs(x-c.Hole.X) <= HoleGapHalf
}

// IsBallInHole reports whether the ball centre is inside the gap and at least
// HoleDepth below the hole lip.
func (c *Course) IsBallInHole(b *Ball) bool {
	return c.InHoleGap(b.Position.X) && b.Position.Y >= c.Hole.Y+HoleDepth
}

// IsOutOfBounds reports whether p left the playfield. The top is open.
func (c *Course) IsOutOfBounds(p Vec2) bool {
	return p.X < c.Bounds.MinX-OutOfBoundsMargin ||
		p.X > c.Bounds.MaxX+OutOfBoundsMargin ||
		p.Y > c.Bounds.MaxY+OutOfBoundsMargin
}

// RestingPosition returns where a ball of radius r sits on the terrain at x.
func (c *Course) RestingPosition(x, r float64) Vec2 {
	s := c.Terrain.Sample(x)
	return s.Point.Plus(s.Normal.Times(r))
}
