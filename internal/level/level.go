package level

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidLevel = errors.New("invalid level")
	ErrNotFound     = errors.New("level not found")
)

// Point is a 2D position in world units (y grows downward).
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Bounds is the camera / playfield rectangle.
type Bounds struct {
	MinX float64 `json:"min_x" toml:"min_x"`
	MinY float64 `json:"min_y" toml:"min_y"`
	MaxX float64 `json:"max_x" toml:"max_x"`
	MaxY float64 `json:"max_y" toml:"max_y"`
}

// RectSpec is a rotated rectangle given by its centre. Angle is in degrees.
type RectSpec struct {
	X           float64 `json:"x" toml:"x"`
	Y           float64 `json:"y" toml:"y"`
	Width       float64 `json:"width" toml:"width"`
	Height      float64 `json:"height" toml:"height"`
	Angle       float64 `json:"angle,omitempty" toml:"angle"`
	Friction    float64 `json:"friction,omitempty" toml:"friction"`
	Restitution float64 `json:"restitution,omitempty" toml:"restitution"`
}

// HazardSpec is one entry of the hazard list, discriminated by Kind.
// Water, sand and wind are axis-aligned zones; a bouncer is a solid rect
// whose restitution may exceed 1.
type HazardSpec struct {
	Kind        HazardKind `json:"kind" toml:"kind"`
	X           float64    `json:"x" toml:"x"`
	Y           float64    `json:"y" toml:"y"`
	Width       float64    `json:"width" toml:"width"`
	Height      float64    `json:"height" toml:"height"`
	Force       Point      `json:"force,omitempty" toml:"force"`             // wind
	Angle       float64    `json:"angle,omitempty" toml:"angle"`             // bouncer
	Restitution float64    `json:"restitution,omitempty" toml:"restitution"` // bouncer
}

// ObstacleSpec is one entry of the obstacle list: static or moving, rect or circle.
type ObstacleSpec struct {
	Kind        ObstacleKind `json:"kind" toml:"kind"`
	Shape       ShapeKind    `json:"shape" toml:"shape"`
	X           float64      `json:"x" toml:"x"`
	Y           float64      `json:"y" toml:"y"`
	Width       float64      `json:"width,omitempty" toml:"width"`
	Height      float64      `json:"height,omitempty" toml:"height"`
	Radius      float64      `json:"radius,omitempty" toml:"radius"`
	Angle       float64      `json:"angle,omitempty" toml:"angle"`
	Friction    float64      `json:"friction,omitempty" toml:"friction"`
	Restitution float64      `json:"restitution,omitempty" toml:"restitution"`

	// Moving obstacles travel between (X, Y) and To.
	To    *Point  `json:"to,omitempty" toml:"to"`
	Speed float64 `json:"speed,omitempty" toml:"speed"`
	Ease  string  `json:"ease,omitempty" toml:"ease"`
}

// Level is the authored, read-only description of one hole.
type Level struct {
	ID        string         `json:"id" toml:"id"`
	Name      string         `json:"name" toml:"name"`
	SortOrder int            `json:"sort_order" toml:"sort_order"`
	Par       int            `json:"par" toml:"par"`
	Balls     int            `json:"balls" toml:"balls"`
	Terrain   []Point        `json:"terrain" toml:"terrain"`
	Hole      Point          `json:"hole" toml:"hole"`
	Start     Point          `json:"start" toml:"start"`
	Bounds    Bounds         `json:"bounds" toml:"bounds"`
	Platforms []RectSpec     `json:"platforms,omitempty" toml:"platforms"`
	Hazards   []HazardSpec   `json:"hazards,omitempty" toml:"hazards"`
	Obstacles []ObstacleSpec `json:"obstacles,omitempty" toml:"obstacles"`
}

// Summary is the catalogue view of a level.
type Summary struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Par       int    `db:"par" json:"par"`
	Balls     int    `db:"balls" json:"balls"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

func (l *Level) Summary() Summary {
	return Summary{ID: l.ID, Name: l.Name, Par: l.Par, Balls: l.Balls, SortOrder: l.SortOrder}
}

func (l *Level) invalid(format string, args ...any) error {
	return fmt.Errorf("level %q: %s: %w", l.ID, fmt.Sprintf(format, args...), ErrInvalidLevel)
}

// Validate checks the level can be turned into a playable course.
func (l *Level) Validate() error {
	if l.ID == "" {
		return l.invalid("missing id")
	}
	if l.Par < 1 {
		return l.invalid("par must be at least 1")
	}
	if l.Balls < 1 {
		return l.invalid("balls must be at least 1")
	}
	if len(l.Terrain) < 2 {
		return l.invalid("terrain needs at least 2 control points")
	}
	for i, p := range l.Terrain {
		if !finite(p.X, p.Y) {
			return l.invalid("terrain point %d is not finite", i)
		}
		if i > 0 && p.X <= l.Terrain[i-1].X {
			return l.invalid("terrain x must increase (point %d)", i)
		}
	}
	if l.Bounds.MaxX <= l.Bounds.MinX || l.Bounds.MaxY <= l.Bounds.MinY {
		return l.invalid("empty bounds")
	}
	first, last := l.Terrain[0].X, l.Terrain[len(l.Terrain)-1].X
	if l.Start.X < first || l.Start.X > last {
		return l.invalid("start x %.1f outside terrain", l.Start.X)
	}
	if l.Hole.X < first || l.Hole.X > last {
		return l.invalid("hole x %.1f outside terrain", l.Hole.X)
	}

	for i, r := range l.Platforms {
		if r.Width <= 0 || r.Height <= 0 {
			return l.invalid("platform %d has no area", i)
		}
	}
	for i, h := range l.Hazards {
		if err := l.validateHazard(i, h); err != nil {
			return err
		}
	}
	for i, o := range l.Obstacles {
		if err := l.validateObstacle(i, o); err != nil {
			return err
		}
	}
	return nil
}

func (l *Level) validateHazard(i int, h HazardSpec) error {
	if h.Width <= 0 || h.Height <= 0 {
		return l.invalid("hazard %d has no area", i)
	}
	switch h.Kind {
	case HazardWater, HazardSand:
	case HazardWind:
		if h.Force.X == 0 && h.Force.Y == 0 {
			return l.invalid("wind hazard %d has no force", i)
		}
	case HazardBouncer:
		if h.Restitution <= 0 {
			return l.invalid("bouncer %d needs a positive restitution", i)
		}
	default:
		return l.invalid("hazard %d: unknown kind %q", i, h.Kind)
	}
	return nil
}

func (l *Level) validateObstacle(i int, o ObstacleSpec) error {
	switch o.Shape {
	case ShapeRect:
		if o.Width <= 0 || o.Height <= 0 {
			return l.invalid("obstacle %d has no area", i)
		}
	case ShapeCircle:
		if o.Radius <= 0 {
			return l.invalid("obstacle %d has no radius", i)
		}
	default:
		return l.invalid("obstacle %d: unknown shape %q", i, o.Shape)
	}

	switch o.Kind {
	case ObstacleStatic:
	case ObstacleMoving:
		if o.To == nil {
			return l.invalid("moving obstacle %d has no destination", i)
		}
		if o.Speed <= 0 {
			return l.invalid("moving obstacle %d needs a positive speed", i)
		}
		if _, ok := Easing(o.Ease); !ok {
			return l.invalid("moving obstacle %d: unknown ease %q", i, o.Ease)
		}
	default:
		return l.invalid("obstacle %d: unknown kind %q", i, o.Kind)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
