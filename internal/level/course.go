package level

import (
	"math"

	"github.com/slinggolf/backend/internal/golf"
	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"":             nil,
	"linear":       nil,
	"in_out_sine":  ease.InOutSine,
	"in_out_quad":  ease.InOutQuad,
	"in_out_cubic": ease.InOutCubic,
	"out_cubic":    ease.OutCubic,
	"out_bounce":   ease.OutBounce,
	"out_elastic":  ease.OutElastic,
}

// Easing returns the tween for an ease name. Linear motion is a nil func.
func Easing(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

func vec(p Point) golf.Vec2 { return golf.Vec2{X: p.X, Y: p.Y} }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func zone(x, y, w, h float64) golf.Rect {
	return golf.Rect{MinX: x - w/2, MinY: y - h/2, MaxX: x + w/2, MaxY: y + h/2}
}

// ToCourse validates the level and builds a fresh course. Every call returns
// independent obstacle state, so one course per round.
func (l *Level) ToCourse() (*golf.Course, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	control := make([]golf.Vec2, len(l.Terrain))
	for i, p := range l.Terrain {
		control[i] = vec(p)
	}

	c := &golf.Course{
		Terrain: golf.BuildCurve(control),
		Hole:    vec(l.Hole),
		Start:   vec(l.Start),
		Par:     l.Par,
		Balls:   l.Balls,
		Bounds: golf.Rect{
			MinX: l.Bounds.MinX,
			MinY: l.Bounds.MinY,
			MaxX: l.Bounds.MaxX,
			MaxY: l.Bounds.MaxY,
		},
	}

	for _, p := range l.Platforms {
		c.Platforms = append(c.Platforms, golf.RectBody{
			Kind:        golf.BodyPlatform,
			Center:      golf.Vec2{X: p.X, Y: p.Y},
			Width:       p.Width,
			Height:      p.Height,
			Angle:       radians(p.Angle),
			Friction:    p.Friction,
			Restitution: p.Restitution,
		})
	}

	var zones []golf.HazardZone
	for _, h := range l.Hazards {
		switch h.Kind {
		case HazardWater:
			zones = append(zones, golf.HazardZone{Kind: golf.HazardWater, Bounds: zone(h.X, h.Y, h.Width, h.Height)})
		case HazardSand:
			zones = append(zones, golf.HazardZone{Kind: golf.HazardSand, Bounds: zone(h.X, h.Y, h.Width, h.Height)})
		case HazardWind:
			zones = append(zones, golf.HazardZone{
				Kind:   golf.HazardWind,
				Bounds: zone(h.X, h.Y, h.Width, h.Height),
				Force:  vec(h.Force),
			})
		case HazardBouncer:
			c.Bouncers = append(c.Bouncers, golf.RectBody{
				Kind:        golf.BodyBouncer,
				Center:      golf.Vec2{X: h.X, Y: h.Y},
				Width:       h.Width,
				Height:      h.Height,
				Angle:       radians(h.Angle),
				Restitution: h.Restitution,
			})
		}
	}
	c.Hazards = golf.NewHazardField(zones)

	for _, o := range l.Obstacles {
		switch o.Kind {
		case ObstacleStatic:
			c.Static = append(c.Static, o.shape(golf.BodyStaticObstacle))
		case ObstacleMoving:
			fn, _ := Easing(o.Ease)
			path := [2]golf.Vec2{{X: o.X, Y: o.Y}, vec(*o.To)}
			c.Moving = append(c.Moving, golf.NewMovingObstacle(o.shape(golf.BodyMovingObstacle), path, o.Speed, fn))
		}
	}
	return c, nil
}

func (o ObstacleSpec) shape(kind golf.BodyKind) golf.Shape {
	center := golf.Vec2{X: o.X, Y: o.Y}
	if o.Shape == ShapeCircle {
		return &golf.CircleBody{
			Kind:        kind,
			Center:      center,
			Radius:      o.Radius,
			Friction:    o.Friction,
			Restitution: o.Restitution,
		}
	}
	return &golf.RectBody{
		Kind:        kind,
		Center:      center,
		Width:       o.Width,
		Height:      o.Height,
		Angle:       radians(o.Angle),
		Friction:    o.Friction,
		Restitution: o.Restitution,
	}
}
