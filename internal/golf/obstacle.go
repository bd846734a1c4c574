package golf

import "github.com/tanema/gween/ease"

// MovingObstacle carries a rect or circle back and forth between two points.
// Progress runs 0..1 along the path and flips direction at either end.
type MovingObstacle struct {
	Shape     Shape
	Path      [2]Vec2
	Progress  float64
	Direction float64 // -1 or +1
	Speed     float64 // progress units per second
	Ease      ease.TweenFunc
}

// NewMovingObstacle places shape at the start of path, moving forward.
// A nil easing function means linear motion.
func NewMovingObstacle(shape Shape, path [2]Vec2, speed float64, fn ease.TweenFunc) *MovingObstacle {
	m := &MovingObstacle{
		Shape:     shape,
		Path:      path,
		Direction: 1,
		Speed:     speed,
		Ease:      fn,
	}
	m.apply()
	return m
}

// Update advances the obstacle by dt seconds (ping-pong, not looping).
func (m *MovingObstacle) Update(dt float64) {
	m.Progress += m.Speed * dt * m.Direction
	if m.Progress >= 1 {
		m.Progress = 1
		m.Direction = -1
	} else if m.Progress <= 0 {
		m.Progress = 0
		m.Direction = 1
	}
	m.apply()
}

// Position returns the current world position along the path.
func (m *MovingObstacle) Position() Vec2 {
	t := m.Progress
	if m.Ease != nil {
		t = float64(m.Ease(float32(m.Progress), 0, 1, 1))
	}
	return Lerp(m.Path[0], m.Path[1], t)
}

func (m *MovingObstacle) apply() {
	pos := m.Position()
	switch s := m.Shape.(type) {
	case *RectBody:
		s.Center = pos
	case *CircleBody:
		s.Center = pos
	}
}

// ObstacleMotion advances every moving obstacle of a course.
type ObstacleMotion struct {
	Moving []*MovingObstacle
}

// Update steps all moving obstacles by dt. Static obstacles never change.
func (o *ObstacleMotion) Update(dt float64) {
	for _, m := range o.Moving {
		m.Update(dt)
	}
}
