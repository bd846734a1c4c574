package golf

import "math"

const eps = 1e-9

// flatCourse is flat terrain at y=400 for x in [0,600] with the hole far away.
func flatCourse() *Course {
	return &Course{
		Terrain: BuildCurve([]Vec2{{X: 0, Y: 400}, {X: 600, Y: 400}}),
		Hole:    Vec2{X: 2000, Y: 400},
		Start:   Vec2{X: 100, Y: 380},
		Par:     3,
		Balls:   3,
		Bounds:  Rect{MinX: 0, MinY: 0, MaxX: 600, MaxY: 500},
		Hazards: NewHazardField(nil),
	}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
