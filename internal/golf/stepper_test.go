package golf

import "testing"

func TestStepClampsSpeed(t *testing.T) {
	course := flatCourse()
	tuning := DefaultTuning()
	stepper := NewPhysicsStepper(course, tuning)
	ball := &Ball{Position: Vec2{X: 300, Y: 100}, Velocity: Vec2{X: 1e12, Y: -1e12}, Radius: BallRadius}

	stepper.Step(ball, FixedStep)
	if ball.Speed() > tuning.MaxBallSpeed+1e-6 {
		t.Errorf("speed %.3f exceeds max %.3f", ball.Speed(), tuning.MaxBallSpeed)
	}
}

func TestStepWaterTakesPriorityOverHole(t *testing.T) {
	course := flatCourse()
	course.Hole = Vec2{X: 300, Y: 400}
	course.Hazards = NewHazardField([]HazardZone{
		{Kind: HazardWater, Bounds: Rect{MinX: 250, MinY: 410, MaxX: 350, MaxY: 500}},
	})
	stepper := NewPhysicsStepper(course, DefaultTuning())
	ball := &Ball{Position: Vec2{X: 300, Y: 430}, Radius: BallRadius}

	res := stepper.Step(ball, FixedStep)

	if !course.IsBallInHole(ball) {
		t.Fatal("test setup: ball should also satisfy the hole condition")
	}
	if res.Outcome != OutcomeWater {
		t.Fatalf("outcome = %v, want water", res.Outcome)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventEnteredHazard || res.Events[0].Hazard != HazardWater {
		t.Errorf("events = %+v, want a single entered_hazard(water)", res.Events)
	}
	if hasEvent(res.Events, EventHoleReached) {
		t.Error("hole must not be reported on a water step")
	}
}

func TestStepOutOfBounds(t *testing.T) {
	course := flatCourse()
	stepper := NewPhysicsStepper(course, DefaultTuning())
	ball := &Ball{Position: Vec2{X: 700, Y: 100}, Radius: BallRadius}

	res := stepper.Step(ball, FixedStep)
	if res.Outcome != OutcomeOutOfBounds {
		t.Fatalf("outcome = %v, want out_of_bounds", res.Outcome)
	}
	if !hasEvent(res.Events, EventOutOfBounds) {
		t.Errorf("missing out_of_bounds event: %+v", res.Events)
	}

	// The top of the playfield is open.
	above := &Ball{Position: Vec2{X: 300, Y: -5000}, Radius: BallRadius}
	if res := stepper.Step(above, FixedStep); res.Outcome != OutcomeNone {
		t.Errorf("ball above the course classified as %v", res.Outcome)
	}
}

func TestHoleBoundary(t *testing.T) {
	course := flatCourse()
	course.Hole = Vec2{X: 300, Y: 400}
	depth := course.Hole.Y + HoleDepth

	inside := &Ball{Position: Vec2{X: 300 + HoleGapHalf, Y: depth}, Radius: BallRadius}
	if !course.IsBallInHole(inside) {
		t.Error("ball at gap edge and full depth should be in the hole")
	}
	outside := &Ball{Position: Vec2{X: 300 + HoleGapHalf + 1, Y: depth}, Radius: BallRadius}
	if course.IsBallInHole(outside) {
		t.Error("ball one unit past the gap should not be in the hole")
	}
	shallow := &Ball{Position: Vec2{X: 300, Y: depth - 1}, Radius: BallRadius}
	if course.IsBallInHole(shallow) {
		t.Error("ball above hole depth should not be in the hole")
	}
}

func TestBallRollingOverHoleDropsIn(t *testing.T) {
	course := flatCourse()
	course.Hole = Vec2{X: 500, Y: 400}
	stepper := NewPhysicsStepper(course, DefaultTuning())
	ball := &Ball{Position: Vec2{X: 482, Y: 390}, Velocity: Vec2{X: 200}, Radius: BallRadius, OnGround: true}

	belowLip := false
	for i := 0; i < 120; i++ {
		res := stepper.Step(ball, FixedStep)
		if res.Outcome == OutcomeHole {
			if !belowLip {
				t.Error("holed without passing the lip")
			}
			return
		}
		if res.Outcome != OutcomeNone {
			t.Fatalf("step %d: outcome %v", i, res.Outcome)
		}
		if ball.Position.Y > course.Hole.Y {
			belowLip = true
		}
		if !belowLip {
			continue
		}
		if ball.Position.Y <= course.Hole.Y {
			t.Fatalf("step %d: ball popped back above the lip to y=%.2f", i, ball.Position.Y)
		}
		if !course.InHoleGap(ball.Position.X) {
			t.Fatalf("step %d: ball left the shaft at x=%.2f", i, ball.Position.X)
		}
	}
	t.Fatalf("ball never dropped in, last at %+v", ball.Position)
}

func TestStepAirDragOnlyWhenAirborne(t *testing.T) {
	course := flatCourse()
	tuning := DefaultTuning()

	airborne := &Ball{Position: Vec2{X: 300, Y: 100}, Velocity: Vec2{X: 100}, Radius: BallRadius}
	NewPhysicsStepper(course, tuning).Step(airborne, FixedStep)
	want := 100 * (1 - tuning.AirDrag*FixedStep)
	if !approx(airborne.Velocity.X, want, 1e-9) {
		t.Errorf("airborne vx = %.6f, want %.6f", airborne.Velocity.X, want)
	}

	grounded := &Ball{Position: Vec2{X: 300, Y: 100}, Velocity: Vec2{X: 100}, Radius: BallRadius, OnGround: true}
	NewPhysicsStepper(course, tuning).Step(grounded, FixedStep)
	if grounded.Velocity.X != 100 {
		t.Errorf("grounded vx = %.6f, drag should not apply", grounded.Velocity.X)
	}
	if grounded.OnGround {
		t.Error("grounded flag should clear when no contact is found")
	}
}

func TestStepSandDragAndEdgeTriggeredEvent(t *testing.T) {
	course := flatCourse()
	course.Hazards = NewHazardField([]HazardZone{
		{Kind: HazardSand, Bounds: Rect{MinX: 0, MinY: 0, MaxX: 600, MaxY: 300}},
	})
	tuning := DefaultTuning()
	stepper := NewPhysicsStepper(course, tuning)
	ball := &Ball{Position: Vec2{X: 100, Y: 100}, Velocity: Vec2{X: 200}, Radius: BallRadius}

	first := stepper.Step(ball, FixedStep)
	if countEvents(first.Events, EventEnteredHazard) != 1 {
		t.Fatalf("first sand step events = %+v, want one entered_hazard", first.Events)
	}
	wantVx := 200 * (1 - tuning.AirDrag*FixedStep) * (1 - tuning.SandDrag*FixedStep)
	if !approx(ball.Velocity.X, wantVx, 1e-9) {
		t.Errorf("sand vx = %.6f, want %.6f", ball.Velocity.X, wantVx)
	}

	second := stepper.Step(ball, FixedStep)
	if hasEvent(second.Events, EventEnteredHazard) {
		t.Errorf("sand entry reported twice: %+v", second.Events)
	}
}

func TestStepWindPushesBall(t *testing.T) {
	course := flatCourse()
	course.Hazards = NewHazardField([]HazardZone{
		{Kind: HazardWind, Bounds: Rect{MinX: 0, MinY: 0, MaxX: 600, MaxY: 300}, Force: Vec2{X: 300}},
	})
	tuning := DefaultTuning()
	stepper := NewPhysicsStepper(course, tuning)
	ball := &Ball{Position: Vec2{X: 100, Y: 100}, Radius: BallRadius}

	res := stepper.Step(ball, FixedStep)
	want := 300 * tuning.WindScale * FixedStep * (1 - tuning.AirDrag*FixedStep)
	if !approx(ball.Velocity.X, want, 1e-9) {
		t.Errorf("wind vx = %.6f, want %.6f", ball.Velocity.X, want)
	}
	if len(res.Events) != 1 || res.Events[0].Hazard != HazardWind {
		t.Errorf("events = %+v, want entered_hazard(wind)", res.Events)
	}
}

func TestStepReportsHardBounces(t *testing.T) {
	course := flatCourse()
	stepper := NewPhysicsStepper(course, DefaultTuning())
	ball := &Ball{Position: Vec2{X: 100, Y: 385}, Velocity: Vec2{Y: 600}, Radius: BallRadius}

	res := stepper.Step(ball, FixedStep)
	if !hasEvent(res.Events, EventBounced) {
		t.Fatalf("expected a bounced event, got %+v", res.Events)
	}
	if res.Events[0].Body == nil || res.Events[0].Body.Kind != BodyTerrain {
		t.Errorf("bounce body = %+v, want terrain", res.Events[0].Body)
	}
}
