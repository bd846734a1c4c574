package golf

import (
	"math"
	"testing"
)

func restingBall() *Ball {
	return &Ball{Position: Vec2{X: 100, Y: 390}, Radius: BallRadius, OnGround: true}
}

func TestBeginAimRequiresRestAndCapture(t *testing.T) {
	tuning := DefaultTuning()

	moving := restingBall()
	moving.Velocity = Vec2{X: 50}
	if NewSlingshotController(tuning).BeginAim(moving, moving.Position) {
		t.Error("aim should be rejected while the ball moves")
	}

	ball := restingBall()
	far := ball.Position.Plus(Vec2{X: tuning.CaptureRadius + 1})
	if NewSlingshotController(tuning).BeginAim(ball, far) {
		t.Error("aim should be rejected outside the capture radius")
	}

	s := NewSlingshotController(tuning)
	near := ball.Position.Plus(Vec2{X: tuning.CaptureRadius - 1})
	if !s.BeginAim(ball, near) {
		t.Fatal("aim inside the capture radius should start")
	}
	if aim := s.Aim(); !aim.Active || aim.Anchor != ball.Position {
		t.Errorf("aim state = %+v, want active with anchor at ball", aim)
	}
}

func TestUpdateAimClampsPull(t *testing.T) {
	tuning := DefaultTuning()
	s := NewSlingshotController(tuning)
	ball := restingBall()
	anchor := ball.Position
	s.BeginAim(ball, anchor)

	s.UpdateAim(ball, anchor.Plus(Vec2{X: 300}))

	want := anchor.Plus(Vec2{X: tuning.MaxPullDistance})
	if !approx(ball.Position.X, want.X, 1e-9) || !approx(ball.Position.Y, want.Y, 1e-9) {
		t.Errorf("ball at %+v, want %+v", ball.Position, want)
	}
	if !approx(s.Aim().PullDistance, tuning.MaxPullDistance, 1e-9) {
		t.Errorf("pull = %.4f, want %.4f", s.Aim().PullDistance, tuning.MaxPullDistance)
	}
	if !ball.Velocity.IsZero() {
		t.Errorf("ball should be held still while aiming, velocity %+v", ball.Velocity)
	}
}

func TestEndAimShortPullCancels(t *testing.T) {
	tuning := DefaultTuning()
	s := NewSlingshotController(tuning)
	ball := restingBall()
	anchor := ball.Position
	s.BeginAim(ball, anchor)
	s.UpdateAim(ball, anchor.Plus(Vec2{X: tuning.MinPullDistance / 2}))

	if _, ok := s.EndAim(ball); ok {
		t.Fatal("short pull should not launch")
	}
	if ball.Position != anchor {
		t.Errorf("ball should return to anchor, got %+v", ball.Position)
	}
	if s.Aim().Active {
		t.Error("aim should be cleared after release")
	}
}

func TestEndAimLaunchSpeedFollowsPowerCurve(t *testing.T) {
	tuning := DefaultTuning()
	s := NewSlingshotController(tuning)
	ball := restingBall()
	anchor := ball.Position
	s.BeginAim(ball, anchor)
	s.UpdateAim(ball, anchor.Plus(Vec2{X: tuning.MaxPullDistance / 2}))

	v, ok := s.EndAim(ball)
	if !ok {
		t.Fatal("half pull should launch")
	}
	power := math.Pow(0.5, PowerCurveExponent)
	want := tuning.MinLaunchSpeed + (tuning.MaxLaunchSpeed-tuning.MinLaunchSpeed)*power
	if !approx(v.Magnitude(), want, 1e-6) {
		t.Errorf("launch speed = %.4f, want %.4f", v.Magnitude(), want)
	}
	if v.X <= 0 || !approx(v.Y, 0, 1e-9) {
		t.Errorf("launch direction = %+v, want along +x", v)
	}
	if ball.Velocity != v || ball.OnGround {
		t.Errorf("ball not launched: %+v", ball)
	}
}

func TestLaunchPowerCurve(t *testing.T) {
	tuning := DefaultTuning()
	tests := []struct {
		pull float64
		want float64
	}{
		{0, 0},
		{tuning.MaxPullDistance, 1},
		{tuning.MaxPullDistance * 2, 1},
		{tuning.MaxPullDistance / 4, math.Pow(0.25, PowerCurveExponent)},
	}
	for _, tt := range tests {
		if got := LaunchPower(tt.pull, tuning); !approx(got, tt.want, 1e-12) {
			t.Errorf("LaunchPower(%.1f) = %.6f, want %.6f", tt.pull, got, tt.want)
		}
	}
}

func TestPreviewTrajectoryIsPure(t *testing.T) {
	pos := Vec2{X: 100, Y: 300}
	vel := Vec2{X: 200, Y: -400}
	gravity := 900.0

	a := PreviewTrajectory(pos, vel, gravity, 60)
	b := PreviewTrajectory(pos, vel, gravity, 60)
	if len(a) != 60 {
		t.Fatalf("got %d points, want 60", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("preview not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}

	ball := &Ball{Position: pos, Velocity: vel}
	for i := 0; i < 60; i++ {
		ball.Velocity.Y += gravity * FixedStep
		ball.Position = ball.Position.Plus(ball.Velocity.Times(FixedStep))
		if ball.Position != a[i] {
			t.Fatalf("preview diverges from semi-implicit Euler at step %d", i)
		}
	}

	if PreviewTrajectory(pos, vel, gravity, 0) != nil {
		t.Error("zero steps should give no points")
	}
}
