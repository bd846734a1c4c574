package golf

import "math"

// AimState is the live drag while aiming.
type AimState struct {
	Active       bool    `json:"active"`
	Anchor       Vec2    `json:"anchor"`
	Target       Vec2    `json:"target"`
	PullDistance float64 `json:"pull_distance"`
}

// SlingshotController turns pointer drags into ball placement while aiming
// and into a launch velocity on release.
type SlingshotController struct {
	tuning Tuning
	aim    AimState
}

func NewSlingshotController(tuning Tuning) *SlingshotController {
	return &SlingshotController{tuning: tuning}
}

// Aim returns a copy of the current aim state.
func (s *SlingshotController) Aim() AimState {
	return s.aim
}

// BeginAim starts a drag if the ball is at rest and point is within the
// capture radius of it. The anchor becomes the ball's position.
func (s *SlingshotController) BeginAim(ball *Ball, point Vec2) bool {
	if ball.Speed() > s.tuning.AimRestSpeed {
		return false
	}
	if point.Distance(ball.Position) > s.tuning.CaptureRadius {
		return false
	}
	s.aim = AimState{
		Active: true,
		Anchor: ball.Position,
		Target: ball.Position,
	}
	ball.Velocity = Vec2{}
	return true
}

// UpdateAim moves the ball directly to the anchor plus the clamped drag offset.
func (s *SlingshotController) UpdateAim(ball *Ball, point Vec2) {
	if !s.aim.Active {
		return
	}
	offset := point.Minus(s.aim.Anchor).ClampMagnitude(s.tuning.MaxPullDistance)
	s.aim.Target = s.aim.Anchor.Plus(offset)
	s.aim.PullDistance = offset.Magnitude()
	ball.Position = s.aim.Target
	ball.Velocity = Vec2{}
}

// EndAim releases the drag. Pulls shorter than the minimum put the ball back
// on the anchor and report no launch.
func (s *SlingshotController) EndAim(ball *Ball) (Vec2, bool) {
	if !s.aim.Active {
		return Vec2{}, false
	}
	aim := s.aim
	s.aim = AimState{}

	if aim.PullDistance < s.tuning.MinPullDistance {
		ball.Position = aim.Anchor
		ball.Velocity = Vec2{}
		return Vec2{}, false
	}

	v := LaunchVelocity(aim.Anchor, aim.Target, s.tuning)
	ball.Velocity = v
	ball.OnGround = false
	return v, true
}

// Cancel drops any active drag and returns the ball to the anchor.
func (s *SlingshotController) Cancel(ball *Ball) {
	if s.aim.Active {
		ball.Position = s.aim.Anchor
		ball.Velocity = Vec2{}
	}
	s.aim = AimState{}
}

// LaunchPower maps a pull distance onto the eased 0..1 power curve.
func LaunchPower(pull float64, t Tuning) float64 {
	if t.MaxPullDistance <= 0 {
		return 0
	}
	power := clampf(pull/t.MaxPullDistance, 0, 1)
	return math.Pow(power, PowerCurveExponent)
}

// LaunchVelocity returns the launch velocity along anchor -> target.
func LaunchVelocity(anchor, target Vec2, t Tuning) Vec2 {
	offset := target.Minus(anchor)
	dir := offset.Normalize()
	if dir.IsZero() {
		return Vec2{}
	}
	speed := lerpf(t.MinLaunchSpeed, t.MaxLaunchSpeed, LaunchPower(offset.Magnitude(), t))
	return dir.Times(speed)
}

// PreviewTrajectory forward-simulates gravity-only motion for display. It
// uses the same semi-implicit Euler step as the simulation and has no side
// effects.
func PreviewTrajectory(position, velocity Vec2, gravity float64, steps int) []Vec2 {
	if steps <= 0 {
		return nil
	}
	pts := make([]Vec2, 0, steps)
	p, v := position, velocity
	for i := 0; i < steps; i++ {
		v.Y += gravity * FixedStep
		p = p.Plus(v.Times(FixedStep))
		pts = append(pts, p)
	}
	return pts
}
