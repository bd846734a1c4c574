package golf

import "math"

// Outcome is the classification of a single physics step.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWater
	OutcomeOutOfBounds
	OutcomeHole
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWater:
		return "water"
	case OutcomeOutOfBounds:
		return "out_of_bounds"
	case OutcomeHole:
		return "hole"
	}
	return "none"
}

// StepResult is what one fixed step produced.
type StepResult struct {
	Outcome  Outcome
	Events   []Event
	Contacts []Contact
}

// PhysicsStepper advances the ball by one fixed step: forces, integration,
// collision, hazard drag, speed clamp, then outcome classification.
type PhysicsStepper struct {
	course   *Course
	tuning   Tuning
	resolver *CollisionResolver

	// hazard membership on the previous step, for edge-triggered events
	inSand bool
	inWind bool
}

func NewPhysicsStepper(course *Course, tuning Tuning) *PhysicsStepper {
	return &PhysicsStepper{
		course:   course,
		tuning:   tuning,
		resolver: NewCollisionResolver(course, tuning),
	}
}

// Step runs one fixed step of dt seconds.
func (s *PhysicsStepper) Step(ball *Ball, dt float64) StepResult {
	t := s.tuning
	var res StepResult

	ball.Velocity.Y += t.Gravity * dt

	for _, force := range s.course.Hazards.Classify(ball.Position).Wind {
		ball.Velocity = ball.Velocity.Plus(force.Times(t.WindScale * dt))
	}

	// Semi-implicit Euler: position uses the updated velocity.
	ball.Position = ball.Position.Plus(ball.Velocity.Times(dt))

	wasGrounded := ball.OnGround
	ball.OnGround = false
	if !wasGrounded {
		ball.Velocity = ball.Velocity.Times(math.Max(0, 1-t.AirDrag*dt))
	}

	res.Contacts = s.resolver.Resolve(ball, dt)
	for _, c := range res.Contacts {
		if c.Bounced && c.ImpactSpeed >= t.BounceEventSpeed {
			res.Events = append(res.Events, bouncedEvent(c))
		}
	}

	fx := s.course.Hazards.Classify(ball.Position)
	if fx.Sand {
		ball.Velocity = ball.Velocity.Times(math.Max(0, 1-t.SandDrag*dt))
	}

	ball.Velocity = ball.Velocity.ClampMagnitude(t.MaxBallSpeed)

	switch {
	case fx.Water:
		res.Events = append(res.Events, hazardEvent(HazardWater))
		res.Outcome = OutcomeWater
		s.ResetHazards()
		return res
	case s.course.IsOutOfBounds(ball.Position):
		res.Events = append(res.Events, Event{Kind: EventOutOfBounds})
		res.Outcome = OutcomeOutOfBounds
		s.ResetHazards()
		return res
	}

	if fx.Sand && !s.inSand {
		res.Events = append(res.Events, hazardEvent(HazardSand))
	}
	inWind := len(fx.Wind) > 0
	if inWind && !s.inWind {
		res.Events = append(res.Events, hazardEvent(HazardWind))
	}
	s.inSand, s.inWind = fx.Sand, inWind

	if s.course.IsBallInHole(ball) {
		res.Events = append(res.Events, Event{Kind: EventHoleReached})
		res.Outcome = OutcomeHole
	}
	return res
}

// ResetHazards forgets hazard membership, used when the ball is teleported.
func (s *PhysicsStepper) ResetHazards() {
	s.inSand = false
	s.inWind = false
}
