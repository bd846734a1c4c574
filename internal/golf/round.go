package golf

import (
	"fmt"
	"math"
)

// stopEpsilon absorbs float drift when the stop timer is summed from fixed steps.
const stopEpsilon = 1e-9

// Round composes the core components for one level attempt. It is the only
// owner of the ball: the slingshot positions it while aiming, the stepper
// simulates it while flying, and the state machine keeps those apart.
//
// A Round is not safe for concurrent use.
type Round struct {
	Course *Course
	Tuning Tuning
	Ball   Ball

	machine *StateMachine
	stepper *PhysicsStepper
	sling   *SlingshotController
	motion  ObstacleMotion

	accumulator      float64
	stopTimer        float64
	lastBallPosition Vec2
	tick             uint64
	err              error
}

// NewRound places the ball on the terrain at the course start, offset by its
// radius, and enters PLAYING. The course must not be shared with another
// round since its moving obstacles are advanced in place.
func NewRound(course *Course, tuning Tuning) *Round {
	start := course.RestingPosition(course.Start.X, BallRadius)
	r := &Round{
		Course: course,
		Tuning: tuning,
		Ball: Ball{
			Position: start,
			Radius:   BallRadius,
			OnGround: true,
		},
		machine:          NewStateMachine(course.Balls),
		stepper:          NewPhysicsStepper(course, tuning),
		sling:            NewSlingshotController(tuning),
		motion:           ObstacleMotion{Moving: course.Moving},
		lastBallPosition: start,
	}
	return r
}

func (r *Round) Phase() Phase        { return r.machine.Phase() }
func (r *Round) Strokes() int        { return r.machine.Strokes() }
func (r *Round) BallsRemaining() int { return r.machine.BallsRemaining() }
func (r *Round) Aim() AimState       { return r.sling.Aim() }
func (r *Round) Tick() uint64        { return r.tick }

// Err returns the first rejected phase transition, if any. A round that
// reports one has drifted out of sync with its state machine.
func (r *Round) Err() error { return r.err }

// apply fires trigger on the state machine and remembers the first failure.
func (r *Round) apply(trigger Trigger) (Phase, error) {
	phase, err := r.machine.Apply(trigger)
	if err != nil {
		err = fmt.Errorf("tick %d: trigger %d from %v: %w", r.tick, trigger, phase, err)
		if r.err == nil {
			r.err = err
		}
	}
	return phase, err
}

// LastBallPosition is the rest position the ball returns to after a hazard reset.
func (r *Round) LastBallPosition() Vec2 { return r.lastBallPosition }

// Advance accumulates elapsed wall time and drains it in whole fixed steps.
// At most Tuning.MaxStepsPerFrame steps run per call; any backlog beyond
// that is dropped.
func (r *Round) Advance(elapsed float64) []Event {
	if elapsed <= 0 || math.IsNaN(elapsed) {
		return nil
	}
	dt := r.Tuning.FixedStep
	r.accumulator += elapsed

	var events []Event
	steps := 0
	for r.accumulator >= dt {
		if r.Tuning.MaxStepsPerFrame > 0 && steps >= r.Tuning.MaxStepsPerFrame {
			r.accumulator = math.Mod(r.accumulator, dt)
			break
		}
		events = append(events, r.Step()...)
		r.accumulator -= dt
		steps++
	}
	return events
}

// Step runs exactly one fixed step. Moving obstacles always advance; the
// ball is only simulated while BALL_FLYING.
func (r *Round) Step() []Event {
	dt := r.Tuning.FixedStep
	r.tick++
	r.motion.Update(dt)

	if r.machine.Phase() != PhaseBallFlying {
		return nil
	}

	res := r.stepper.Step(&r.Ball, dt)
	events := res.Events

	switch res.Outcome {
	case OutcomeHole:
		if _, err := r.apply(TriggerHole); err != nil {
			return events
		}
		r.Ball.Velocity = Vec2{}
		return events
	case OutcomeWater:
		return append(events, r.resetBall(TriggerWater)...)
	case OutcomeOutOfBounds:
		return append(events, r.resetBall(TriggerOutOfBounds)...)
	}

	if r.Ball.Speed() < r.Tuning.StopSpeed && r.Ball.OnGround {
		r.stopTimer += dt
	} else {
		r.stopTimer = 0
	}
	if r.stopTimer >= r.Tuning.StopDuration-stopEpsilon {
		if _, err := r.apply(TriggerBallStopped); err != nil {
			return events
		}
		r.stopTimer = 0
		r.Ball.Velocity = Vec2{}
		r.lastBallPosition = r.Ball.Position
		pos := r.Ball.Position
		events = append(events, Event{Kind: EventBallStopped, Position: &pos})
	}
	return events
}

// resetBall consumes a ball and puts it back at the last rest position.
func (r *Round) resetBall(trigger Trigger) []Event {
	phase, err := r.apply(trigger)
	if err != nil {
		return nil
	}
	r.stopTimer = 0
	r.stepper.ResetHazards()
	r.Ball.Position = r.lastBallPosition
	r.Ball.Velocity = Vec2{}
	r.Ball.OnGround = true

	pos := r.lastBallPosition
	events := []Event{{Kind: EventBallReset, Position: &pos}}
	if phase == PhaseGameOver {
		events = append(events, Event{Kind: EventGameOver})
	}
	return events
}

// BeginAim starts aiming from PLAYING. It is rejected while the ball moves
// or when point is outside the capture radius.
func (r *Round) BeginAim(point Vec2) bool {
	if r.machine.Phase() != PhasePlaying {
		return false
	}
	if !r.sling.BeginAim(&r.Ball, point) {
		return false
	}
	if _, err := r.apply(TriggerAimStart); err != nil {
		r.sling.Cancel(&r.Ball)
		return false
	}
	return true
}

// UpdateAim drags the ball while AIMING.
func (r *Round) UpdateAim(point Vec2) bool {
	if r.machine.Phase() != PhaseAiming {
		return false
	}
	r.sling.UpdateAim(&r.Ball, point)
	return true
}

// EndAim releases the drag. A short pull cancels back to PLAYING; otherwise
// the ball launches, the stroke is counted and the round enters BALL_FLYING.
func (r *Round) EndAim() ([]Event, bool) {
	if r.machine.Phase() != PhaseAiming {
		return nil, false
	}
	anchor := r.sling.Aim().Anchor
	if _, ok := r.sling.EndAim(&r.Ball); !ok {
		r.apply(TriggerAimCancel)
		return nil, false
	}

	if _, err := r.apply(TriggerLaunch); err != nil {
		r.Ball.Position, r.Ball.Velocity, r.Ball.OnGround = anchor, Vec2{}, true
		return nil, false
	}
	r.lastBallPosition = anchor
	r.stopTimer = 0
	return []Event{{Kind: EventStrokeIncremented, Strokes: r.machine.Strokes()}}, true
}

// Preview returns the gravity-only trajectory the ball would follow if
// released now, or nil when not aiming.
func (r *Round) Preview(steps int) []Vec2 {
	aim := r.sling.Aim()
	if !aim.Active || aim.PullDistance < r.Tuning.MinPullDistance {
		return nil
	}
	v := LaunchVelocity(aim.Anchor, aim.Target, r.Tuning)
	return PreviewTrajectory(aim.Target, v, r.Tuning.Gravity, steps)
}

// Snapshot is a serializable view of a round for renderers and persistence.
type Snapshot struct {
	Tick           uint64   `json:"tick"`
	Phase          Phase    `json:"phase"`
	Ball           Ball     `json:"ball"`
	Aim            AimState `json:"aim"`
	Strokes        int      `json:"strokes"`
	Par            int      `json:"par"`
	BallsRemaining int      `json:"balls_remaining"`
	Hole           Vec2     `json:"hole"`
	Obstacles      []Vec2   `json:"obstacles,omitempty"`
}

func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Tick:           r.tick,
		Phase:          r.machine.Phase(),
		Ball:           r.Ball,
		Aim:            r.sling.Aim(),
		Strokes:        r.machine.Strokes(),
		Par:            r.Course.Par,
		BallsRemaining: r.machine.BallsRemaining(),
		Hole:           r.Course.Hole,
	}
	for _, m := range r.Course.Moving {
		s.Obstacles = append(s.Obstacles, m.Position())
	}
	return s
}

// ScoreLabel names a finished hole's strokes relative to par.
func ScoreLabel(strokes, par int) string {
	if strokes == 1 {
		return "hole_in_one"
	}
	switch d := strokes - par; {
	case d <= -3:
		return "albatross"
	case d == -2:
		return "eagle"
	case d == -1:
		return "birdie"
	case d == 0:
		return "par"
	case d == 1:
		return "bogey"
	case d == 2:
		return "double_bogey"
	case d == 3:
		return "triple_bogey"
	default:
		return fmt.Sprintf("+%d", d)
	}
}
