package golf

import (
	"errors"
	"fmt"
)

// Phase is the gameplay phase of a round.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseAiming
	PhaseBallFlying
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "PLAYING"
	case PhaseAiming:
		return "AIMING"
	case PhaseBallFlying:
		return "BALL_FLYING"
	case PhaseLevelComplete:
		return "LEVEL_COMPLETE"
	case PhaseGameOver:
		return "GAME_OVER"
	}
	return "UNKNOWN"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	for c := PhasePlaying; c <= PhaseGameOver; c++ {
		if c.String() == string(b) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// Terminal reports whether no further input is accepted.
func (p Phase) Terminal() bool {
	return p == PhaseLevelComplete || p == PhaseGameOver
}

// Trigger is a classified event fed to the state machine.
type Trigger uint8

const (
	TriggerAimStart Trigger = iota + 1
	TriggerAimCancel
	TriggerLaunch
	TriggerBallStopped
	TriggerHole
	TriggerWater
	TriggerOutOfBounds
)

var ErrInvalidTransition = errors.New("invalid phase transition")

// StateMachine sequences the round phases and counts strokes and balls.
// Every transition is a function of the current phase and one trigger.
type StateMachine struct {
	phase          Phase
	strokes        int
	ballsRemaining int
}

func NewStateMachine(balls int) *StateMachine {
	return &StateMachine{phase: PhasePlaying, ballsRemaining: balls}
}

func (m *StateMachine) Phase() Phase        { return m.phase }
func (m *StateMachine) Strokes() int        { return m.strokes }
func (m *StateMachine) BallsRemaining() int { return m.ballsRemaining }

// Apply performs the transition for trigger. An illegal trigger leaves the
// machine untouched and returns ErrInvalidTransition.
func (m *StateMachine) Apply(trigger Trigger) (Phase, error) {
	next, ok := m.next(trigger)
	if !ok {
		return m.phase, ErrInvalidTransition
	}

	switch trigger {
	case TriggerLaunch:
		m.strokes++
	case TriggerWater, TriggerOutOfBounds:
		m.ballsRemaining--
		if m.ballsRemaining <= 0 {
			m.ballsRemaining = 0
			next = PhaseGameOver
		}
	}
	m.phase = next
	return next, nil
}

func (m *StateMachine) next(trigger Trigger) (Phase, bool) {
	switch m.phase {
	case PhasePlaying:
		if trigger == TriggerAimStart {
			return PhaseAiming, true
		}
	case PhaseAiming:
		switch trigger {
		case TriggerAimCancel:
			return PhasePlaying, true
		case TriggerLaunch:
			return PhaseBallFlying, true
		}
	case PhaseBallFlying:
		switch trigger {
		case TriggerBallStopped:
			return PhasePlaying, true
		case TriggerHole:
			return PhaseLevelComplete, true
		case TriggerWater, TriggerOutOfBounds:
			return PhasePlaying, true
		}
	}
	return m.phase, false
}
