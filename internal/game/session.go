package game

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/slinggolf/backend/internal/golf"
)

// TickRate is how often a session advances its round, in Hz.
const TickRate = 60

// PreviewSteps is the length of the trajectory preview sent while aiming.
const PreviewSteps = 45

type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusFailed    SessionStatus = "failed"
	StatusAbandoned SessionStatus = "abandoned"
)

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrRoundOver     = errors.New("round is over")
	ErrAimRejected   = errors.New("aim rejected")
)

// Update is what a session reports after a tick or an input.
type Update struct {
	State   golf.Snapshot `json:"state"`
	Events  []golf.Event  `json:"events,omitempty"`
	Preview []golf.Vec2   `json:"preview,omitempty"`
}

// Session drives one golf.Round in real time. The round is only touched
// under mu; inputs and the tick loop may arrive from different goroutines.
type Session struct {
	ID         string
	LevelID    string
	PlayerName string
	CreatedAt  time.Time

	mu        sync.Mutex
	round     *golf.Round
	status    SessionStatus
	lastInput time.Time
	endedAt   time.Time
	dirty     bool
	desynced  bool

	cancel   context.CancelFunc
	done     chan struct{}
	onUpdate func(s *Session, u Update)
	onFinish func(s *Session)
}

func NewSession(id, levelID, playerName string, course *golf.Course, tuning golf.Tuning) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		LevelID:    levelID,
		PlayerName: playerName,
		CreatedAt:  now,
		round:      golf.NewRound(course, tuning),
		status:     StatusActive,
		lastInput:  now,
		dirty:      true,
	}
}

// Start runs the tick loop until the round ends or ctx is cancelled.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.loop(ctx)
	}()
}

// Stop cancels the tick loop and waits for it to exit.
func (s *Session) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// halt cancels the tick loop without waiting; safe from inside the loop.
func (s *Session) halt() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Done closes when the tick loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if finished := s.advance(elapsed); finished {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// advance steps the round by elapsed seconds and reports whether the round
// has reached a terminal phase.
func (s *Session) advance(elapsed float64) bool {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return true
	}
	events := s.round.Advance(elapsed)
	phase := s.round.Phase()
	if err := s.round.Err(); err != nil && !s.desynced {
		s.desynced = true
		log.Printf("[ROUND] %s: %v", s.ID, err)
	}
	send := s.dirty || len(events) > 0 || phase == golf.PhaseBallFlying || len(s.round.Course.Moving) > 0
	s.dirty = false

	finished := false
	switch phase {
	case golf.PhaseLevelComplete:
		s.status, s.endedAt, finished = StatusCompleted, time.Now(), true
	case golf.PhaseGameOver:
		s.status, s.endedAt, finished = StatusFailed, time.Now(), true
	}

	var u Update
	if send || finished {
		u = Update{State: s.round.Snapshot(), Events: events}
	}
	s.mu.Unlock()

	if send || finished {
		s.emit(u)
	}
	if finished && s.onFinish != nil {
		s.onFinish(s)
	}
	return finished
}

func (s *Session) emit(u Update) {
	if s.onUpdate != nil {
		s.onUpdate(s, u)
	}
}

// Abandon ends an active round without a result, e.g. when idle.
func (s *Session) Abandon() bool {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return false
	}
	s.status = StatusAbandoned
	s.endedAt = time.Now()
	s.mu.Unlock()

	if s.onFinish != nil {
		s.onFinish(s)
	}
	return true
}

// BeginAim starts a drag at world point p.
func (s *Session) BeginAim(p golf.Vec2) (Update, error) {
	return s.input(func(r *golf.Round) ([]golf.Event, error) {
		if !r.BeginAim(p) {
			return nil, ErrAimRejected
		}
		return nil, nil
	})
}

// UpdateAim drags the ball to p and returns the trajectory preview.
func (s *Session) UpdateAim(p golf.Vec2) (Update, error) {
	return s.input(func(r *golf.Round) ([]golf.Event, error) {
		if !r.UpdateAim(p) {
			return nil, ErrAimRejected
		}
		return nil, nil
	})
}

// EndAim releases the drag; a long enough pull launches the ball.
func (s *Session) EndAim() (Update, error) {
	return s.input(func(r *golf.Round) ([]golf.Event, error) {
		if r.Phase() != golf.PhaseAiming {
			return nil, ErrAimRejected
		}
		events, _ := r.EndAim()
		return events, nil
	})
}

func (s *Session) input(fn func(r *golf.Round) ([]golf.Event, error)) (Update, error) {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return Update{}, ErrRoundOver
	}
	s.lastInput = time.Now()
	events, err := fn(s.round)
	if err != nil {
		s.mu.Unlock()
		return Update{}, err
	}
	s.dirty = true
	u := Update{
		State:   s.round.Snapshot(),
		Events:  events,
		Preview: s.round.Preview(PreviewSteps),
	}
	s.mu.Unlock()

	if len(events) > 0 {
		s.emit(Update{State: u.State, Events: events})
	}
	return u, nil
}

// Snapshot returns the current round view.
func (s *Session) Snapshot() golf.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Snapshot()
}

func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastInput is when the player last sent an accepted input.
func (s *Session) LastInput() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastInput
}

// Result summarises the session for persistence.
type Result struct {
	RoundID    string        `json:"round_id"`
	LevelID    string        `json:"level_id"`
	PlayerName string        `json:"player_name"`
	Status     SessionStatus `json:"status"`
	Strokes    int           `json:"strokes"`
	Par        int           `json:"par"`
	BallsLost  int           `json:"balls_lost"`
	ScoreLabel string        `json:"score_label,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at"`
}

func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Result{
		RoundID:    s.ID,
		LevelID:    s.LevelID,
		PlayerName: s.PlayerName,
		Status:     s.status,
		Strokes:    s.round.Strokes(),
		Par:        s.round.Course.Par,
		BallsLost:  s.round.Course.Balls - s.round.BallsRemaining(),
		StartedAt:  s.CreatedAt,
		EndedAt:    s.endedAt,
	}
	if s.status == StatusCompleted {
		r.ScoreLabel = golf.ScoreLabel(r.Strokes, r.Par)
	}
	return r
}
