package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/slinggolf/backend/internal/golf"
	"github.com/slinggolf/backend/internal/level"
)

func flatLevel() *level.Level {
	return &level.Level{
		ID:      "flat",
		Name:    "Flat",
		Par:     3,
		Balls:   3,
		Terrain: []level.Point{{X: 0, Y: 400}, {X: 600, Y: 400}},
		Hole:    level.Point{X: 560, Y: 400},
		Start:   level.Point{X: 100, Y: 380},
		Bounds:  level.Bounds{MaxX: 600, MaxY: 500},
	}
}

func waterLevel(balls int) *level.Level {
	l := flatLevel()
	l.ID = "splash"
	l.Balls = balls
	l.Hazards = []level.HazardSpec{{Kind: level.HazardWater, X: 375, Y: 360, Width: 450, Height: 120}}
	return l
}

type recorder struct {
	mu       sync.Mutex
	updates  []Update
	finished int
}

func (r *recorder) attach(s *Session) {
	s.onUpdate = func(_ *Session, u Update) {
		r.mu.Lock()
		r.updates = append(r.updates, u)
		r.mu.Unlock()
	}
	s.onFinish = func(*Session) {
		r.mu.Lock()
		r.finished++
		r.mu.Unlock()
	}
}

func (r *recorder) sawEvent(kind golf.EventKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.updates {
		for _, e := range u.Events {
			if e.Kind == kind {
				return true
			}
		}
	}
	return false
}

func newTestSession(t *testing.T, l *level.Level) (*Session, *recorder) {
	t.Helper()
	course, err := l.ToCourse()
	if err != nil {
		t.Fatalf("ToCourse: %v", err)
	}
	s := NewSession("round_test", l.ID, "tester", course, golf.DefaultTuning())
	rec := &recorder{}
	rec.attach(s)
	return s, rec
}

func TestSessionShotCycle(t *testing.T) {
	s, rec := newTestSession(t, flatLevel())
	ball := s.Snapshot().Ball.Position

	if _, err := s.BeginAim(ball.Plus(golf.Vec2{X: 500})); !errors.Is(err, ErrAimRejected) {
		t.Fatalf("far BeginAim err = %v, want ErrAimRejected", err)
	}

	u, err := s.BeginAim(ball)
	if err != nil {
		t.Fatalf("BeginAim: %v", err)
	}
	if u.State.Phase != golf.PhaseAiming {
		t.Fatalf("phase = %v, want AIMING", u.State.Phase)
	}

	u, err = s.UpdateAim(ball.Plus(golf.Vec2{X: 11, Y: -11}))
	if err != nil {
		t.Fatalf("UpdateAim: %v", err)
	}
	if len(u.Preview) != PreviewSteps {
		t.Errorf("preview has %d points, want %d", len(u.Preview), PreviewSteps)
	}

	u, err = s.EndAim()
	if err != nil {
		t.Fatalf("EndAim: %v", err)
	}
	if u.State.Phase != golf.PhaseBallFlying || u.State.Strokes != 1 {
		t.Fatalf("after launch: phase=%v strokes=%d", u.State.Phase, u.State.Strokes)
	}
	if !rec.sawEvent(golf.EventStrokeIncremented) {
		t.Error("stroke_incremented was not emitted")
	}

	for i := 0; i < 1200 && s.Snapshot().Phase == golf.PhaseBallFlying; i++ {
		if s.advance(1.0 / TickRate) {
			t.Fatalf("round finished unexpectedly in phase %v", s.Snapshot().Phase)
		}
	}

	if phase := s.Snapshot().Phase; phase != golf.PhasePlaying {
		t.Fatalf("ball never came to rest, phase %v", phase)
	}
	if !rec.sawEvent(golf.EventBallStopped) {
		t.Error("ball_stopped was not emitted")
	}
	if s.Status() != StatusActive || rec.finished != 0 {
		t.Errorf("status=%s finished=%d, round should still be active", s.Status(), rec.finished)
	}
}

func TestSessionEndAimWithoutAimIsRejected(t *testing.T) {
	s, _ := newTestSession(t, flatLevel())
	if _, err := s.EndAim(); !errors.Is(err, ErrAimRejected) {
		t.Errorf("EndAim err = %v, want ErrAimRejected", err)
	}
	if _, err := s.UpdateAim(golf.Vec2{}); !errors.Is(err, ErrAimRejected) {
		t.Errorf("UpdateAim err = %v, want ErrAimRejected", err)
	}
}

func TestSessionGameOverFinishesOnce(t *testing.T) {
	s, rec := newTestSession(t, waterLevel(1))
	ball := s.Snapshot().Ball.Position

	s.BeginAim(ball)
	s.UpdateAim(ball.Plus(golf.Vec2{X: 150}))
	if _, err := s.EndAim(); err != nil {
		t.Fatalf("EndAim: %v", err)
	}

	finished := false
	for i := 0; i < 60 && !finished; i++ {
		finished = s.advance(1.0 / TickRate)
	}
	if !finished {
		t.Fatal("round did not finish")
	}
	if s.Status() != StatusFailed {
		t.Errorf("status = %s, want failed", s.Status())
	}
	if !rec.sawEvent(golf.EventGameOver) {
		t.Error("game_over was not emitted")
	}

	if !s.advance(1.0 / TickRate) {
		t.Error("finished session should keep reporting finished")
	}
	if rec.finished != 1 {
		t.Errorf("onFinish called %d times, want 1", rec.finished)
	}

	res := s.Result()
	if res.BallsLost != 1 || res.Strokes != 1 || res.ScoreLabel != "" {
		t.Errorf("result = %+v", res)
	}
	if _, err := s.BeginAim(ball); !errors.Is(err, ErrRoundOver) {
		t.Errorf("input after game over err = %v, want ErrRoundOver", err)
	}
}

func TestSessionAbandon(t *testing.T) {
	s, rec := newTestSession(t, flatLevel())

	if !s.Abandon() {
		t.Fatal("Abandon on an active round should succeed")
	}
	if s.Abandon() {
		t.Error("second Abandon should be a no-op")
	}
	if s.Status() != StatusAbandoned || rec.finished != 1 {
		t.Errorf("status=%s finished=%d", s.Status(), rec.finished)
	}
	if _, err := s.BeginAim(s.Snapshot().Ball.Position); !errors.Is(err, ErrRoundOver) {
		t.Errorf("input after abandon err = %v, want ErrRoundOver", err)
	}
}

func TestSessionIdleTickSendsNothing(t *testing.T) {
	s, rec := newTestSession(t, flatLevel())

	s.advance(1.0 / TickRate) // initial frame
	rec.mu.Lock()
	first := len(rec.updates)
	rec.mu.Unlock()

	for i := 0; i < 10; i++ {
		s.advance(1.0 / TickRate)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if first != 1 {
		t.Errorf("initial frame count = %d, want 1", first)
	}
	if len(rec.updates) != first {
		t.Errorf("resting round without obstacles sent %d extra frames", len(rec.updates)-first)
	}
}
