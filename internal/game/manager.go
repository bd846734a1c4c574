package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/golf"
	"github.com/slinggolf/backend/internal/level"
	"github.com/slinggolf/backend/internal/models"
)

// Redis keys and channels.
const (
	EventsChannel = "round_events"
	IdleSetKey    = "round_idle"
)

func snapshotKey(roundID string) string   { return "round:" + roundID + ":state" }
func lastActiveKey(roundID string) string { return "last_active:round:" + roundID }

// Broadcaster delivers a message to every client watching a round.
type Broadcaster func(roundID string, message interface{})

// RoundManager owns every live round session.
type RoundManager struct {
	sessions  map[string]*Session
	levels    level.Source
	tuning    golf.Tuning
	rdb       *redis.Client
	db        *sqlx.DB
	config    *config.Config
	broadcast Broadcaster
	ctx       context.Context
	mu        sync.RWMutex

	// finished rounds, kept only when db is nil
	results   []models.RoundResult
	resultsMu sync.Mutex
}

var (
	// Global round manager instance
	Manager *RoundManager
)

// InitializeManager initializes the global round manager
func InitializeManager(ctx context.Context, db *sqlx.DB, rdb *redis.Client, cfg *config.Config, levels level.Source) {
	Manager = NewRoundManager(ctx, db, rdb, cfg, levels)
}

// NewRoundManager creates a round manager. db and rdb may be nil.
func NewRoundManager(ctx context.Context, db *sqlx.DB, rdb *redis.Client, cfg *config.Config, levels level.Source) *RoundManager {
	tuning := golf.DefaultTuning()
	if cfg != nil {
		tuning = cfg.Tuning
	}
	return &RoundManager{
		sessions: make(map[string]*Session),
		levels:   levels,
		tuning:   tuning,
		rdb:      rdb,
		db:       db,
		config:   cfg,
		ctx:      ctx,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// generateRoundID generates a unique round ID
func generateRoundID() string {
	return "round_" + generateToken(8)
}

// SetBroadcaster installs the fan-out used for round_state frames.
func (m *RoundManager) SetBroadcaster(b Broadcaster) {
	m.mu.Lock()
	m.broadcast = b
	m.mu.Unlock()
}

func (m *RoundManager) Tuning() golf.Tuning {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tuning
}

// SetTuning changes the tuning used by rounds created from now on.
func (m *RoundManager) SetTuning(t golf.Tuning) {
	m.mu.Lock()
	m.tuning = t
	m.mu.Unlock()
}

// CreateRound builds a fresh course for levelID and starts its session.
func (m *RoundManager) CreateRound(levelID, playerName string) (*Session, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, errors.New("player name is required")
	}
	if len(playerName) > 32 {
		return nil, errors.New("player name too long")
	}
	if m.levels == nil {
		return nil, errors.New("no level source configured")
	}

	lvl, err := m.levels.Get(levelID)
	if err != nil {
		return nil, err
	}
	course, err := lvl.ToCourse()
	if err != nil {
		return nil, err
	}

	s := NewSession(generateRoundID(), lvl.ID, playerName, course, m.Tuning())
	s.onUpdate = m.handleUpdate
	s.onFinish = m.handleFinish

	// Started before it is published so Stop and Done never see a half-built session.
	s.Start(m.ctx)
	m.touch(s.ID)
	m.saveSnapshot(s.ID, s.Snapshot())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("[ROUND] Created %s on level %s for %q", s.ID, lvl.ID, playerName)
	return s, nil
}

// GetRound returns a live session.
func (m *RoundManager) GetRound(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrRoundNotFound
	}
	return s, nil
}

// GetSnapshot returns the live snapshot, or the last one saved in Redis once
// the round has ended.
func (m *RoundManager) GetSnapshot(id string) (*golf.Snapshot, error) {
	if s, err := m.GetRound(id); err == nil {
		snap := s.Snapshot()
		return &snap, nil
	}
	return m.loadSnapshot(id)
}

// ActiveRoundCount returns the number of live rounds.
func (m *RoundManager) ActiveRoundCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Touch records player activity for the idle reaper.
func (m *RoundManager) Touch(id string) {
	m.touch(id)
}

// AbandonRound ends a live round without a result.
func (m *RoundManager) AbandonRound(id, reason string) bool {
	s, err := m.GetRound(id)
	if err != nil {
		return false
	}
	if !s.Abandon() {
		return false
	}
	log.Printf("[ROUND] Abandoned %s: %s", id, reason)
	m.publishEvents(id, map[string]interface{}{
		"type":     "round_abandoned",
		"round_id": id,
		"reason":   reason,
	})
	return true
}

// Shutdown stops every live session.
func (m *RoundManager) Shutdown() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Stop()
	}
}

func (m *RoundManager) handleUpdate(s *Session, u Update) {
	m.mu.RLock()
	b := m.broadcast
	m.mu.RUnlock()

	if b != nil {
		b(s.ID, map[string]interface{}{
			"type":     "round_state",
			"round_id": s.ID,
			"state":    u.State,
		})
	}

	if len(u.Events) == 0 {
		return
	}
	m.publishEvents(s.ID, map[string]interface{}{
		"type":     "round_events",
		"round_id": s.ID,
		"events":   u.Events,
		"phase":    u.State.Phase,
	})
	m.saveSnapshot(s.ID, u.State)
}

// publishEvents sends an event payload over Redis so every server instance
// (and any other consumer) sees it; without Redis it is broadcast directly.
func (m *RoundManager) publishEvents(roundID string, payload map[string]interface{}) {
	if m.rdb == nil {
		m.mu.RLock()
		b := m.broadcast
		m.mu.RUnlock()
		if b != nil {
			b(roundID, payload)
		}
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ROUND] Error marshaling events for %s: %v", roundID, err)
		return
	}
	if err := m.rdb.Publish(context.Background(), EventsChannel, data).Err(); err != nil {
		log.Printf("[ROUND] publish events failed: round=%s err=%v", roundID, err)
	}
}

func (m *RoundManager) handleFinish(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()
	s.halt()

	res := s.Result()
	m.saveSnapshot(s.ID, s.Snapshot())
	m.clearIdle(s.ID)
	if err := m.recordResult(res); err != nil {
		log.Printf("[DB] Failed to record result for %s: %v", s.ID, err)
	}
	log.Printf("[ROUND] %s finished: status=%s strokes=%d par=%d", s.ID, res.Status, res.Strokes, res.Par)
}

func (m *RoundManager) touch(id string) {
	if m.rdb == nil || m.config == nil {
		return
	}
	ctx := context.Background()
	now := time.Now().Unix()
	m.rdb.Set(ctx, lastActiveKey(id), fmt.Sprintf("%d", now), 0)
	m.rdb.ZAdd(ctx, IdleSetKey, redis.Z{Score: float64(now + int64(m.config.RoundIdleSeconds)), Member: id})
}

func (m *RoundManager) clearIdle(id string) {
	if m.rdb == nil {
		return
	}
	ctx := context.Background()
	m.rdb.ZRem(ctx, IdleSetKey, id)
	m.rdb.Del(ctx, lastActiveKey(id))
}

// saveSnapshot persists the round view to Redis
func (m *RoundManager) saveSnapshot(id string, snap golf.Snapshot) {
	if m.rdb == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("[ROUND] Error marshaling snapshot for %s: %v", id, err)
		return
	}
	ttl := time.Hour
	if m.config != nil && m.config.SnapshotTTLMinutes > 0 {
		ttl = time.Duration(m.config.SnapshotTTLMinutes) * time.Minute
	}
	if err := m.rdb.SetEx(context.Background(), snapshotKey(id), data, ttl).Err(); err != nil {
		log.Printf("[ROUND] Error saving snapshot for %s: %v", id, err)
	}
}

// loadSnapshot restores the last saved round view from Redis
func (m *RoundManager) loadSnapshot(id string) (*golf.Snapshot, error) {
	if m.rdb == nil {
		return nil, ErrRoundNotFound
	}
	data, err := m.rdb.Get(context.Background(), snapshotKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap golf.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
