package game

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// StartIdleWorker starts a background worker that abandons rounds nobody has
// touched for RoundIdleSeconds. With Redis it polls the round_idle sorted
// set; without it, it sweeps the in-memory sessions.
func StartIdleWorker(ctx context.Context, m *RoundManager) {
	if m == nil || m.config == nil {
		log.Println("[IDLE] Manager or config missing; idle worker not started")
		return
	}

	log.Println("[IDLE] Idle worker started")
	go func() {
		ticker := time.NewTicker(time.Duration(m.config.IdleWorkerPollInterval) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[IDLE] Idle worker stopping")
				return
			case now := <-ticker.C:
				if m.rdb != nil {
					m.reapIdleFromRedis(ctx, now)
				} else {
					m.ReapIdle(now)
				}
			}
		}
	}()
}

func (m *RoundManager) idleLimit() time.Duration {
	return time.Duration(m.config.RoundIdleSeconds) * time.Second
}

func (m *RoundManager) reapIdleFromRedis(ctx context.Context, now time.Time) {
	members, err := m.rdb.ZRangeByScore(ctx, IdleSetKey, &redis.ZRangeBy{Min: "-inf", Max: fmt.Sprintf("%d", now.Unix())}).Result()
	if err != nil {
		log.Printf("[IDLE] Failed to fetch idle rounds: %v", err)
		return
	}

	for _, id := range members {
		// Attempt to remove (race-safe)
		if removed, _ := m.rdb.ZRem(ctx, IdleSetKey, id).Result(); removed == 0 {
			continue
		}
		last, _ := m.rdb.Get(ctx, lastActiveKey(id)).Result()
		lastTs, _ := strconv.ParseInt(last, 10, 64)
		if now.Unix()-lastTs < int64(m.config.RoundIdleSeconds) {
			continue
		}
		m.AbandonRound(id, "idle")
	}
}

// ReapIdle abandons every live round whose last input is older than the
// idle limit. Returns the abandoned round IDs.
func (m *RoundManager) ReapIdle(now time.Time) []string {
	cutoff := now.Add(-m.idleLimit())

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.LastInput().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	var reaped []string
	for _, id := range stale {
		if m.AbandonRound(id, "idle") {
			reaped = append(reaped, id)
		}
	}
	return reaped
}
