package game

import (
	"sort"

	"github.com/slinggolf/backend/internal/models"
)

// maxMemoryResults bounds the result history kept by managers without a database.
const maxMemoryResults = 500

// Each player's best completed round: fewest strokes, earliest completion on a tie.
const leaderboardQuery = `
	WITH ranked AS (
		SELECT player_name, strokes, completed_at,
			ROW_NUMBER() OVER (PARTITION BY player_name ORDER BY strokes ASC, completed_at ASC) AS rn,
			COUNT(*) OVER (PARTITION BY player_name) AS rounds
		FROM round_results
		WHERE level_id = $1 AND status = $2
	)
	SELECT player_name, strokes AS best_strokes, rounds, completed_at AS achieved_at
	FROM ranked
	WHERE rn = 1
	ORDER BY best_strokes ASC, achieved_at ASC, player_name ASC
	LIMIT $3
`

func resultRow(r Result) models.RoundResult {
	return models.RoundResult{
		RoundID:     r.RoundID,
		LevelID:     r.LevelID,
		PlayerName:  r.PlayerName,
		Status:      string(r.Status),
		Strokes:     r.Strokes,
		Par:         r.Par,
		BallsLost:   r.BallsLost,
		ScoreLabel:  r.ScoreLabel,
		DurationMs:  r.EndedAt.Sub(r.StartedAt).Milliseconds(),
		StartedAt:   r.StartedAt,
		CompletedAt: r.EndedAt,
	}
}

// recordResult persists a finished round
func (m *RoundManager) recordResult(r Result) error {
	row := resultRow(r)
	if m.db == nil {
		m.resultsMu.Lock()
		defer m.resultsMu.Unlock()
		for _, prev := range m.results {
			if prev.RoundID == row.RoundID {
				return nil
			}
		}
		m.results = append(m.results, row)
		if len(m.results) > maxMemoryResults {
			m.results = m.results[len(m.results)-maxMemoryResults:]
		}
		return nil
	}
	_, err := m.db.NamedExec(`
		INSERT INTO round_results (round_id, level_id, player_name, status, strokes, par, balls_lost, score_label, duration_ms, started_at, completed_at)
		VALUES (:round_id, :level_id, :player_name, :status, :strokes, :par, :balls_lost, :score_label, :duration_ms, :started_at, :completed_at)
		ON CONFLICT (round_id) DO NOTHING
	`, row)
	return err
}

// Leaderboard returns each player's best completed round on a level
func (m *RoundManager) Leaderboard(levelID string, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if m.db == nil {
		m.resultsMu.Lock()
		defer m.resultsMu.Unlock()
		return rankLeaderboard(m.results, levelID, limit), nil
	}
	var entries []models.LeaderboardEntry
	err := m.db.Select(&entries, leaderboardQuery, levelID, string(StatusCompleted), limit)
	return entries, err
}

// rankLeaderboard applies leaderboardQuery to an in-memory result list.
func rankLeaderboard(results []models.RoundResult, levelID string, limit int) []models.LeaderboardEntry {
	best := make(map[string]*models.LeaderboardEntry)
	for _, r := range results {
		if r.LevelID != levelID || r.Status != string(StatusCompleted) {
			continue
		}
		e, ok := best[r.PlayerName]
		if !ok {
			best[r.PlayerName] = &models.LeaderboardEntry{
				PlayerName:  r.PlayerName,
				BestStrokes: r.Strokes,
				Rounds:      1,
				AchievedAt:  r.CompletedAt,
			}
			continue
		}
		e.Rounds++
		if r.Strokes < e.BestStrokes || (r.Strokes == e.BestStrokes && r.CompletedAt.Before(e.AchievedAt)) {
			e.BestStrokes = r.Strokes
			e.AchievedAt = r.CompletedAt
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(best))
	for _, e := range best {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.BestStrokes != b.BestStrokes {
			return a.BestStrokes < b.BestStrokes
		}
		if !a.AchievedAt.Equal(b.AchievedAt) {
			return a.AchievedAt.Before(b.AchievedAt)
		}
		return a.PlayerName < b.PlayerName
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// RecentResults returns the latest results for a player
func (m *RoundManager) RecentResults(playerName string, limit int) ([]models.RoundResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if m.db == nil {
		m.resultsMu.Lock()
		defer m.resultsMu.Unlock()
		results := []models.RoundResult{}
		for i := len(m.results) - 1; i >= 0 && len(results) < limit; i-- {
			if m.results[i].PlayerName == playerName {
				results = append(results, m.results[i])
			}
		}
		return results, nil
	}
	var results []models.RoundResult
	err := m.db.Select(&results, `
		SELECT id, round_id, level_id, player_name, status, strokes, par, balls_lost, score_label, duration_ms, started_at, completed_at
		FROM round_results
		WHERE player_name = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`, playerName, limit)
	return results, err
}
