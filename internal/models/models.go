package models

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// RoundResult is the persisted outcome of a finished round
type RoundResult struct {
	ID          int       `db:"id" json:"id"`
	RoundID     string    `db:"round_id" json:"round_id"`
	LevelID     string    `db:"level_id" json:"level_id"`
	PlayerName  string    `db:"player_name" json:"player_name"`
	Status      string    `db:"status" json:"status"`
	Strokes     int       `db:"strokes" json:"strokes"`
	Par         int       `db:"par" json:"par"`
	BallsLost   int       `db:"balls_lost" json:"balls_lost"`
	ScoreLabel  string    `db:"score_label" json:"score_label,omitempty"`
	DurationMs  int64     `db:"duration_ms" json:"duration_ms"`
	StartedAt   time.Time `db:"started_at" json:"started_at"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// LeaderboardEntry is one player's best completed round on a level
type LeaderboardEntry struct {
	PlayerName  string    `db:"player_name" json:"player_name"`
	BestStrokes int       `db:"best_strokes" json:"best_strokes"`
	Rounds      int       `db:"rounds" json:"rounds"`
	AchievedAt  time.Time `db:"achieved_at" json:"achieved_at"`
}

// RuntimeConfig represents a runtime-editable setting
type RuntimeConfig struct {
	Key         string         `db:"key" json:"key"`
	Value       string         `db:"value" json:"value"`
	ValueType   string         `db:"value_type" json:"value_type"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	UpdatedBy   sql.NullString `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// AdminAudit records an admin action
type AdminAudit struct {
	ID        int            `db:"id" json:"id"`
	Actor     string         `db:"actor" json:"actor"`
	IP        string         `db:"ip" json:"ip"`
	Route     string         `db:"route" json:"route"`
	Action    string         `db:"action" json:"action"`
	Details   types.JSONText `db:"details" json:"details"`
	Success   bool           `db:"success" json:"success"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
