package admin

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/slinggolf/backend/internal/golf"
	"github.com/slinggolf/backend/internal/models"
)

// tuningFields maps runtime_config keys onto golf.Tuning fields.
var tuningFields = map[string]func(t *golf.Tuning) *float64{
	"gravity":             func(t *golf.Tuning) *float64 { return &t.Gravity },
	"max_ball_speed":      func(t *golf.Tuning) *float64 { return &t.MaxBallSpeed },
	"air_drag":            func(t *golf.Tuning) *float64 { return &t.AirDrag },
	"sand_drag":           func(t *golf.Tuning) *float64 { return &t.SandDrag },
	"wind_scale":          func(t *golf.Tuning) *float64 { return &t.WindScale },
	"terrain_restitution": func(t *golf.Tuning) *float64 { return &t.TerrainRestitution },
	"absorb_speed":        func(t *golf.Tuning) *float64 { return &t.AbsorbSpeed },
	"rolling_friction":    func(t *golf.Tuning) *float64 { return &t.RollingFriction },
	"stop_speed":          func(t *golf.Tuning) *float64 { return &t.StopSpeed },
	"stop_duration":       func(t *golf.Tuning) *float64 { return &t.StopDuration },
	"capture_radius":      func(t *golf.Tuning) *float64 { return &t.CaptureRadius },
	"max_pull_distance":   func(t *golf.Tuning) *float64 { return &t.MaxPullDistance },
	"min_pull_distance":   func(t *golf.Tuning) *float64 { return &t.MinPullDistance },
	"min_launch_speed":    func(t *golf.Tuning) *float64 { return &t.MinLaunchSpeed },
	"max_launch_speed":    func(t *golf.Tuning) *float64 { return &t.MaxLaunchSpeed },
}

// TuningKeys lists the runtime-editable tuning keys.
func TuningKeys() []string {
	keys := make([]string, 0, len(tuningFields))
	for k := range tuningFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetTuningValue parses value and writes it to the tuning field named key.
func SetTuningValue(t *golf.Tuning, key, value string) error {
	field, ok := tuningFields[key]
	if !ok {
		return fmt.Errorf("unknown tuning key: %s", key)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid float value: %s", value)
	}
	if v < 0 {
		return fmt.Errorf("tuning value must not be negative: %s", value)
	}
	*field(t) = v
	return nil
}

// GetAllRuntimeConfig returns all runtime config entries
func GetAllRuntimeConfig(db *sqlx.DB) ([]models.RuntimeConfig, error) {
	var configs []models.RuntimeConfig
	err := db.Select(&configs, `
		SELECT key, value, value_type, description, updated_by, updated_at
		FROM runtime_config
		ORDER BY key
	`)
	return configs, err
}

// GetRuntimeConfigValue returns a single runtime config value
func GetRuntimeConfigValue(db *sqlx.DB, key string) (*models.RuntimeConfig, error) {
	var cfg models.RuntimeConfig
	err := db.Get(&cfg, `SELECT key, value, value_type, description, updated_by, updated_at FROM runtime_config WHERE key=$1`, key)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateTuningValue validates and stores a tuning override
func UpdateTuningValue(db *sqlx.DB, key, value, actor string) error {
	var scratch golf.Tuning
	if err := SetTuningValue(&scratch, key, value); err != nil {
		return err
	}

	_, err := db.Exec(`
		INSERT INTO runtime_config (key, value, value_type, updated_by, updated_at)
		VALUES ($1, $2, 'float', $3, NOW())
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_by=EXCLUDED.updated_by, updated_at=NOW()
	`, key, value, actor)
	return err
}

// ApplyRuntimeTuning loads runtime config from DB and applies the tuning overrides
func ApplyRuntimeTuning(db *sqlx.DB, t *golf.Tuning) error {
	configs, err := GetAllRuntimeConfig(db)
	if err != nil {
		return err
	}

	applied := applyConfigs(configs, t)
	log.Printf("[CONFIG] Applied %d runtime tuning overrides from database", applied)
	return nil
}

func applyConfigs(configs []models.RuntimeConfig, t *golf.Tuning) int {
	applied := 0
	for _, c := range configs {
		if _, ok := tuningFields[c.Key]; !ok {
			continue
		}
		if err := SetTuningValue(t, c.Key, c.Value); err != nil {
			log.Printf("[CONFIG] Ignoring runtime config %s: %v", c.Key, err)
			continue
		}
		applied++
	}
	return applied
}
