package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GRAVITY", "")
	t.Setenv("ROUND_IDLE_SECONDS", "")

	cfg := Load()
	if cfg.Tuning.Gravity != 900 {
		t.Errorf("default gravity = %.1f, want 900", cfg.Tuning.Gravity)
	}
	if cfg.RoundIdleSeconds != 600 {
		t.Errorf("default idle seconds = %d, want 600", cfg.RoundIdleSeconds)
	}
	if cfg.LevelsDir != "levels" {
		t.Errorf("default levels dir = %q", cfg.LevelsDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GRAVITY", "1200.5")
	t.Setenv("SAND_DRAG", "not-a-number")
	t.Setenv("ROUND_IDLE_SECONDS", "30")
	t.Setenv("MIGRATE_ON_START", "false")

	cfg := Load()
	if cfg.Tuning.Gravity != 1200.5 {
		t.Errorf("gravity = %.1f, want 1200.5", cfg.Tuning.Gravity)
	}
	if cfg.Tuning.SandDrag != 6 {
		t.Errorf("bad SAND_DRAG should keep default, got %.1f", cfg.Tuning.SandDrag)
	}
	if cfg.RoundIdleSeconds != 30 {
		t.Errorf("idle seconds = %d, want 30", cfg.RoundIdleSeconds)
	}
	if cfg.MigrateOnStart {
		t.Error("MIGRATE_ON_START=false not honoured")
	}
}
