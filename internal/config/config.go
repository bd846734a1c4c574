package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/slinggolf/backend/internal/golf"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Levels
	LevelsDir string

	// Rounds
	RoundTokenTTLMinutes   int
	RoundIdleSeconds       int
	IdleWorkerPollInterval int
	SnapshotTTLMinutes     int

	// Security
	JWTSecret      string
	AdminTokenHash string

	// Physics tuning; runtime_config overrides are applied on top.
	Tuning golf.Tuning
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	tuning := golf.DefaultTuning()
	tuning.Gravity = getEnvFloat("GRAVITY", tuning.Gravity)
	tuning.MaxBallSpeed = getEnvFloat("MAX_BALL_SPEED", tuning.MaxBallSpeed)
	tuning.WindScale = getEnvFloat("WIND_SCALE", tuning.WindScale)
	tuning.AirDrag = getEnvFloat("AIR_DRAG", tuning.AirDrag)
	tuning.SandDrag = getEnvFloat("SAND_DRAG", tuning.SandDrag)

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/slinggolf?sslmode=disable"),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Levels
		LevelsDir: getEnv("LEVELS_DIR", "levels"),

		// Rounds
		RoundTokenTTLMinutes:   getEnvInt("ROUND_TOKEN_TTL_MINUTES", 60),
		RoundIdleSeconds:       getEnvInt("ROUND_IDLE_SECONDS", 600),
		IdleWorkerPollInterval: getEnvInt("IDLE_WORKER_POLL_SECONDS", 5),
		SnapshotTTLMinutes:     getEnvInt("SNAPSHOT_TTL_MINUTES", 60),

		// Security
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		AdminTokenHash: getEnv("ADMIN_TOKEN_HASH", ""),

		Tuning: tuning,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
