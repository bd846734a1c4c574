package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/slinggolf/backend/internal/admin"
	"github.com/slinggolf/backend/internal/api"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/database"
	"github.com/slinggolf/backend/internal/game"
	"github.com/slinggolf/backend/internal/level"
	"github.com/slinggolf/backend/internal/migrations"
	"github.com/slinggolf/backend/internal/redis"
	"github.com/slinggolf/backend/internal/ws"
)

func main() {
	cfg := config.Load()
	production := cfg.Environment == "production"

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database is optional outside production: without it levels come from
	// LEVELS_DIR and results are not recorded.
	var db *sqlx.DB
	if conn, err := database.Connect(cfg.DatabaseURL); err != nil {
		if production {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		log.Printf("[DB] Unavailable (%v); running from level files", err)
	} else {
		db = conn
		defer db.Close()
		log.Println("[DB] Connected")
	}

	if db != nil && cfg.MigrateOnStart {
		log.Println("[MIGRATE] Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL, migrations.DefaultDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	var rdb *goredis.Client
	if conn, err := redis.Connect(cfg.RedisURL); err != nil {
		if production {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("[REDIS] Unavailable (%v); snapshots and idle tracking stay in memory", err)
	} else {
		rdb = conn
		defer rdb.Close()
		log.Println("[REDIS] Connected")
	}

	if db != nil {
		if err := admin.ApplyRuntimeTuning(db, &cfg.Tuning); err != nil {
			log.Printf("[CONFIG] Warning: failed to apply runtime tuning: %v", err)
		}
	}

	levels, err := levelSource(db, cfg)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	game.InitializeManager(ctx, db, rdb, cfg, levels)
	ws.AttachManager(game.Manager)

	ws.SetRedisClient(rdb)
	ws.StartEventSubscriber(ctx)

	game.StartIdleWorker(ctx, game.Manager)

	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, db, levels, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting slinggolf server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	game.Manager.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// levelSource prefers the Postgres store, seeding it from LEVELS_DIR when it
// is empty, and falls back to an in-memory catalogue of the level files.
func levelSource(db *sqlx.DB, cfg *config.Config) (level.Source, error) {
	if db != nil {
		store := level.NewStore(db)
		n, err := store.Count()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			seeded, err := store.SyncDir(cfg.LevelsDir)
			if err != nil {
				return nil, err
			}
			log.Printf("[LEVEL] Seeded %d levels from %s", seeded, cfg.LevelsDir)
		}
		return store, nil
	}

	lvls, err := level.LoadDir(cfg.LevelsDir)
	if err != nil {
		return nil, err
	}
	log.Printf("[LEVEL] Loaded %d levels from %s", len(lvls), cfg.LevelsDir)
	return level.NewCatalog(lvls), nil
}
