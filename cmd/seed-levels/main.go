package main

import (
	"flag"
	"log"
	"os"

	"github.com/slinggolf/backend/internal/admin"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/database"
	"github.com/slinggolf/backend/internal/level"
	"github.com/slinggolf/backend/internal/migrations"
)

func main() {
	cfg := config.Load()

	dir := flag.String("dir", cfg.LevelsDir, "directory of .toml/.json level files")
	migrate := flag.Bool("migrate", false, "apply migrations before seeding")
	hashToken := flag.String("hash-admin-token", "", "print the ADMIN_TOKEN_HASH for this token and exit")
	flag.Parse()

	if *hashToken != "" {
		hashed, err := admin.HashAdminToken(*hashToken)
		if err != nil {
			log.Fatalf("Failed to hash admin token: %v", err)
		}
		os.Stdout.WriteString("ADMIN_TOKEN_HASH=" + hashed + "\n")
		return
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *migrate {
		if err := migrations.RunMigrations(cfg.DatabaseURL, migrations.DefaultDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	n, err := level.NewStore(db).SyncDir(*dir)
	if err != nil {
		log.Fatalf("Failed to seed levels (%d written): %v", n, err)
	}
	log.Printf("✓ Seeded %d levels from %s", n, *dir)
}
