package main

import (
	"log"

	"github.com/joho/godotenv"

	"ledgerdocs/internal/config"
	"ledgerdocs/internal/db"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := db.RunMigrations(cfg.Postgres.URL, cfg.Postgres.MigrationsPath); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	log.Println("migrations applied")
}
