package main

import (
	"context"
	"log"
	"time"

	"stylora-be/internal/config"
	"stylora-be/internal/storage"
)

// Applies the postgres schema. The server runs the same migration on
// startup; this command exists for provisioning a database ahead of a
// deploy.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.StorageDriver != config.DriverPostgres {
		log.Fatal("STORAGE_DRIVER must be postgres to run migrations")
	}

	db, err := storage.OpenPostgres(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := storage.NewPostgresGateway(db).Migrate(ctx); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("schema is up to date")
}
