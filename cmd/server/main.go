package main

import (
	"context"
	"log"

	"meterrecon/adapters/api"
	"meterrecon/adapters/postgres"
	"meterrecon/internal"
	"meterrecon/internal/config"
	"meterrecon/internal/migration"
	"meterrecon/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	var runs ports.RunRepository
	if cfg.Database.Enabled() {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := migration.NewRunner().Run(context.Background(), db); err != nil {
			log.Fatalf("failed to prepare database schema: %v", err)
		}
		runs = postgres.NewRunRepository(db)
		logger.Info("[Startup] run history enabled")
	} else {
		logger.Info("[Startup] DATABASE_URL not set, run history disabled")
	}

	service := api.NewService(cfg, logger, runs)
	router := api.Router(service)

	logger.Info("[Startup] listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
