package main

import (
	"context"
	"time"

	"metrictracker/internal/auth"
	"metrictracker/internal/cache"
	"metrictracker/internal/clock"
	"metrictracker/internal/config"
	"metrictracker/internal/db"
	"metrictracker/internal/logger"
	"metrictracker/internal/repository"
	"metrictracker/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	log.Info("Starting seed script...")

	loc, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("invalid TIMEZONE")
	}
	clk := clock.NewSystem(loc)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	log.Info("Connected to database")

	if err := db.Migrate(gormDB, false); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	log.Info("Database migrations completed")

	metricRepo := repository.NewMetricRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL, clk)

	// Seeding needs no cache; a nil client always misses.
	var noCache *cache.Client

	s := &seeder{
		auth:    service.NewAuthService(repository.NewUserRepository(gormDB), jwtService, auth.NewTokenStore(noCache), noCache, clk, log),
		metrics: service.NewMetricService(metricRepo),
		entries: service.NewEntryService(metricRepo, entryRepo, clk),
		goals:   repository.NewGoalRepository(gormDB),
		clock:   clk,
		log:     log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stats, err := s.run(ctx)
	if err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
	log.WithField("goals", stats.goals).WithField("entries", stats.entries).Info("Seeding completed")
}
