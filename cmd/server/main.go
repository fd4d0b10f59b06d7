package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"metrictracker/docs"
	"metrictracker/internal/auth"
	"metrictracker/internal/cache"
	"metrictracker/internal/clock"
	"metrictracker/internal/config"
	"metrictracker/internal/db"
	"metrictracker/internal/handler"
	"metrictracker/internal/logger"
	"metrictracker/internal/repository"
	"metrictracker/internal/router"
	"metrictracker/internal/service"
)

//go:generate swag init -g cmd/server/main.go -d ../.. -o ../../docs

// @title Metric Tracker API
// @version 1.0
// @description Personal metrics tracking: metrics, dated entries, a daily dashboard and reports.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	loc, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("invalid TIMEZONE")
	}
	clk := clock.NewSystem(loc)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.WithError(err).Fatal("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.WithError(err).Warn("redis unreachable, caching and token revocation disabled until it returns")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	metricRepo := repository.NewMetricRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL, clk)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, cacheClient, clk, log)
	metricService := service.NewMetricService(metricRepo)
	entryService := service.NewEntryService(metricRepo, entryRepo, clk)
	aggregationService := service.NewAggregationService(metricRepo, entryRepo)

	// Register routes
	e := echo.New()
	router.Register(
		e,
		cfg,
		router.Gate{JWT: jwtService, Tokens: tokenStore},
		log,
		handler.NewAuthHandler(authService),
		handler.NewMetricHandler(metricService),
		handler.NewEntryHandler(entryService),
		handler.NewDashboardHandler(aggregationService, clk),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	log.Info("server stopped")
}
