package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/zvrva/journeys/api"
	"github.com/zvrva/journeys/config"
	"github.com/zvrva/journeys/internal/bootstrap"
	"github.com/zvrva/journeys/internal/cache"
	"github.com/zvrva/journeys/internal/repository"
	"github.com/zvrva/journeys/internal/service/journeys"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "journeys-api").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(cfg); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	listingTTL := time.Duration(cfg.Search.ListingCacheTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, listingTTL)

	eventRepo := repository.NewFlightEventRepository(pool)
	cityRepo := repository.NewCityRepository(pool)
	journeyService := journeys.NewJourneyService(eventRepo, cityRepo, redisCache)
	handler := api.NewJourneyHandler(journeyService, cfg.Search.DefaultMaxWaitHours)

	logger.Info().Str("address", cfg.HTTP.Address).Msg("starting http server")
	if err := bootstrap.Run(ctx, cfg, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runMigrations(cfg *config.Config) error {
	if cfg.Database.MigrationsPath == "" {
		return nil
	}
	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.URL())
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
