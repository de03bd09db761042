package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/zvrva/journeys/config"
	"github.com/zvrva/journeys/internal/cache"
	"github.com/zvrva/journeys/internal/domain"
	"github.com/zvrva/journeys/internal/kafka"
	"github.com/zvrva/journeys/internal/repository"
	"github.com/zvrva/journeys/internal/service/ingest"
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

	logger := zerolog.New(os.Stdout).With().Timestamp().
		Str("service", "journeys-worker").
		Str("batch_id", uuid.NewString()).
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	listingTTL := time.Duration(cfg.Search.ListingCacheTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, listingTTL)

	importer := ingest.NewImporter(
		repository.NewFlightEventRepository(pool),
		repository.NewCityRepository(pool),
		repository.NewFlightRepository(pool),
		redisCache,
		logger,
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightEventsTopic)
	defer consumer.Close()

	logger.Info().Str("topic", cfg.Kafka.FlightEventsTopic).Msg("consuming flight events")

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var record ingest.FlightEventRecord
		if err := json.Unmarshal(msg.Value, &record); err != nil {
			logger.Warn().Err(err).Str("key", string(msg.Key)).Msg("skipping malformed record")
			return nil
		}

		if err := importer.Import(ctx, record); err != nil {
			if isRecordError(err) {
				logger.Warn().Err(err).Str("key", string(msg.Key)).Msg("skipping rejected record")
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer stopped: %v", err)
	}
}

// isRecordError reports whether the failure belongs to the record rather than
// the infrastructure, so the consumer can keep going.
func isRecordError(err error) bool {
	var notFound *domain.NotFoundError
	var constraint *domain.ConstraintError
	return errors.As(err, &notFound) || errors.As(err, &constraint)
}
