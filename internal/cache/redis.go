package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/journeys/config"
	"github.com/zvrva/journeys/internal/domain"
)

type RedisCache struct {
	client     *redis.Client
	listingTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listingTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listingTTL: listingTTL,
	}
}

// GetFlightEvents returns the cached full listing, or nil on a miss.
func (c *RedisCache) GetFlightEvents(ctx context.Context) ([]domain.FlightEvent, error) {
	data, err := c.client.Get(ctx, flightEventsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var events []domain.FlightEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *RedisCache) SetFlightEvents(ctx context.Context, events []domain.FlightEvent) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightEventsKey(), payload, c.listingTTL).Err()
}

// InvalidateFlightEvents drops the listing after new events are ingested.
func (c *RedisCache) InvalidateFlightEvents(ctx context.Context) error {
	return c.client.Del(ctx, flightEventsKey()).Err()
}

func flightEventsKey() string {
	return "cache:flight_events"
}
