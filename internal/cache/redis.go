package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/flightops/config"
	"github.com/zvrva/flightops/internal/domain"
)

const (
	flightsKey  = "cache:flights"
	airportsKey = "cache:airports"
)

// RedisCache holds the hot list collections. Entries are invalidated on any
// mutation touching the underlying tables, so the TTL is only a backstop.
type RedisCache struct {
	client  *redis.Client
	listTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listTTL: listTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey, payload, c.listTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey).Err()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	data, err := c.client.Get(ctx, airportsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var airports []domain.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	payload, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, airportsKey, payload, c.listTTL).Err()
}

func (c *RedisCache) InvalidateAirports(ctx context.Context) error {
	return c.client.Del(ctx, airportsKey).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
