package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wutsk/labreserve/config"
	"github.com/wutsk/labreserve/internal/domain"
)

type RedisCache struct {
	client      *redis.Client
	scheduleTTL time.Duration
	catalogTTL  time.Duration
}

func NewRedisCache(cfg config.RedisConfig, scheduleTTL, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		scheduleTTL: scheduleTTL,
		catalogTTL:  catalogTTL,
	}
}

// GetDaySchedule returns the cached bookings for a station and date, or
// (nil, nil) on a cache miss.
func (c *RedisCache) GetDaySchedule(ctx context.Context, stationID string, date time.Time) ([]domain.Booking, error) {
	data, err := c.client.Get(ctx, scheduleKey(stationID, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *RedisCache) SetDaySchedule(ctx context.Context, stationID string, date time.Time, bookings []domain.Booking) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, scheduleKey(stationID, date), payload, c.scheduleTTL).Err()
}

// InvalidateDaySchedule drops the cached day after a create or cancel.
func (c *RedisCache) InvalidateDaySchedule(ctx context.Context, stationID string, date time.Time) error {
	return c.client.Del(ctx, scheduleKey(stationID, date)).Err()
}

func (c *RedisCache) GetCatalog(ctx context.Context) ([]domain.OperatingSystem, error) {
	data, err := c.client.Get(ctx, catalogKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var systems []domain.OperatingSystem
	if err := json.Unmarshal(data, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}

func (c *RedisCache) SetCatalog(ctx context.Context, systems []domain.OperatingSystem) error {
	payload, err := json.Marshal(systems)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(), payload, c.catalogTTL).Err()
}

func scheduleKey(stationID string, date time.Time) string {
	return fmt.Sprintf("cache:schedule:%s:%s", stationID, date.Format("2006-01-02"))
}

func catalogKey() string {
	return "cache:systems"
}
