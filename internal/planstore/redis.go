package planstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	planKeyPrefix   = "mapleplan:plan:"
	clientKeyPrefix = "mapleplan:client:"

	// Plans expire after 90 days; a client's latest-plan pointer follows
	// the same window.
	recordTTL = 90 * 24 * time.Hour
)

// RedisStore persists records in Redis, one JSON blob per plan plus a
// latest-plan pointer per client id.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the given address.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Save(ctx context.Context, record domain.PlanRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode plan record: %w", err)
	}
	if err := s.client.Set(ctx, planKeyPrefix+record.ID, data, recordTTL).Err(); err != nil {
		return fmt.Errorf("failed to store plan: %w", err)
	}
	if record.ClientID != "" {
		if err := s.client.Set(ctx, clientKeyPrefix+record.ClientID, record.ID, recordTTL).Err(); err != nil {
			return fmt.Errorf("failed to index client plan: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) GetByID(ctx context.Context, id string) (domain.PlanRecord, error) {
	data, err := s.client.Get(ctx, planKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PlanRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.PlanRecord{}, fmt.Errorf("failed to fetch plan: %w", err)
	}
	var record domain.PlanRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.PlanRecord{}, fmt.Errorf("failed to decode plan record: %w", err)
	}
	return record, nil
}

func (s *RedisStore) GetLatestByClientID(ctx context.Context, clientID string) (domain.PlanRecord, error) {
	if clientID == "" {
		return domain.PlanRecord{}, ErrNotFound
	}
	id, err := s.client.Get(ctx, clientKeyPrefix+clientID).Result()
	if errors.Is(err, redis.Nil) {
		return domain.PlanRecord{}, ErrNotFound
	}
	if err != nil {
		return domain.PlanRecord{}, fmt.Errorf("failed to fetch client plan index: %w", err)
	}
	return s.GetByID(ctx, id)
}
