package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/repository"
)

// RedisCreditCacheRepository implements CreditCacheRepository using Redis.
type RedisCreditCacheRepository struct {
	client *redis.Client
}

func makeCreditKey(personalNumber string) string {
	return fmt.Sprintf("creditcheck:%s", personalNumber)
}

func NewRedisCreditCacheRepository(client *redis.Client) repository.CreditCacheRepository {
	return &RedisCreditCacheRepository{
		client: client,
	}
}

// Get returns the cached decision or ErrCacheMiss; expiry is handled by the
// Redis TTL.
func (r *RedisCreditCacheRepository) Get(ctx context.Context, personalNumber string) (*models.CreditCheckResult, error) {
	jsonData, err := r.client.Get(ctx, makeCreditKey(personalNumber)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET failed: %w", err)
	}

	var result models.CreditCheckResult
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	return &result, nil
}

func (r *RedisCreditCacheRepository) Store(ctx context.Context, personalNumber string, result *models.CreditCheckResult, ttl time.Duration) error {
	if result == nil || personalNumber == "" {
		return fmt.Errorf("invalid cache entry: personal number and result must be set")
	}
	if ttl <= 0 {
		return nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal credit result: %w", err)
	}

	if err := r.client.Set(ctx, makeCreditKey(personalNumber), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}
