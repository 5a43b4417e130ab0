package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nordbook/eid-gateway/internal/models"
	"github.com/nordbook/eid-gateway/internal/repository"
)

type cachedDecision struct {
	result models.CreditCheckResult
	expiry time.Time
}

// MemoryCreditCacheRepository implements CreditCacheRepository in memory.
// Used when no Redis address is configured (single-instance deployments).
type MemoryCreditCacheRepository struct {
	entries map[string]cachedDecision
	mutex   sync.RWMutex
}

func NewMemoryCreditCacheRepository() repository.CreditCacheRepository {
	return &MemoryCreditCacheRepository{
		entries: make(map[string]cachedDecision),
	}
}

func (r *MemoryCreditCacheRepository) Get(ctx context.Context, personalNumber string) (*models.CreditCheckResult, error) {
	r.mutex.RLock()
	entry, exists := r.entries[personalNumber]
	r.mutex.RUnlock()

	if !exists || time.Now().After(entry.expiry) {
		if exists {
			r.mutex.Lock()
			delete(r.entries, personalNumber)
			r.mutex.Unlock()
		}
		return nil, repository.ErrCacheMiss
	}

	result := entry.result
	return &result, nil
}

func (r *MemoryCreditCacheRepository) Store(ctx context.Context, personalNumber string, result *models.CreditCheckResult, ttl time.Duration) error {
	if result == nil || personalNumber == "" || ttl <= 0 {
		return nil
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.entries[personalNumber] = cachedDecision{
		result: *result,
		expiry: time.Now().Add(ttl),
	}
	return nil
}
