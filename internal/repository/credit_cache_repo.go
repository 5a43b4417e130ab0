package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nordbook/eid-gateway/internal/models"
)

var ErrCacheMiss = errors.New("credit decision not cached")

// CreditCacheRepository keeps recent bureau decisions so one booking
// session does not pay for the same identity number twice. Keys are
// normalized personal numbers.
type CreditCacheRepository interface {
	Get(ctx context.Context, personalNumber string) (*models.CreditCheckResult, error)
	Store(ctx context.Context, personalNumber string, result *models.CreditCheckResult, ttl time.Duration) error
}
