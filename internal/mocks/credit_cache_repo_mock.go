package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nordbook/eid-gateway/internal/models"
)

type MockCreditCacheRepository struct {
	mock.Mock
}

func (m *MockCreditCacheRepository) Get(ctx context.Context, personalNumber string) (*models.CreditCheckResult, error) {
	args := m.Called(personalNumber)
	result, _ := args.Get(0).(*models.CreditCheckResult)
	return result, args.Error(1)
}

func (m *MockCreditCacheRepository) Store(ctx context.Context, personalNumber string, result *models.CreditCheckResult, ttl time.Duration) error {
	args := m.Called(personalNumber, result, ttl)
	return args.Error(0)
}
