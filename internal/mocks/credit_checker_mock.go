package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nordbook/eid-gateway/internal/models"
)

type MockCreditChecker struct {
	mock.Mock
}

func (m *MockCreditChecker) PerformCreditCheck(ctx context.Context, personalNumber, clientIP string) (*models.CreditCheckResult, error) {
	args := m.Called(personalNumber, clientIP)
	result, _ := args.Get(0).(*models.CreditCheckResult)
	return result, args.Error(1)
}
