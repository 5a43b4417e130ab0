package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nordbook/eid-gateway/internal/models"
)

type MockCheckoutGate struct {
	mock.Mock
}

func (m *MockCheckoutGate) IssueIdentityToken(completion *models.CompletionData) (string, error) {
	args := m.Called(completion)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutGate) Evaluate(ctx context.Context, personalNumber, clientIP string) (*models.CheckoutDecision, error) {
	args := m.Called(personalNumber, clientIP)
	decision, _ := args.Get(0).(*models.CheckoutDecision)
	return decision, args.Error(1)
}
