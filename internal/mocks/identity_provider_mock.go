package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nordbook/eid-gateway/internal/models"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Initiate(ctx context.Context, personalNumber, clientIP string) (*models.AuthSession, error) {
	args := m.Called(personalNumber, clientIP)
	session, _ := args.Get(0).(*models.AuthSession)
	return session, args.Error(1)
}

func (m *MockIdentityProvider) Collect(ctx context.Context, orderRef string) (*models.AuthSession, error) {
	args := m.Called(orderRef)
	session, _ := args.Get(0).(*models.AuthSession)
	return session, args.Error(1)
}

func (m *MockIdentityProvider) Cancel(ctx context.Context, orderRef string) error {
	args := m.Called(orderRef)
	return args.Error(0)
}
