package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/nordbook/eid-gateway/internal/models"
)

type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) GenerateIdentityToken(user models.VerifiedUser) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenGenerator) ValidateIdentityToken(tokenString string) (*models.VerifiedUser, error) {
	args := m.Called(tokenString)
	user, _ := args.Get(0).(*models.VerifiedUser)
	return user, args.Error(1)
}
