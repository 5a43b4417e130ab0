package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nordbook/eid-gateway/internal/mocks"
	"github.com/nordbook/eid-gateway/internal/models"
)

func TestCheckoutService_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("ApprovedProceeds", func(t *testing.T) {
		mockCredit := new(mocks.MockCreditChecker)
		mockCredit.On("PerformCreditCheck", "198501011234", "192.0.2.10").Return(&models.CreditCheckResult{
			Status:      models.CreditApproved,
			RiskScore:   742,
			CreditLimit: 25000,
		}, nil).Once()

		gate := NewCheckoutService(mockCredit, new(mocks.MockTokenGenerator))
		decision, err := gate.Evaluate(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.VerdictProceed, decision.Verdict)
		assert.Equal(t, 742.0, decision.RiskScore)
		mockCredit.AssertExpectations(t)
	})

	t.Run("RecoverableRejectionRequiresDeposit", func(t *testing.T) {
		mockCredit := new(mocks.MockCreditChecker)
		mockCredit.On("PerformCreditCheck", "198501011234", "192.0.2.10").Return(&models.CreditCheckResult{
			Status:          models.CreditRejected,
			RejectCode:      RejectPaymentRemark,
			RejectReason:    "A payment remark is registered on this identity number",
			RequiresDeposit: true,
			DepositAmount:   1500,
		}, nil).Once()

		gate := NewCheckoutService(mockCredit, new(mocks.MockTokenGenerator))
		decision, err := gate.Evaluate(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.VerdictDeposit, decision.Verdict)
		assert.Equal(t, 1500.0, decision.DepositAmount)
		assert.NotEmpty(t, decision.Reason)
	})

	t.Run("NonRecoverableRejectionBlocks", func(t *testing.T) {
		mockCredit := new(mocks.MockCreditChecker)
		mockCredit.On("PerformCreditCheck", "198501011234", "192.0.2.10").Return(&models.CreditCheckResult{
			Status:          models.CreditRejected,
			RejectCode:      RejectSecurityRisk,
			RejectReason:    "The credit check was stopped for security reasons",
			RequiresDeposit: false,
		}, nil).Once()

		gate := NewCheckoutService(mockCredit, new(mocks.MockTokenGenerator))
		decision, err := gate.Evaluate(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		assert.Equal(t, models.VerdictBlocked, decision.Verdict)
		assert.Zero(t, decision.DepositAmount)
	})

	t.Run("UnavailableDecisionBlocksForRetry", func(t *testing.T) {
		mockCredit := new(mocks.MockCreditChecker)
		mockCredit.On("PerformCreditCheck", "198501011234", "192.0.2.10").Return(&models.CreditCheckResult{
			Status: models.CreditError,
		}, nil).Once()

		gate := NewCheckoutService(mockCredit, new(mocks.MockTokenGenerator))
		decision, err := gate.Evaluate(ctx, "198501011234", "192.0.2.10")
		require.NoError(t, err)
		// Unavailable is neither approval nor rejection.
		assert.Equal(t, models.VerdictRetry, decision.Verdict)
	})

	t.Run("ValidationErrorPropagates", func(t *testing.T) {
		mockCredit := new(mocks.MockCreditChecker)
		mockCredit.On("PerformCreditCheck", "123", "192.0.2.10").Return(nil, ErrInvalidPersonalNumber).Once()

		gate := NewCheckoutService(mockCredit, new(mocks.MockTokenGenerator))
		_, err := gate.Evaluate(ctx, "123", "192.0.2.10")
		require.ErrorIs(t, err, ErrInvalidPersonalNumber)
	})
}

func TestCheckoutService_IssueIdentityToken(t *testing.T) {
	user := models.VerifiedUser{
		PersonalNumber: "198501011234",
		Name:           "Anna Andersson",
		GivenName:      "Anna",
		Surname:        "Andersson",
	}

	t.Run("Success", func(t *testing.T) {
		mockTokens := new(mocks.MockTokenGenerator)
		mockTokens.On("GenerateIdentityToken", user).Return("signed-token", nil).Once()

		gate := NewCheckoutService(new(mocks.MockCreditChecker), mockTokens)
		token, err := gate.IssueIdentityToken(&models.CompletionData{User: user})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		mockTokens.AssertExpectations(t)
	})

	t.Run("NilCompletionDataRefused", func(t *testing.T) {
		mockTokens := new(mocks.MockTokenGenerator)
		gate := NewCheckoutService(new(mocks.MockCreditChecker), mockTokens)

		_, err := gate.IssueIdentityToken(nil)
		require.Error(t, err)
		mockTokens.AssertNotCalled(t, "GenerateIdentityToken", mock.Anything)
	})

	t.Run("SigningFailurePropagates", func(t *testing.T) {
		mockTokens := new(mocks.MockTokenGenerator)
		mockTokens.On("GenerateIdentityToken", user).Return("", errors.New("no key")).Once()

		gate := NewCheckoutService(new(mocks.MockCreditChecker), mockTokens)
		_, err := gate.IssueIdentityToken(&models.CompletionData{User: user})
		require.Error(t, err)
	})
}
