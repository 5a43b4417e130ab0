package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/nordbook/eid-gateway/internal/models"
)

var _ CheckoutGate = (*CheckoutService)(nil)

// CheckoutService is the collaborator-facing gate: it turns a completed
// authentication plus a credit decision into the single verdict the
// booking flow acts on.
type CheckoutService struct {
	credit CreditChecker
	tokens TokenGenerator
}

func NewCheckoutService(credit CreditChecker, tokens TokenGenerator) *CheckoutService {
	return &CheckoutService{credit: credit, tokens: tokens}
}

// IssueIdentityToken mints the token the booking flow presents back when
// asking for a credit decision. Only completion data from a session the
// provider reported complete may be passed in.
func (s *CheckoutService) IssueIdentityToken(completion *models.CompletionData) (string, error) {
	if completion == nil {
		return "", errors.New("cannot issue identity token without completion data")
	}
	return s.tokens.GenerateIdentityToken(completion.User)
}

// Evaluate runs the credit check and maps it to a verdict:
// approved -> proceed, recoverable rejection -> deposit, non-recoverable
// rejection -> blocked, decision unavailable -> retry. An unavailable
// decision blocks the flow; it is never read as approval or rejection.
func (s *CheckoutService) Evaluate(ctx context.Context, personalNumber, clientIP string) (*models.CheckoutDecision, error) {
	result, err := s.credit.PerformCreditCheck(ctx, personalNumber, clientIP)
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case models.CreditApproved:
		return &models.CheckoutDecision{
			Verdict:     models.VerdictProceed,
			RiskScore:   result.RiskScore,
			CreditLimit: result.CreditLimit,
		}, nil
	case models.CreditRejected:
		if result.RequiresDeposit {
			return &models.CheckoutDecision{
				Verdict:       models.VerdictDeposit,
				Reason:        result.RejectReason,
				DepositAmount: result.DepositAmount,
				RiskScore:     result.RiskScore,
				CreditLimit:   result.CreditLimit,
			}, nil
		}
		return &models.CheckoutDecision{
			Verdict: models.VerdictBlocked,
			Reason:  result.RejectReason,
		}, nil
	default:
		log.Warn().Msg("credit decision unavailable, holding checkout for retry")
		return &models.CheckoutDecision{
			Verdict: models.VerdictRetry,
			Reason:  "Credit decision is temporarily unavailable. Please try again.",
		}, nil
	}
}
