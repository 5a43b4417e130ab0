package service

import (
	"context"

	"github.com/nordbook/eid-gateway/internal/models"
)

// IdentityProvider manages the lifecycle of one e-ID session. All three
// operations are stateless request/response calls keyed by the provider's
// orderRef; concurrent sessions need no coordination.
type IdentityProvider interface {
	// Initiate starts a session. Empty personalNumber selects the
	// same-device flow. On error no session exists.
	Initiate(ctx context.Context, personalNumber, clientIP string) (*models.AuthSession, error)
	// Collect performs a single status poll. A provider-reported failure
	// is a normal return with Status failed, not an error.
	Collect(ctx context.Context, orderRef string) (*models.AuthSession, error)
	// Cancel is best-effort; it never fails locally.
	Cancel(ctx context.Context, orderRef string) error
}

// CreditChecker performs a single-shot credit risk evaluation.
type CreditChecker interface {
	PerformCreditCheck(ctx context.Context, personalNumber, clientIP string) (*models.CreditCheckResult, error)
}

// TokenGenerator mints and verifies the identity token handed to the
// booking flow after a completed authentication.
type TokenGenerator interface {
	GenerateIdentityToken(user models.VerifiedUser) (string, error)
	ValidateIdentityToken(tokenString string) (*models.VerifiedUser, error)
}

// CheckoutGate composes the authentication result with the credit decision
// into the single verdict the booking flow acts on.
type CheckoutGate interface {
	IssueIdentityToken(completion *models.CompletionData) (string, error)
	Evaluate(ctx context.Context, personalNumber, clientIP string) (*models.CheckoutDecision, error)
}
