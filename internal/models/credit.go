package models

// Credit check status values. CreditError means "decision unavailable" and
// must never be collapsed into either approval or rejection.
const (
	CreditApproved = "approved"
	CreditRejected = "rejected"
	CreditError    = "error"
)

// CreditCheckResult is one bureau answer. RejectReason, RequiresDeposit and
// DepositAmount are derived locally from RejectCode; the provider only
// supplies a risk signal, never a business decision.
type CreditCheckResult struct {
	Status          string  `json:"status"`
	RiskScore       float64 `json:"riskScore"`
	CreditLimit     float64 `json:"creditLimit"`
	RejectCode      string  `json:"rejectCode,omitempty"`
	RejectReason    string  `json:"rejectReason,omitempty"`
	RequiresDeposit bool    `json:"requiresDeposit"`
	DepositAmount   float64 `json:"depositAmount,omitempty"`
}

// Verdicts handed to the booking flow.
const (
	VerdictProceed = "proceed"
	VerdictDeposit = "deposit"
	VerdictBlocked = "blocked"
	VerdictRetry   = "retry"
)

// CheckoutDecision is the single "may proceed" answer for one checkout.
type CheckoutDecision struct {
	Verdict       string  `json:"verdict"`
	Reason        string  `json:"reason,omitempty"`
	DepositAmount float64 `json:"depositAmount,omitempty"`
	RiskScore     float64 `json:"riskScore,omitempty"`
	CreditLimit   float64 `json:"creditLimit,omitempty"`
}
