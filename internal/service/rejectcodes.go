package service

// Bureau reject codes this system understands. The code set is opaque and
// provider-defined; new codes appear without notice and must degrade to the
// fallback policy rather than break the flow.
const (
	RejectPaymentRemark   = "REJECT_1"
	RejectExcessiveDebt   = "REJECT_2"
	RejectPaymentProblems = "REJECT_3"
	RejectSecurityRisk    = "REJECT_4"
	RejectUnknownIdentity = "REJECT_5"
)

// rejectPolicy maps one provider reject code to the locally derived
// business outcome: the reason shown to the booking flow and whether a
// deposit can recover the booking.
type rejectPolicy struct {
	Reason         string
	DepositAllowed bool
}

// The provider only supplies a risk signal; turning it into a business
// decision happens in this table and nowhere else, so the policy stays
// auditable and changeable without touching protocol code.
//
// Recoverable rejections (deposit offered): payment remarks, excessive
// registered debt, prior payment problems. Non-recoverable (no deposit,
// reject outright): security/fraud flags and identities the bureau cannot
// resolve at all.
var rejectPolicies = map[string]rejectPolicy{
	RejectPaymentRemark:   {Reason: "A payment remark is registered on this identity number", DepositAllowed: true},
	RejectExcessiveDebt:   {Reason: "Registered debt exceeds the accepted threshold", DepositAllowed: true},
	RejectPaymentProblems: {Reason: "Prior payment problems are on record", DepositAllowed: true},
	RejectSecurityRisk:    {Reason: "The credit check was stopped for security reasons", DepositAllowed: false},
	RejectUnknownIdentity: {Reason: "The identity number could not be found in the credit registry", DepositAllowed: false},
}

const rejectReasonFallback = "Credit check not approved"

// classifyReject resolves a reject code to its policy. Unknown codes get
// the generic reason and no deposit offer.
func classifyReject(code string) rejectPolicy {
	if policy, ok := rejectPolicies[code]; ok {
		return policy
	}
	return rejectPolicy{Reason: rejectReasonFallback}
}
