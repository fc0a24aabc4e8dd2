package model

// VerificationOutcome is the decision produced by transaction verification.
type VerificationOutcome string

const (
	VerificationAccepted        VerificationOutcome = "accepted"
	VerificationUnmined         VerificationOutcome = "rejected_unmined"
	VerificationAddressMismatch VerificationOutcome = "rejected_address_mismatch"
	VerificationAmountMismatch  VerificationOutcome = "rejected_amount_mismatch"
	VerificationTransportError  VerificationOutcome = "rejected_transport_error"
)

// VerificationResult drives the order transition after a verification
// attempt. Consumed once, never stored.
type VerificationResult struct {
	Outcome      VerificationOutcome
	PayerAddress string
}

// Accepted reports whether the payment was verified successfully.
func (r VerificationResult) Accepted() bool {
	return r.Outcome == VerificationAccepted
}
