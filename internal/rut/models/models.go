package models

// Outcome classifies a validation result.
type Outcome string

const (
	OutcomeValid     Outcome = "valid"
	OutcomeMismatch  Outcome = "mismatch"
	OutcomeMalformed Outcome = "malformed"
)

// Inspection is the full breakdown of one validated input.
// Body, VerificationDigit, ExpectedDigit and Formatted are empty when the
// input is too malformed to produce them.
type Inspection struct {
	Input             string
	Clean             string
	Body              string
	VerificationDigit string
	ExpectedDigit     string
	Formatted         string
	Valid             bool
	Outcome           Outcome
	Reason            string
}

// BatchResult holds one Inspection per distinct input, in input order.
type BatchResult struct {
	Results      []Inspection
	ValidCount   int
	InvalidCount int
}
