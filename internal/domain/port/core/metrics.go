package core

// Outcome labels shared by domain operations
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeReplayed = "replayed"
	OutcomeError    = "error"
)

// Metrics records the outcome of domain operations
type Metrics interface {
	// Record counts one occurrence of operation ending with outcome
	Record(operation, outcome string)
}
