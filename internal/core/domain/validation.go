package domain

// ValidationStatus is the outcome reported by the document validation
// collaborator.
type ValidationStatus string

const (
	ValidationApprove         ValidationStatus = "APPROVE"
	ValidationReject          ValidationStatus = "REJECT"
	ValidationNeedHumanReview ValidationStatus = "NEED_HUMAN_REVIEW"
)

// ValidationResult carries the collaborator's verdict on a document.
// A failed or unparseable check is represented as NEED_HUMAN_REVIEW with zero
// confidence, never as an error that could disturb the persisted document.
type ValidationResult struct {
	Status     ValidationStatus `json:"status"`
	Reasoning  string           `json:"reasoning"`
	Confidence float64          `json:"confidence"`
}
