// internal/model/recommendation.go
package model

// WorkerSuccessCode is the status_code the worker returns when it finished a recommendation.
const WorkerSuccessCode = "1313"

// WorkerReply is the part of the worker's response body the gateway interprets.
type WorkerReply struct {
	StatusCode string `json:"status_code" validate:"required"`
	Status     string `json:"status"`
}

// Succeeded reports whether the worker returned the success sentinel.
func (r WorkerReply) Succeeded() bool {
	return r.StatusCode == WorkerSuccessCode
}

// Outcome is the internal result of one recommend call.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeRejected          Outcome = "rejected"    // worker answered with a non-success code
	OutcomeUnreachable       Outcome = "unreachable" // transport fault or unreadable reply
	OutcomeMissingCustomerID Outcome = "missing_customer_id"
	OutcomeLookupFailed      Outcome = "lookup_failed"
)

// RecommendResult is what the service hands back to the controller.
type RecommendResult struct {
	Request          RecommendationRequest
	Outcome          Outcome
	WorkerStatusCode string
}
