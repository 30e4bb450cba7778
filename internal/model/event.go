// internal/model/event.go
package model

import "time"

// RecommendationEvent is published after every worker dispatch.
type RecommendationEvent struct {
	RequestID        string       `json:"request_id,omitempty"`
	CustomerID       string       `json:"customer_id"`
	CustType         CustomerType `json:"cust_type"`
	Outcome          Outcome      `json:"outcome"`
	WorkerStatusCode string       `json:"worker_status_code,omitempty"`
	OccurredAt       time.Time    `json:"occurred_at"`
}
