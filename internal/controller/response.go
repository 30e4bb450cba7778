// internal/controller/response.go
package controller

import (
	"net/http"

	"github.com/goccy/go-json"

	appErrors "github.com/unclebandit/recommend-gateway/internal/errors"
)

// Business status codes carried inside the envelope body.
const (
	CodeSuccess           = "200"
	CodeCustomerIDMissing = "401"
	CodeInternal          = "500"
)

const (
	MsgSuccess           = "[Success] Finish recommend process."
	MsgCustomerIDMissing = "[Error] Customer ID not specified."
	MsgInternal          = "[Error] MLaaS internal error."
)

// Envelope is the body of every response from this service.
type Envelope struct {
	Status     string `json:"status"`
	StatusCode string `json:"status_code"`
	Data       any    `json:"data,omitempty"`
}

// NewEnvelope builds an envelope. A nil data leaves the data key out.
func NewEnvelope(status, statusCode string, data any) (Envelope, error) {
	if status == "" || statusCode == "" {
		return Envelope{}, appErrors.ErrEmptyStatus
	}
	return Envelope{Status: status, StatusCode: statusCode, Data: data}, nil
}

// writeEnvelope always answers 200; the business result is in StatusCode.
func writeEnvelope(w http.ResponseWriter, env Envelope) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(env)
}

func respond(w http.ResponseWriter, status, statusCode string, data any) error {
	env, err := NewEnvelope(status, statusCode, data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	return writeEnvelope(w, env)
}
