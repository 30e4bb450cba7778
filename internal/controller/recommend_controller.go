// internal/controller/recommend_controller.go
package controller

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/unclebandit/recommend-gateway/internal/logging"
	"github.com/unclebandit/recommend-gateway/internal/metrics"
	"github.com/unclebandit/recommend-gateway/internal/model"
)

// Recommender is implemented by service.RecommendService.
type Recommender interface {
	Recommend(ctx context.Context, customerID string) (*model.RecommendResult, error)
}

type RecommendController struct {
	RecommendService Recommender
	Logger           zerolog.Logger
}

// RecommendByCustomerID handles POST /recommend_by_customer_id?customer_id=<id>.
//
// A lookup failure is not turned into an envelope: the client gets a bare
// 500 Internal Server Error, the same as any other unhandled server fault.
func (c *RecommendController) RecommendByCustomerID(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context(), c.Logger)

	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		metrics.RecordOutcome(model.OutcomeMissingCustomerID)
		c.respond(w, log, MsgCustomerIDMissing, CodeCustomerIDMissing)
		return
	}

	result, err := c.RecommendService.Recommend(r.Context(), customerID)
	if err != nil {
		metrics.RecordOutcome(model.OutcomeLookupFailed)
		log.Error().Err(err).Str("customer_id", customerID).Msg("recommend_by_customer_id failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	metrics.RecordOutcome(result.Outcome)
	if result.Outcome == model.OutcomeSuccess {
		c.respond(w, log, MsgSuccess, CodeSuccess)
		return
	}
	c.respond(w, log, MsgInternal, CodeInternal)
}

func (c *RecommendController) respond(w http.ResponseWriter, log *zerolog.Logger, status, code string) {
	if err := respond(w, status, code, nil); err != nil {
		log.Error().Err(err).Str("status_code", code).Msg("failed to write response")
	}
}
