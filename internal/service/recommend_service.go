// internal/service/recommend_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/recommend-gateway/internal/errors"
	"github.com/unclebandit/recommend-gateway/internal/logging"
	"github.com/unclebandit/recommend-gateway/internal/metrics"
	"github.com/unclebandit/recommend-gateway/internal/model"
	"github.com/unclebandit/recommend-gateway/internal/queue"
	"github.com/unclebandit/recommend-gateway/internal/repository"
)

// Lookuper prepares the worker payload for a customer.
type Lookuper interface {
	Lookup(ctx context.Context, customerID string) (*model.RecommendationRequest, error)
}

// CustomerLookup loads the product code and classifies the customer.
type CustomerLookup struct {
	Repo   repository.CustomerRepositoryInterface
	Logger zerolog.Logger
}

// Lookup returns {id, product_codes, cust_type} for customerID. Every failure,
// including an unknown customer, is logged and returned as *appErrors.LookupError.
func (l *CustomerLookup) Lookup(ctx context.Context, customerID string) (*model.RecommendationRequest, error) {
	log := logging.FromContext(ctx, l.Logger)
	log.Info().Str("customer_id", customerID).Msg("Start to prepare data")

	start := time.Now()
	rec, err := l.Repo.GetProductCode(ctx, customerID)
	metrics.ObserveLookup(start, err)
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("Failed to load data from record store")
		return nil, appErrors.NewLookupError(customerID, err)
	}

	req := model.NewRecommendationRequest(*rec)
	log.Info().
		Str("customer_id", customerID).
		Str("cust_type", string(req.CustType)).
		Dur("spent", time.Since(start)).
		Msg("End preparing data")
	return &req, nil
}

// RecommendService runs lookup, then one worker call, then reports the outcome.
type RecommendService struct {
	Lookup Lookuper
	Worker Worker
	Events queue.Publisher
	Logger zerolog.Logger
	Now    func() time.Time
}

// Recommend returns an error only when the customer data could not be
// prepared. Worker faults are folded into the result's Outcome.
func (s *RecommendService) Recommend(ctx context.Context, customerID string) (*model.RecommendResult, error) {
	if customerID == "" {
		return nil, appErrors.ErrMissingCustomerID
	}

	req, err := s.Lookup.Lookup(ctx, customerID)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx, s.Logger)
	result := &model.RecommendResult{Request: *req}

	start := time.Now()
	reply, err := s.Worker.Recommend(ctx, *req)
	switch {
	case err != nil:
		log.Error().Err(err).Str("customer_id", customerID).Msg("Recommendation worker call failed")
		result.Outcome = model.OutcomeUnreachable
	case reply.Succeeded():
		result.Outcome = model.OutcomeSuccess
		result.WorkerStatusCode = reply.StatusCode
	default:
		log.Warn().
			Str("customer_id", customerID).
			Str("worker_status_code", reply.StatusCode).
			Str("worker_status", reply.Status).
			Msg("Recommendation worker rejected request")
		result.Outcome = model.OutcomeRejected
		result.WorkerStatusCode = reply.StatusCode
	}
	metrics.ObserveWorkerCall(start, result.Outcome)

	s.publish(ctx, result)
	return result, nil
}

func (s *RecommendService) publish(ctx context.Context, result *model.RecommendResult) {
	if s.Events == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	event := model.RecommendationEvent{
		RequestID:        logging.RequestIDFromContext(ctx),
		CustomerID:       result.Request.ID,
		CustType:         result.Request.CustType,
		Outcome:          result.Outcome,
		WorkerStatusCode: result.WorkerStatusCode,
		OccurredAt:       now().UTC(),
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		logging.FromContext(ctx, s.Logger).Warn().Err(err).Msg("Failed to publish recommendation event")
	}
}
