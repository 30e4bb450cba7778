package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unclebandit/recommend-gateway/internal/model"
)

type MockCustomerRepo struct{ mock.Mock }

func (m *MockCustomerRepo) GetProductCode(ctx context.Context, customerID string) (*model.CustomerRecord, error) {
	args := m.Called(ctx, customerID)
	rec, _ := args.Get(0).(*model.CustomerRecord)
	return rec, args.Error(1)
}

func (m *MockCustomerRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockLookup struct{ mock.Mock }

func (m *MockLookup) Lookup(ctx context.Context, customerID string) (*model.RecommendationRequest, error) {
	args := m.Called(ctx, customerID)
	req, _ := args.Get(0).(*model.RecommendationRequest)
	return req, args.Error(1)
}

type MockWorker struct{ mock.Mock }

func (m *MockWorker) Recommend(ctx context.Context, req model.RecommendationRequest) (*model.WorkerReply, error) {
	args := m.Called(ctx, req)
	reply, _ := args.Get(0).(*model.WorkerReply)
	return reply, args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event model.RecommendationEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error { return m.Called().Error(0) }
