package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	appErrors "github.com/unclebandit/recommend-gateway/internal/errors"
	"github.com/unclebandit/recommend-gateway/internal/model"
)

// RecommendPath is the worker endpoint that computes a portfolio.
const RecommendPath = "/portfolio/recommend"

// Worker is the downstream recommendation service.
type Worker interface {
	Recommend(ctx context.Context, req model.RecommendationRequest) (*model.WorkerReply, error)
}

// replyValidator is shared by every WorkerClient.
var replyValidator = validator.New()

// WorkerClient calls the worker over HTTP. One attempt per call.
// A nil HTTPClient uses http.DefaultClient.
type WorkerClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Constructor
func NewWorkerClient(baseURL string, client *http.Client) *WorkerClient {
	if client == nil {
		client = &http.Client{}
	}
	return &WorkerClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: client,
	}
}

// Recommend posts req to the worker and decodes its reply. Transport faults
// wrap ErrWorkerUnreachable; undecodable bodies or a missing status_code wrap
// ErrMalformedReply. The worker's HTTP status is not inspected, only its body.
func (c *WorkerClient) Recommend(ctx context.Context, req model.RecommendationRequest) (*model.WorkerReply, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendation request: %w", err)
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + RecommendPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", appErrors.ErrWorkerUnreachable, err)
	}
	httpReq.Header.Set("Content-type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", appErrors.ErrWorkerUnreachable, err)
	}
	defer resp.Body.Close()

	var reply model.WorkerReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("%w: decode (http %d): %w", appErrors.ErrMalformedReply, resp.StatusCode, err)
	}
	if err := replyValidator.Struct(reply); err != nil {
		return nil, fmt.Errorf("%w: %w", appErrors.ErrMalformedReply, err)
	}
	return &reply, nil
}

var _ Worker = (*WorkerClient)(nil)
