package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/recommend-gateway/internal/model"
)

type ackRecord struct {
	acked    bool
	nacked   bool
	requeued bool
}

type fakeAcker struct {
	mu   sync.Mutex
	acks map[uint64]*ackRecord
}

func newFakeAcker() *fakeAcker { return &fakeAcker{acks: map[uint64]*ackRecord{}} }

func (f *fakeAcker) record(tag uint64) *ackRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.acks[tag]
	if !ok {
		r = &ackRecord{}
		f.acks[tag] = r
	}
	return r
}

func (f *fakeAcker) Ack(tag uint64, multiple bool) error {
	f.record(tag).acked = true
	return nil
}

func (f *fakeAcker) Nack(tag uint64, multiple bool, requeue bool) error {
	r := f.record(tag)
	r.nacked = true
	r.requeued = requeue
	return nil
}

func (f *fakeAcker) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func delivery(t *testing.T, acker *fakeAcker, tag uint64, body any, redelivered bool) amqp.Delivery {
	t.Helper()
	var raw []byte
	switch b := body.(type) {
	case []byte:
		raw = b
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}
	return amqp.Delivery{
		Acknowledger: acker,
		DeliveryTag:  tag,
		Redelivered:  redelivered,
		Body:         raw,
	}
}

func TestConsumer_Handle(t *testing.T) {
	event := model.RecommendationEvent{
		RequestID:  "req-9",
		CustomerID: "2",
		CustType:   model.CustomerTypeOther,
		Outcome:    model.OutcomeRejected,
		OccurredAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	handlerErr := errors.New("sink down")

	tests := []struct {
		name        string
		body        any
		redelivered bool
		handlerErr  error
		wantCalls   int
		want        ackRecord
	}{
		{"ok", event, false, nil, 1, ackRecord{acked: true}},
		{"invalid_body", []byte("{not json"), false, nil, 0, ackRecord{acked: true}},
		{"handler_error_first_delivery", event, false, handlerErr, 1, ackRecord{nacked: true, requeued: true}},
		{"handler_error_redelivered", event, true, handlerErr, 1, ackRecord{nacked: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []model.RecommendationEvent
			c := &Consumer{
				Logger: zerolog.Nop(),
				Handler: func(_ context.Context, e model.RecommendationEvent) error {
					got = append(got, e)
					return tt.handlerErr
				},
			}
			acker := newFakeAcker()

			c.handle(context.Background(), delivery(t, acker, 7, tt.body, tt.redelivered))

			assert.Len(t, got, tt.wantCalls)
			if tt.wantCalls == 1 {
				assert.Equal(t, "req-9", got[0].RequestID)
				assert.Equal(t, model.OutcomeRejected, got[0].Outcome)
			}
			assert.Equal(t, tt.want, *acker.record(7))
		})
	}
}

func TestConsumer_ConsumeStopsOnCancel(t *testing.T) {
	c := &Consumer{Logger: zerolog.Nop(), Handler: func(context.Context, model.RecommendationEvent) error { return nil }}
	msgs := make(chan amqp.Delivery)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, c.consume(ctx, msgs))
}

func TestConsumer_ConsumeChannelClosed(t *testing.T) {
	handled := 0
	c := &Consumer{Logger: zerolog.Nop(), Handler: func(context.Context, model.RecommendationEvent) error {
		handled++
		return nil
	}}
	acker := newFakeAcker()

	msgs := make(chan amqp.Delivery, 2)
	msgs <- delivery(t, acker, 1, model.RecommendationEvent{CustomerID: "1"}, false)
	msgs <- delivery(t, acker, 2, model.RecommendationEvent{CustomerID: "2"}, false)
	close(msgs)

	err := c.consume(context.Background(), msgs)
	assert.ErrorIs(t, err, ErrDeliveriesClosed)
	assert.Equal(t, 2, handled)
	assert.True(t, acker.record(1).acked)
	assert.True(t, acker.record(2).acked)
}
