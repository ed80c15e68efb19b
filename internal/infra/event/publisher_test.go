package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	errs   []error
	calls  int
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return err
		}
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(w *fakeWriter) *KafkaOrderPublisher {
	p := newKafkaOrderPublisher(w, "orders")
	p.retryDelay = time.Millisecond
	return p
}

func TestPublishOrderPlaced(t *testing.T) {
	w := &fakeWriter{}
	p := newTestPublisher(w)

	err := p.PublishOrderPlaced(context.Background(), OrderPlacedEvent{
		OrderID:    7,
		MemberID:   3,
		GrandTotal: decimal.RequireFromString("25.50"),
		Lines:      []OrderPlacedLine{{ISBN: "A", Quantity: 2, Amount: decimal.RequireFromString("20.00")}},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	require.Equal(t, "3", string(w.msgs[0].Key))

	var got OrderPlacedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, OrderPlacedType, got.Type)
	require.EqualValues(t, 7, got.OrderID)
	require.True(t, decimal.RequireFromString("25.5").Equal(got.GrandTotal))
}

func TestPublishRetriesTemporary(t *testing.T) {
	w := &fakeWriter{errs: []error{kafka.LeaderNotAvailable, nil}}
	p := newTestPublisher(w)

	require.NoError(t, p.PublishOrderPlaced(context.Background(), OrderPlacedEvent{OrderID: 1}))
	require.Equal(t, 2, w.calls)
}

func TestPublishStopsOnFatal(t *testing.T) {
	w := &fakeWriter{errs: []error{kafka.TopicAuthorizationFailed}}
	p := newTestPublisher(w)

	err := p.PublishOrderPlaced(context.Background(), OrderPlacedEvent{OrderID: 1})
	require.Error(t, err)
	require.True(t, errors.Is(err, kafka.TopicAuthorizationFailed))
	require.Equal(t, 1, w.calls)
}

func TestPublishAfterClose(t *testing.T) {
	w := &fakeWriter{}
	p := newTestPublisher(w)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	require.True(t, w.closed)

	err := p.PublishOrderPlaced(context.Background(), OrderPlacedEvent{})
	require.ErrorIs(t, err, ErrPublisherClosed)
}
