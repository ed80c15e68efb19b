package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/segmentio/kafka-go"
)

var ErrPublisherClosed = errors.New("publisher is closed")

//go:generate mockgen -destination=../../mock/mock_publisher.go -package=mock github.com/RoyceAzure/lab/bookstore/internal/infra/event IOrderEventPublisher
type IOrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt OrderPlacedEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaOrderPublisher struct {
	writer        messageWriter
	topic         string
	retryAttempts int
	retryDelay    time.Duration
	closed        atomic.Bool
}

var _ IOrderEventPublisher = (*KafkaOrderPublisher)(nil)

func NewKafkaOrderPublisher(brokers []string, topic string) *KafkaOrderPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newKafkaOrderPublisher(writer, topic)
}

func newKafkaOrderPublisher(writer messageWriter, topic string) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{
		writer:        writer,
		topic:         topic,
		retryAttempts: 3,
		retryDelay:    200 * time.Millisecond,
	}
}

// PublishOrderPlaced 同步寫入, 只有暫時性錯誤會重試
func (p *KafkaOrderPublisher) PublishOrderPlaced(ctx context.Context, evt OrderPlacedEvent) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}

	evt.Type = OrderPlacedType
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(evt.MemberID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(OrderPlacedType)},
		},
	}

	for attempt := 0; attempt < p.retryAttempts; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("publish to %s: %w", p.topic, ctx.Err())
		}
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}
		if !isTemporary(err) {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(p.retryDelay * time.Duration(attempt+1)):
		}
	}
	return fmt.Errorf("publish to %s: %w", p.topic, err)
}

func (p *KafkaOrderPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func isTemporary(err error) bool {
	if apperr.IsConnectionError(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}
	return false
}

// NoopPublisher 未設定 KAFKA_BROKERS 時使用
type NoopPublisher struct{}

var _ IOrderEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishOrderPlaced(ctx context.Context, evt OrderPlacedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
