// Package notification publishes execution events to Kafka.
package notification

import (
	"context"
	"time"

	notificationv1 "github.com/muhammadchandra19/paper-exchange/internal/domain/notification/v1"
	"github.com/muhammadchandra19/paper-exchange/pkg/errors"
	"github.com/muhammadchandra19/paper-exchange/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// DefaultWriteTimeout bounds handing one event to the writer.
const DefaultWriteTimeout = 2 * time.Second

// Config is the producer configuration.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes one message per execution event, keyed by order id so
// events of one order stay on one partition. Delivery is asynchronous:
// broker failures are reported by the writer's completion callback, never
// to the caller.
type Publisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  logger.Interface
}

var _ notificationv1.Publisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher.
func NewPublisher(config Config, log logger.Interface) *Publisher {
	p := newPublisher(nil, config.WriteTimeout, log)
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion:   p.completed,
	}
	return p
}

func newPublisher(writer messageWriter, timeout time.Duration, log logger.Interface) *Publisher {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Publisher{
		writer:  writer,
		timeout: timeout,
		logger:  log,
	}
}

// PublishExecution hands an execution event to the writer.
func (p *Publisher) PublishExecution(ctx context.Context, event *notificationv1.ExecutionEvent) error {
	value, err := event.ToBytes()
	if err != nil {
		return errors.NewTracer("failed to encode execution event").Wrap(err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   event.Key(),
		Value: value,
		Time:  event.ExecutedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.NewTracer("failed to publish execution event").Wrap(err)
	}
	return nil
}

// completed is called by the async writer once a batch was delivered or given up.
func (p *Publisher) completed(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	orderIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		orderIDs = append(orderIDs, string(msg.Key))
	}
	p.logger.Error(errors.NewTracer("failed to deliver execution events").Wrap(err),
		logger.Field{Key: "order_ids", Value: orderIDs},
	)
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
