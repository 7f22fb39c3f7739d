package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const SinkRabbitMQ = "rabbitmq"

type publisherChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	GetNextPublishSeqNo() uint64
	Close() error
}

type channelOpener func() (publisherChannel, <-chan amqp.Confirmation, error)

// queueSink publishes each record as a persistent message and waits for the
// broker confirm matching its delivery tag. Publishing is serialised; a wait
// that is abandoned discards the channel so its late confirms are never read.
type queueSink struct {
	open      channelOpener
	ch        publisherChannel
	confirms  <-chan amqp.Confirmation
	queueName string
	mu        sync.Mutex
	Log       *zap.Logger
}

// NewQueueSink opens a dedicated channel, declares the durable queue and turns
// on publisher confirms.
func NewQueueSink(conn *amqp.Connection, queueName string, logger *zap.Logger) (contracts.AnalyticsSink, error) {
	open := func() (publisherChannel, <-chan amqp.Confirmation, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, nil, err
		}

		_, err = ch.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			nil,       // args
		)
		if err != nil {
			_ = ch.Close()
			return nil, nil, err
		}

		if err := ch.Confirm(false); err != nil {
			_ = ch.Close()
			return nil, nil, err
		}
		return ch, ch.NotifyPublish(make(chan amqp.Confirmation, 1)), nil
	}

	sink := &queueSink{open: open, queueName: queueName, Log: logger}
	if err := sink.reopen(); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *queueSink) Name() string {
	return SinkRabbitMQ
}

func (s *queueSink) Append(ctx context.Context, record *models.AnalyticsRecord) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("queueSink.Append called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
	)

	body, err := json.Marshal(record)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil {
		if err := s.reopen(); err != nil {
			return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
		}
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    record.ID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	seqNo := s.ch.GetNextPublishSeqNo()
	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		s.discard(requestID, err)
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	for {
		select {
		case confirmed, ok := <-s.confirms:
			if !ok {
				err := errors.New("confirm channel closed")
				s.discard(requestID, err)
				return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
			}
			if confirmed.DeliveryTag < seqNo {
				// confirm for a message published before this one
				continue
			}
			if confirmed.DeliveryTag > seqNo {
				err := fmt.Errorf("confirm for tag %d skipped tag %d", confirmed.DeliveryTag, seqNo)
				s.discard(requestID, err)
				return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
			}
			if !confirmed.Ack {
				return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf(constvars.ErrDevRabbitMQNotConfirmed, s.queueName), s.queueName)
			}
			return nil
		case <-ctx.Done():
			s.discard(requestID, ctx.Err())
			return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queueName)
		}
	}
}

func (s *queueSink) reopen() error {
	ch, confirms, err := s.open()
	if err != nil {
		return err
	}
	s.ch = ch
	s.confirms = confirms
	return nil
}

// discard drops the current channel; the next Append opens a fresh one.
func (s *queueSink) discard(requestID string, cause error) {
	s.Log.Warn("queueSink.Append discarding channel",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
		zap.Error(cause),
	)
	if s.ch != nil {
		_ = s.ch.Close()
	}
	s.ch = nil
	s.confirms = nil
}
