package analytics

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func sampleRecord() *models.AnalyticsRecord {
	return &models.AnalyticsRecord{
		ID:          "9f1c2d6e-0000-4000-8000-000000000001",
		Intent:      "CreateAppointment",
		Person:      "Ana",
		Date:        "2024-10-21",
		Time:        "15:00:00",
		PhoneNumber: "999111222",
		Timestamp:   "2024-10-19T19:05:00Z",
	}
}

type fakeInserter struct {
	docs []interface{}
	err  error
}

func (f *fakeInserter) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs = append(f.docs, document)
	return &mongo.InsertOneResult{}, nil
}

func TestMongoSink_Append(t *testing.T) {
	inserter := &fakeInserter{}
	sink := &mongoSink{collection: inserter, collectionName: "intent_logs", Log: zap.NewNop()}

	err := sink.Append(context.Background(), sampleRecord())
	require.NoError(t, err)
	require.Len(t, inserter.docs, 1)
	assert.Equal(t, sampleRecord(), inserter.docs[0])

	inserter.err = errors.New("write concern")
	err = sink.Append(context.Background(), sampleRecord())
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
}

type fakePublisher struct {
	published []amqp.Publishing
	keys      []string
	confirms  chan amqp.Confirmation
	ack       bool
	silent    bool
	sent      uint64
	closed    bool
	err       error
}

func newFakePublisher(ack bool) *fakePublisher {
	return &fakePublisher{confirms: make(chan amqp.Confirmation, 4), ack: ack}
}

func (f *fakePublisher) GetNextPublishSeqNo() uint64 {
	return f.sent + 1
}

func (f *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	f.published = append(f.published, msg)
	f.keys = append(f.keys, key)
	if !f.silent {
		f.confirms <- amqp.Confirmation{DeliveryTag: f.sent, Ack: f.ack}
	}
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

// newTestQueueSink hands out the publishers in order, one per opened channel.
func newTestQueueSink(publishers ...*fakePublisher) (*queueSink, *int) {
	opened := 0
	sink := &queueSink{
		open: func() (publisherChannel, <-chan amqp.Confirmation, error) {
			if opened >= len(publishers) {
				return nil, nil, errors.New("no channel left")
			}
			publisher := publishers[opened]
			opened++
			return publisher, publisher.confirms, nil
		},
		queueName: "intent_logs",
		Log:       zap.NewNop(),
	}
	return sink, &opened
}

func TestQueueSink_Append(t *testing.T) {
	publisher := newFakePublisher(true)
	sink, _ := newTestQueueSink(publisher)

	err := sink.Append(context.Background(), sampleRecord())
	require.NoError(t, err)
	require.Len(t, publisher.published, 1)

	msg := publisher.published[0]
	assert.Equal(t, "intent_logs", publisher.keys[0])
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, sampleRecord().ID, msg.MessageId)

	var decoded models.AnalyticsRecord
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "999111222", decoded.PhoneNumber)
}

func TestQueueSink_Nack(t *testing.T) {
	sink, _ := newTestQueueSink(newFakePublisher(false))

	err := sink.Append(context.Background(), sampleRecord())
	assert.Error(t, err)
}

func TestQueueSink_SkipsConfirmsOfEarlierMessages(t *testing.T) {
	publisher := newFakePublisher(false)
	publisher.sent = 1
	publisher.confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
	sink, _ := newTestQueueSink(publisher)

	err := sink.Append(context.Background(), sampleRecord())
	assert.Error(t, err)
	assert.Empty(t, publisher.confirms)
}

func TestQueueSink_TimedOutWaitDoesNotLeakIntoNextAppend(t *testing.T) {
	slow := newFakePublisher(true)
	slow.silent = true
	rejecting := newFakePublisher(false)
	sink, opened := newTestQueueSink(slow, rejecting)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := sink.Append(ctx, sampleRecord())
	require.Error(t, err)
	assert.True(t, slow.closed)

	// the broker acks the first message after its wait was abandoned
	slow.confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}

	err = sink.Append(context.Background(), sampleRecord())
	assert.Error(t, err)
	assert.Equal(t, 2, *opened)
	require.Len(t, rejecting.published, 1)
}

type fakePutter struct {
	bucket string
	object string
	body   []byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	f.bucket = bucketName
	f.object = objectName
	f.body, _ = io.ReadAll(reader)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestObjectSink_Append(t *testing.T) {
	putter := &fakePutter{}
	sink := &objectSink{client: putter, bucketName: "intent-logs", prefix: "intent_logs", Log: zap.NewNop()}

	err := sink.Append(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, "intent-logs", putter.bucket)
	assert.Equal(t, "intent_logs/2024-10-19/9f1c2d6e-0000-4000-8000-000000000001.json", putter.object)
	assert.Equal(t, byte('\n'), putter.body[len(putter.body)-1])

	putter.err = errors.New("bucket missing")
	assert.Error(t, sink.Append(context.Background(), sampleRecord()))
}

type recordingSink struct {
	name  string
	err   error
	delay time.Duration
	panic bool

	mu      sync.Mutex
	records []*models.AnalyticsRecord
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Append(ctx context.Context, record *models.AnalyticsRecord) error {
	if s.panic {
		panic("sink exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func TestFanoutSink_OneFailureDoesNotStopOthers(t *testing.T) {
	healthy := &recordingSink{name: "mongo"}
	broken := &recordingSink{name: "rabbitmq", err: errors.New("broker down")}
	fanout := NewFanoutSink(zap.NewNop(), broken, healthy)

	err := fanout.Append(context.Background(), sampleRecord())
	assert.EqualError(t, err, "broker down")
	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 1, broken.count())
	assert.Equal(t, "rabbitmq,mongo", fanout.Name())
}

func TestDispatcher_PublishDoesNotBlock(t *testing.T) {
	slow := &recordingSink{name: "mongo", delay: 50 * time.Millisecond}
	dispatcher := NewDispatcher(slow, time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	started := time.Now()
	dispatcher.Publish(ctx, sampleRecord())
	assert.Less(t, time.Since(started), 50*time.Millisecond)

	// cancelling the request context must not abort the write
	cancel()

	drainCtx, drainCancel := context.WithTimeout(context.Background(), time.Second)
	defer drainCancel()
	dispatcher.Drain(drainCtx)
	assert.Equal(t, 1, slow.count())
}

func TestDispatcher_SwallowsErrorsAndPanics(t *testing.T) {
	dispatcher := NewDispatcher(&recordingSink{name: "mongo", panic: true}, time.Second, zap.NewNop())
	assert.NotPanics(t, func() {
		dispatcher.Publish(context.Background(), sampleRecord())
		dispatcher.Drain(context.Background())
	})

	failing := &recordingSink{name: "mongo", err: errors.New("boom")}
	dispatcher = NewDispatcher(failing, time.Second, zap.NewNop())
	dispatcher.Publish(context.Background(), sampleRecord())
	dispatcher.Drain(context.Background())
	assert.Equal(t, 1, failing.count())
}

func TestDispatcher_WriteTimeout(t *testing.T) {
	stuck := &recordingSink{name: "minio", delay: time.Second}
	dispatcher := NewDispatcher(stuck, 10*time.Millisecond, zap.NewNop())

	dispatcher.Publish(context.Background(), sampleRecord())

	drainCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	dispatcher.Drain(drainCtx)
	assert.Equal(t, 0, stuck.count())
}

func TestValidateSinkNames(t *testing.T) {
	assert.NoError(t, ValidateSinkNames([]string{SinkMongo, SinkRabbitMQ, SinkMinio}))
	assert.NoError(t, ValidateSinkNames(nil))
	assert.EqualError(t, ValidateSinkNames([]string{SinkMongo, "kafka"}), "analytics sink kafka is not supported")
}
