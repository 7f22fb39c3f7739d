package analytics

import (
	"context"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const SinkMongo = "mongo"

type documentInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type mongoSink struct {
	collection     documentInserter
	collectionName string
	Log            *zap.Logger
}

func NewMongoSink(client *mongo.Client, dbName, collectionName string, logger *zap.Logger) contracts.AnalyticsSink {
	return &mongoSink{
		collection:     client.Database(dbName).Collection(collectionName),
		collectionName: collectionName,
		Log:            logger,
	}
}

func (s *mongoSink) Name() string {
	return SinkMongo
}

func (s *mongoSink) Append(ctx context.Context, record *models.AnalyticsRecord) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("mongoSink.Append called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
		zap.String(constvars.LoggingCollectionKey, s.collectionName),
	)

	_, err := s.collection.InsertOne(ctx, record)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err, s.collectionName)
	}
	return nil
}
