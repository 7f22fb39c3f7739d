package analytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const SinkMinio = "minio"

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// objectSink archives every record as one newline terminated JSON object
// under {prefix}/{yyyy-mm-dd}/{id}.json.
type objectSink struct {
	client     objectPutter
	bucketName string
	prefix     string
	Log        *zap.Logger
}

func NewObjectSink(client *minio.Client, bucketName, prefix string, logger *zap.Logger) contracts.AnalyticsSink {
	return &objectSink{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
		Log:        logger,
	}
}

func (s *objectSink) Name() string {
	return SinkMinio
}

func (s *objectSink) Append(ctx context.Context, record *models.AnalyticsRecord) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	objectName := s.objectName(record)
	s.Log.Info("objectSink.Append called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
		zap.String(constvars.LoggingBucketNameKey, s.bucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)

	body, err := json.Marshal(record)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	body = append(body, '\n')

	_, err = s.client.PutObject(
		ctx,
		s.bucketName,
		objectName,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, s.bucketName)
	}
	return nil
}

func (s *objectSink) objectName(record *models.AnalyticsRecord) string {
	day := time.Now().UTC().Format(constvars.DateLayout)
	if ts, err := time.Parse(time.RFC3339, record.Timestamp); err == nil {
		day = ts.UTC().Format(constvars.DateLayout)
	}
	return fmt.Sprintf("%s/%s/%s.json", s.prefix, day, record.ID)
}
