package analytics

import (
	"context"
	"fmt"
	"strings"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ValidateSinkNames rejects sink names this service cannot build.
func ValidateSinkNames(names []string) error {
	for _, name := range names {
		switch name {
		case SinkMongo, SinkRabbitMQ, SinkMinio:
		default:
			return fmt.Errorf(constvars.ErrDevAnalyticsSinkDisabled, name)
		}
	}
	return nil
}

// fanoutSink writes a record to every configured sink concurrently. A failing
// sink does not cancel the others; the first error is returned after all of
// them finished.
type fanoutSink struct {
	sinks []contracts.AnalyticsSink
	Log   *zap.Logger
}

func NewFanoutSink(logger *zap.Logger, sinks ...contracts.AnalyticsSink) contracts.AnalyticsSink {
	return &fanoutSink{sinks: sinks, Log: logger}
}

func (f *fanoutSink) Name() string {
	names := make([]string, 0, len(f.sinks))
	for _, sink := range f.sinks {
		names = append(names, sink.Name())
	}
	return strings.Join(names, ",")
}

func (f *fanoutSink) Append(ctx context.Context, record *models.AnalyticsRecord) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var group errgroup.Group
	for _, sink := range f.sinks {
		sink := sink
		group.Go(func() error {
			err := sink.Append(ctx, record)
			if err != nil {
				f.Log.Error("fanoutSink.Append sink failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingAnalyticsSinkKey, sink.Name()),
					zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
					zap.Error(err),
				)
			}
			return err
		})
	}
	return group.Wait()
}
