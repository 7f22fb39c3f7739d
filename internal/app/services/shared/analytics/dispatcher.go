package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Dispatcher hands records to a sink in the background. The caller never
// waits for the write and never sees its error.
type Dispatcher struct {
	sink    contracts.AnalyticsSink
	timeout time.Duration
	wg      sync.WaitGroup
	Log     *zap.Logger
}

func NewDispatcher(sink contracts.AnalyticsSink, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sink:    sink,
		timeout: timeout,
		Log:     logger,
	}
}

func (d *Dispatcher) Publish(ctx context.Context, record *models.AnalyticsRecord) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	d.Log.Info("Dispatcher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
		zap.String(constvars.LoggingIntentKey, record.Intent),
	)

	// the write must outlive the request that triggered it
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				d.Log.Error("Dispatcher.Publish recovered from panic",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
					zap.Error(fmt.Errorf("%v", r)),
				)
			}
		}()

		err := d.sink.Append(writeCtx, record)
		if err != nil {
			d.Log.Error("Dispatcher.Publish error appending analytics record",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAnalyticsSinkKey, d.sink.Name()),
				zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
				zap.Error(err),
			)
			return
		}

		d.Log.Info("Dispatcher.Publish analytics record stored",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAnalyticsIDKey, record.ID),
		)
	}()
}

// Drain waits for in-flight writes or until ctx is done.
func (d *Dispatcher) Drain(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.Log.Info("Dispatcher.Drain all analytics writes finished")
	case <-ctx.Done():
		d.Log.Warn("Dispatcher.Drain stopped before analytics writes finished", zap.Error(ctx.Err()))
	}
}

var _ contracts.AnalyticsPublisher = (*Dispatcher)(nil)
