package contracts

import (
	"context"
	"tracybot-service/internal/app/models"
)

type AnalyticsSink interface {
	Name() string
	Append(ctx context.Context, record *models.AnalyticsRecord) error
}

// AnalyticsPublisher hands a record off without waiting for the write.
type AnalyticsPublisher interface {
	Publish(ctx context.Context, record *models.AnalyticsRecord)
}
