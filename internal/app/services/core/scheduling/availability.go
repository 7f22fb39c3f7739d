package scheduling

import (
	"context"
	"time"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type AvailabilityChecker struct {
	calendar contracts.CalendarClient
	timeZone string
	Log      *zap.Logger
}

func NewAvailabilityChecker(calendar contracts.CalendarClient, timeZone string, logger *zap.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{
		calendar: calendar,
		timeZone: timeZone,
		Log:      logger,
	}
}

// HasConflict reports whether any event intersects [start, end). The kind or
// title of the event is not considered.
func (a *AvailabilityChecker) HasConflict(ctx context.Context, calendarID string, start, end time.Time) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	a.Log.Info("AvailabilityChecker.HasConflict called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCalendarIDKey, calendarID),
		zap.Time(constvars.LoggingSlotStartKey, start),
		zap.Time(constvars.LoggingSlotEndKey, end),
	)

	events, err := a.calendar.ListEvents(ctx, calendarID, models.EventQuery{
		TimeMin:  start,
		TimeMax:  end,
		TimeZone: a.timeZone,
	})
	if err != nil {
		a.Log.Error("AvailabilityChecker.HasConflict error calling calendar.ListEvents",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, err
	}

	a.Log.Info("AvailabilityChecker.HasConflict checked",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEventCountKey, len(events)),
	)
	return len(events) > 0, nil
}
