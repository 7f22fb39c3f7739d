package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type messageRelay struct {
	settings  Settings
	calendar  contracts.CalendarClient
	locker    contracts.LockerService
	analytics contracts.AnalyticsPublisher
	formatter *ConfirmationFormatter
	records   *recordFactory
	now       func() time.Time
	Log       *zap.Logger
}

func NewMessageRelay(
	settings Settings,
	calendar contracts.CalendarClient,
	locker contracts.LockerService,
	analytics contracts.AnalyticsPublisher,
	now func() time.Time,
	logger *zap.Logger,
) contracts.MessageUsecase {
	return &messageRelay{
		settings:  settings,
		calendar:  calendar,
		locker:    locker,
		analytics: analytics,
		formatter: NewConfirmationFormatter(settings.Location),
		records:   newRecordFactory(now),
		now:       now,
		Log:       logger,
	}
}

// Relay appends the message to today's inbox event, creating the event when
// the day has none yet. Relays for the same day are serialised on a lock and
// the append is a conditional write on the event etag.
func (m *messageRelay) Relay(ctx context.Context, request *models.MessageRequest) *models.Outcome {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	m.Log.Info("messageRelay.Relay called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCalendarIDKey, m.settings.CalendarID),
	)

	sentAt := m.now().In(m.settings.Location)
	today := time.Date(sentAt.Year(), sentAt.Month(), sentAt.Day(), 0, 0, 0, 0, m.settings.Location)
	tomorrow := today.AddDate(0, 0, 1)
	entry := m.formatter.InboxEntry(request.SenderName, request.SenderEmail, sentAt, request.Body)

	lockKey := fmt.Sprintf(constvars.LockKeyInboxFormat, m.settings.CalendarID, today.Format(constvars.DateLayout))
	acquired, lockValue, err := m.locker.Acquire(ctx, lockKey, m.settings.LockTTL, m.settings.LockWait)
	if err != nil {
		return m.fail(requestID, models.FailedInboxSearch, constvars.ReplyInboxSearchFailed, err)
	}
	if !acquired {
		err := exceptions.ErrRedisLockWaitTimeout(errors.New("inbox lock busy"), lockKey)
		return m.fail(requestID, models.FailedInboxSearch, constvars.ReplyInboxSearchFailed, err)
	}
	defer m.release(ctx, lockKey, lockValue)

	events, err := m.calendar.ListEvents(ctx, m.settings.CalendarID, models.EventQuery{
		TimeMin:  today,
		TimeMax:  tomorrow,
		Query:    m.settings.InboxLabel,
		TimeZone: m.settings.Location.String(),
	})
	if err != nil {
		return m.fail(requestID, models.FailedInboxSearch, constvars.ReplyInboxSearchFailed, err)
	}

	var (
		event *models.CalendarEvent
		state models.OutcomeState
	)
	if len(events) > 0 {
		inbox := events[0]
		description := entry
		if inbox.Description != "" {
			description = inbox.Description + constvars.InboxEntrySeparator + entry
		}

		event, err = m.calendar.PatchEvent(ctx, m.settings.CalendarID, inbox.ID, models.EventPatch{
			Description: description,
			IfMatch:     inbox.ETag,
		})
		if err != nil {
			return m.fail(requestID, models.FailedInboxUpdate, constvars.ReplyInboxUpdateFailed, err)
		}
		state = models.OutcomeAppended
	} else {
		event, err = m.calendar.InsertEvent(ctx, m.settings.CalendarID, &models.CalendarEvent{
			Summary:     m.settings.InboxLabel,
			Description: entry,
			Start:       today,
			End:         tomorrow,
			AllDay:      true,
		})
		if err != nil {
			return m.fail(requestID, models.FailedInboxCreate, constvars.ReplyInboxCreateFailed, err)
		}
		state = models.OutcomeCreated
	}

	m.analytics.Publish(ctx, m.records.message(request))

	m.Log.Info("messageRelay.Relay succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingOutcomeStateKey, string(state)),
	)
	return &models.Outcome{
		State: state,
		Reply: m.formatter.RelayReply(request.SenderName, request.SenderEmail),
		Event: event,
	}
}

func (m *messageRelay) fail(requestID string, step models.FailedStep, reply string, err error) *models.Outcome {
	m.Log.Error("messageRelay.Relay failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFailedStepKey, string(step)),
		zap.Error(err),
	)
	return &models.Outcome{State: models.OutcomeFailed, Reply: reply, FailedStep: step, Err: err}
}

func (m *messageRelay) release(ctx context.Context, key, lockValue string) {
	if err := m.locker.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		m.Log.Warn("messageRelay.Relay error releasing inbox lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}
