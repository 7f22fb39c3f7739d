package scheduling

import (
	"context"
	"fmt"
	"time"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type slotBooker struct {
	settings     Settings
	availability *AvailabilityChecker
	calendar     contracts.CalendarClient
	locker       contracts.LockerService
	analytics    contracts.AnalyticsPublisher
	formatter    *ConfirmationFormatter
	records      *recordFactory
	Log          *zap.Logger
}

func NewSlotBooker(
	settings Settings,
	calendar contracts.CalendarClient,
	locker contracts.LockerService,
	analytics contracts.AnalyticsPublisher,
	now func() time.Time,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &slotBooker{
		settings:     settings,
		availability: NewAvailabilityChecker(calendar, settings.Location.String(), logger),
		calendar:     calendar,
		locker:       locker,
		analytics:    analytics,
		formatter:    NewConfirmationFormatter(settings.Location),
		records:      newRecordFactory(now),
		Log:          logger,
	}
}

func (s *slotBooker) Book(ctx context.Context, request *models.AppointmentRequest) *models.Outcome {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("slotBooker.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotNumberKey, request.SlotNumber),
		zap.String(constvars.LoggingDateKey, request.DateString),
	)

	window, err := InterpretHour(request.SlotNumber)
	if err != nil {
		return s.reject(requestID, models.RejectHourOutOfRange, err.Error())
	}

	weekday, err := IsWeekday(request.DateString, s.settings.Location)
	if err != nil {
		return s.reject(requestID, models.RejectInvalidDate, constvars.ReplyInvalidDate)
	}
	if !weekday {
		return s.reject(requestID, models.RejectNotWeekday, constvars.ReplyWeekdaysOnly)
	}
	// cannot fail once IsWeekday accepted the date
	day, _ := ParseBusinessDate(request.DateString, s.settings.Location)

	slot := resolveSlot(day, window, s.settings.AppointmentDuration)
	s.Log.Info("slotBooker.Book slot resolved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingHour24Key, window.Hour24),
		zap.String(constvars.LoggingTimePeriodKey, window.TimePeriod),
		zap.Time(constvars.LoggingSlotStartKey, slot.Start),
		zap.Time(constvars.LoggingSlotEndKey, slot.End),
	)

	lockKey := fmt.Sprintf(constvars.LockKeySlotFormat, s.settings.CalendarID, slot.Start.Format(time.RFC3339))
	acquired, lockValue, err := s.locker.TryLock(ctx, lockKey, s.settings.LockTTL)
	if err != nil {
		return s.fail(requestID, models.FailedAvailabilityQuery, constvars.ReplyAvailabilityFailed, err)
	}
	if !acquired {
		// another request is booking this exact slot right now
		return s.reject(requestID, models.RejectSlotConflict, constvars.ReplySlotAlreadyBooked)
	}
	defer s.release(ctx, lockKey, lockValue)

	conflict, err := s.availability.HasConflict(ctx, s.settings.CalendarID, slot.Start, slot.End)
	if err != nil {
		return s.fail(requestID, models.FailedAvailabilityQuery, constvars.ReplyAvailabilityFailed, err)
	}
	if conflict {
		return s.reject(requestID, models.RejectSlotConflict, constvars.ReplySlotAlreadyBooked)
	}

	// the availability query may have outlived the lock TTL
	err = s.locker.Refresh(ctx, lockKey, lockValue, s.settings.LockTTL)
	if err != nil {
		return s.fail(requestID, models.FailedAppointmentCreate, constvars.ReplyAppointmentFailed, err)
	}

	created, err := s.calendar.InsertEvent(ctx, s.settings.CalendarID, &models.CalendarEvent{
		Summary:     fmt.Sprintf(constvars.AppointmentSummaryFormat, request.RequesterName, request.PhoneNumber),
		Description: fmt.Sprintf(constvars.AppointmentDescriptionFormat, request.RequesterName, request.PhoneNumber),
		Start:       slot.Start,
		End:         slot.End,
		TimeZone:    slot.Location().String(),
	})
	if err != nil {
		return s.fail(requestID, models.FailedAppointmentCreate, constvars.ReplyAppointmentFailed, err)
	}

	s.analytics.Publish(ctx, s.records.appointment(request, slot))

	s.Log.Info("slotBooker.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, created.ID),
		zap.String(constvars.LoggingOutcomeStateKey, string(models.OutcomeBooked)),
	)
	return &models.Outcome{
		State: models.OutcomeBooked,
		Reply: s.formatter.BookingReply(request.RequesterName, slot, request.PhoneNumber),
		Event: created,
		Slot:  &slot,
	}
}

func (s *slotBooker) reject(requestID string, reason models.RejectReason, reply string) *models.Outcome {
	s.Log.Info("slotBooker.Book rejected",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRejectReasonKey, string(reason)),
	)
	return &models.Outcome{State: models.OutcomeRejected, Reply: reply, RejectReason: reason}
}

func (s *slotBooker) fail(requestID string, step models.FailedStep, reply string, err error) *models.Outcome {
	s.Log.Error("slotBooker.Book failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFailedStepKey, string(step)),
		zap.Error(err),
	)
	return &models.Outcome{State: models.OutcomeFailed, Reply: reply, FailedStep: step, Err: err}
}

func (s *slotBooker) release(ctx context.Context, key, lockValue string) {
	if err := s.locker.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Warn("slotBooker.Book error releasing slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

func resolveSlot(day time.Time, window HourWindow, duration time.Duration) models.ResolvedSlot {
	start := time.Date(day.Year(), day.Month(), day.Day(), window.Hour24, 0, 0, 0, day.Location())
	return models.ResolvedSlot{Start: start, End: start.Add(duration)}
}
