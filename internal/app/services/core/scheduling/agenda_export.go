package scheduling

import (
	"context"
	"errors"
	"time"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/exceptions"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

const agendaProductID = "-//tracybot-service//agenda//ES"

type agendaExporter struct {
	settings Settings
	calendar contracts.CalendarClient
	now      func() time.Time
	Log      *zap.Logger
}

func NewAgendaExporter(settings Settings, calendar contracts.CalendarClient, now func() time.Time, logger *zap.Logger) contracts.AgendaUsecase {
	return &agendaExporter{
		settings: settings,
		calendar: calendar,
		now:      now,
		Log:      logger,
	}
}

// ExportDay renders every event of one business day as an iCalendar document.
func (a *agendaExporter) ExportDay(ctx context.Context, dateString string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	a.Log.Info("agendaExporter.ExportDay called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, dateString),
	)

	day, err := ParseBusinessDate(dateString, a.settings.Location)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	events, err := a.calendar.ListEvents(ctx, a.settings.CalendarID, models.EventQuery{
		TimeMin:  day,
		TimeMax:  day.AddDate(0, 0, 1),
		TimeZone: a.settings.Location.String(),
	})
	if err != nil {
		a.Log.Error("agendaExporter.ExportDay error calling calendar.ListEvents",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(agendaProductID)
	cal.SetXWRTimezone(a.settings.Location.String())

	stamp := a.now().UTC()
	for _, each := range events {
		event := cal.AddEvent(each.ID)
		event.SetDtStampTime(stamp)
		event.SetSummary(each.Summary)
		if each.Description != "" {
			event.SetDescription(each.Description)
		}
		if each.AllDay {
			event.SetAllDayStartAt(each.Start)
			event.SetAllDayEndAt(each.End)
			continue
		}
		event.SetStartAt(each.Start)
		event.SetEndAt(each.End)
	}

	a.Log.Info("agendaExporter.ExportDay succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEventCountKey, len(events)),
	)
	return []byte(cal.Serialize()), nil
}
