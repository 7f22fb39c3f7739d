package gcalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"tracybot-service/internal/app/contracts"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"tracybot-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

type calendarClient struct {
	service     *calendar.Service
	limiter     *rate.Limiter
	location    *time.Location
	callTimeout time.Duration
	Log         *zap.Logger
}

// NewCalendarClient wraps the Calendar API. Every call waits on limiter and is
// bounded by callTimeout; all-day dates are interpreted in location.
func NewCalendarClient(
	service *calendar.Service,
	limiter *rate.Limiter,
	location *time.Location,
	callTimeout time.Duration,
	logger *zap.Logger,
) contracts.CalendarClient {
	return &calendarClient{
		service:     service,
		limiter:     limiter,
		location:    location,
		callTimeout: callTimeout,
		Log:         logger,
	}
}

func (c *calendarClient) ListEvents(ctx context.Context, calendarID string, query models.EventQuery) ([]models.CalendarEvent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("calendarClient.ListEvents called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCalendarIDKey, calendarID),
		zap.Time(constvars.LoggingSlotStartKey, query.TimeMin),
		zap.Time(constvars.LoggingSlotEndKey, query.TimeMax),
	)

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrCalendarListEvents(err, calendarID)
	}

	call := c.service.Events.List(calendarID).
		TimeMin(query.TimeMin.Format(time.RFC3339)).
		TimeMax(query.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if query.Query != "" {
		call = call.Q(query.Query)
	}
	if query.TimeZone != "" {
		call = call.TimeZone(query.TimeZone)
	}

	var result []models.CalendarEvent
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			event, err := c.toModel(item)
			if err != nil {
				return err
			}
			result = append(result, *event)
		}
		return nil
	})
	if err != nil {
		c.Log.Error("calendarClient.ListEvents error listing events",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCalendarIDKey, calendarID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return nil, customErr
		}
		return nil, exceptions.ErrCalendarListEvents(err, calendarID)
	}

	c.Log.Info("calendarClient.ListEvents succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEventCountKey, len(result)),
	)
	return result, nil
}

func (c *calendarClient) InsertEvent(ctx context.Context, calendarID string, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("calendarClient.InsertEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCalendarIDKey, calendarID),
		zap.Bool("all_day", event.AllDay),
	)

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrCalendarInsertEvent(err, calendarID)
	}

	created, err := c.service.Events.Insert(calendarID, c.fromModel(event)).Context(ctx).Do()
	if err != nil {
		c.Log.Error("calendarClient.InsertEvent error inserting event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCalendarIDKey, calendarID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCalendarInsertEvent(err, calendarID)
	}

	result, err := c.toModel(created)
	if err != nil {
		return nil, err
	}

	c.Log.Info("calendarClient.InsertEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, result.ID),
	)
	return result, nil
}

func (c *calendarClient) PatchEvent(ctx context.Context, calendarID, eventID string, patch models.EventPatch) (*models.CalendarEvent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("calendarClient.PatchEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCalendarIDKey, calendarID),
		zap.String(constvars.LoggingEventIDKey, eventID),
	)

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrCalendarPatchEvent(err, eventID, calendarID)
	}

	// only the description is sent, every other field is left untouched
	body := &calendar.Event{Description: patch.Description}
	call := c.service.Events.Patch(calendarID, eventID, body).Context(ctx)
	if patch.IfMatch != "" {
		call.Header().Set(constvars.HeaderIfMatch, patch.IfMatch)
	}

	updated, err := call.Do()
	if err != nil {
		c.Log.Error("calendarClient.PatchEvent error patching event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventIDKey, eventID),
			zap.Error(err),
		)
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return nil, exceptions.ErrCalendarPreconditionFailed(err, eventID)
		}
		return nil, exceptions.ErrCalendarPatchEvent(err, eventID, calendarID)
	}

	result, err := c.toModel(updated)
	if err != nil {
		return nil, err
	}

	c.Log.Info("calendarClient.PatchEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, result.ID),
	)
	return result, nil
}

func (c *calendarClient) fromModel(event *models.CalendarEvent) *calendar.Event {
	out := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
	}
	if event.AllDay {
		out.Start = &calendar.EventDateTime{Date: event.Start.Format(constvars.DateLayout)}
		out.End = &calendar.EventDateTime{Date: event.End.Format(constvars.DateLayout)}
		return out
	}

	timeZone := event.TimeZone
	if timeZone == "" {
		timeZone = c.location.String()
	}
	out.Start = &calendar.EventDateTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: timeZone}
	out.End = &calendar.EventDateTime{DateTime: event.End.Format(time.RFC3339), TimeZone: timeZone}
	return out
}

func (c *calendarClient) toModel(event *calendar.Event) (*models.CalendarEvent, error) {
	start, allDay, err := c.parseEventTime(event.Start)
	if err != nil {
		return nil, exceptions.ErrCalendarInvalidEventTime(err, "start", event.Id)
	}
	end, _, err := c.parseEventTime(event.End)
	if err != nil {
		return nil, exceptions.ErrCalendarInvalidEventTime(err, "end", event.Id)
	}

	result := &models.CalendarEvent{
		ID:          event.Id,
		ETag:        event.Etag,
		Summary:     event.Summary,
		Description: event.Description,
		Start:       start,
		End:         end,
		AllDay:      allDay,
	}
	if event.Start != nil {
		result.TimeZone = event.Start.TimeZone
	}
	return result, nil
}

func (c *calendarClient) parseEventTime(value *calendar.EventDateTime) (time.Time, bool, error) {
	if value == nil {
		return time.Time{}, false, errors.New("missing event time")
	}
	if value.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, value.DateTime)
		if err != nil {
			return time.Time{}, false, err
		}
		return parsed.In(c.location), false, nil
	}
	if value.Date != "" {
		parsed, err := time.ParseInLocation(constvars.DateLayout, value.Date, c.location)
		if err != nil {
			return time.Time{}, false, err
		}
		return parsed, true, nil
	}
	return time.Time{}, false, fmt.Errorf("event time has neither date nor dateTime")
}
