package contracts

import (
	"context"
	"tracybot-service/internal/app/models"
)

// CalendarClient is the external shared calendar. Events returned by
// ListEvents are single instances (recurring events expanded).
type CalendarClient interface {
	ListEvents(ctx context.Context, calendarID string, query models.EventQuery) ([]models.CalendarEvent, error)
	InsertEvent(ctx context.Context, calendarID string, event *models.CalendarEvent) (*models.CalendarEvent, error)
	PatchEvent(ctx context.Context, calendarID, eventID string, patch models.EventPatch) (*models.CalendarEvent, error)
}
