package calendar

import (
	"context"
	"tracybot-service/internal/app/config"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// NewGoogleCalendar builds the Calendar API service authenticated with the
// configured service account. The service account must be shared on the
// target calendar with "make changes to events" permission.
func NewGoogleCalendar(ctx context.Context, driverConfig *config.DriverConfig, log *zap.Logger) *calendar.Service {
	opts := []option.ClientOption{
		option.WithCredentialsFile(driverConfig.GoogleCalendar.CredentialsFile),
		option.WithScopes(calendar.CalendarScope),
	}
	if driverConfig.GoogleCalendar.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(driverConfig.GoogleCalendar.Endpoint))
	}

	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		log.Fatal("Failed to initialize Google Calendar service", zap.Error(err))
	}

	log.Info("Successfully initialized Google Calendar service")
	return service
}
