package scheduling

import (
	"time"
	"tracybot-service/internal/app/config"
	"tracybot-service/internal/pkg/constvars"
)

// Settings is the static scheduling configuration shared by the usecases.
type Settings struct {
	CalendarID          string
	Location            *time.Location
	InboxLabel          string
	AppointmentDuration time.Duration
	LockTTL             time.Duration
	LockWait            time.Duration
}

func NewSettings(internalConfig *config.InternalConfig) (Settings, error) {
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		return Settings{}, err
	}

	inboxLabel := internalConfig.Calendar.InboxLabel
	if inboxLabel == "" {
		inboxLabel = constvars.DefaultInboxLabel
	}

	return Settings{
		CalendarID:          internalConfig.Calendar.CalendarID,
		Location:            location,
		InboxLabel:          inboxLabel,
		AppointmentDuration: time.Duration(internalConfig.Scheduling.AppointmentDurationInMinutes) * time.Minute,
		LockTTL:             time.Duration(internalConfig.Scheduling.LockTTLInSeconds) * time.Second,
		LockWait:            time.Duration(internalConfig.Scheduling.LockWaitTimeoutInSeconds) * time.Second,
	}, nil
}
