package scheduling

import (
	"time"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

type recordFactory struct {
	now   func() time.Time
	newID func() string
}

func newRecordFactory(now func() time.Time) *recordFactory {
	return &recordFactory{now: now, newID: uuid.NewString}
}

func (f *recordFactory) appointment(request *models.AppointmentRequest, slot models.ResolvedSlot) *models.AnalyticsRecord {
	return &models.AnalyticsRecord{
		ID:          f.newID(),
		Intent:      constvars.IntentCreateAppointment,
		Person:      request.RequesterName,
		Date:        slot.Start.Format(constvars.DateLayout),
		Time:        slot.Start.Format(constvars.TimeLayout),
		PhoneNumber: request.PhoneNumber,
		Timestamp:   f.now().UTC().Format(time.RFC3339),
	}
}

func (f *recordFactory) message(request *models.MessageRequest) *models.AnalyticsRecord {
	return &models.AnalyticsRecord{
		ID:        f.newID(),
		Intent:    constvars.IntentLeaveMessage,
		Person:    request.SenderName,
		Email:     request.SenderEmail,
		Message:   request.Body,
		Timestamp: f.now().UTC().Format(time.RFC3339),
	}
}
