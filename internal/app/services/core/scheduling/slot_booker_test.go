package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/app/services/shared/analytics"
	"tracybot-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSlotBooker(calendar *fakeCalendar, locker *fakeLocker, publisher *fakePublisher) *slotBooker {
	return NewSlotBooker(testSettings(), calendar, locker, publisher, fixedNow, zap.NewNop()).(*slotBooker)
}

func appointmentRequest() *models.AppointmentRequest {
	return &models.AppointmentRequest{
		RequesterName: "Ana",
		DateString:    "2024-10-21",
		SlotNumber:    3,
		PhoneNumber:   "999111222",
	}
}

func TestSlotBooker_Book_EmptySlot(t *testing.T) {
	calendar := &fakeCalendar{}
	locker := &fakeLocker{}
	publisher := &fakePublisher{}
	booker := newTestSlotBooker(calendar, locker, publisher)

	outcome := booker.Book(testContext(), appointmentRequest())

	require.Equal(t, models.OutcomeBooked, outcome.State)
	assert.True(t, outcome.IsSuccess())
	assert.Equal(t,
		"Ana, tu cita ha sido creada con éxito! Para el Lunes, 21 de octubre a las 3:00 PM. Número de teléfono para gestión de cita: 999111222. ¡Te esperamos!",
		outcome.Reply,
	)

	loc := limaLocation()
	start := time.Date(2024, time.October, 21, 15, 0, 0, 0, loc)

	require.Len(t, calendar.lists, 1)
	assert.True(t, calendar.lists[0].Query.TimeMin.Equal(start))
	assert.True(t, calendar.lists[0].Query.TimeMax.Equal(start.Add(time.Hour)))
	assert.Empty(t, calendar.lists[0].Query.Query)

	assert.Equal(t, []string{"lock:slot:primary:2024-10-21T15:00:00-05:00"}, locker.refreshed)

	require.Len(t, calendar.inserts, 1)
	inserted := calendar.inserts[0]
	assert.Equal(t, "Cita con Ana - Teléfono: 999111222", inserted.Summary)
	assert.Equal(t, "Cita con Ana. Teléfono: 999111222", inserted.Description)
	assert.True(t, inserted.Start.Equal(start))
	assert.True(t, inserted.End.Equal(start.Add(time.Hour)))
	assert.Equal(t, constvars.DefaultTimezone, inserted.TimeZone)
	assert.False(t, inserted.AllDay)

	require.Len(t, publisher.records, 1)
	record := publisher.records[0]
	assert.Equal(t, constvars.IntentCreateAppointment, record.Intent)
	assert.Equal(t, "Ana", record.Person)
	assert.Equal(t, "2024-10-21", record.Date)
	assert.Equal(t, "15:00:00", record.Time)
	assert.Equal(t, "999111222", record.PhoneNumber)
	assert.Equal(t, "2024-10-19T19:05:00Z", record.Timestamp)
	assert.NotEmpty(t, record.ID)

	assert.Equal(t, []string{"lock:slot:primary:2024-10-21T15:00:00-05:00"}, locker.acquired)
	assert.Equal(t, locker.acquired, locker.released)
}

func TestSlotBooker_Book_RejectsWithoutCalendarCalls(t *testing.T) {
	tests := []struct {
		name       string
		request    *models.AppointmentRequest
		wantReason models.RejectReason
		wantReply  string
	}{
		{
			name:       "saturday",
			request:    &models.AppointmentRequest{RequesterName: "Ana", DateString: "2024-10-26", SlotNumber: 10, PhoneNumber: "1"},
			wantReason: models.RejectNotWeekday,
			wantReply:  constvars.ReplyWeekdaysOnly,
		},
		{
			name:       "sunday as timestamp",
			request:    &models.AppointmentRequest{RequesterName: "Ana", DateString: "2024-10-27T12:00:00-05:00", SlotNumber: 10, PhoneNumber: "1"},
			wantReason: models.RejectNotWeekday,
			wantReply:  constvars.ReplyWeekdaysOnly,
		},
		{
			name:       "hour out of range",
			request:    &models.AppointmentRequest{RequesterName: "Ana", DateString: "2024-10-21", SlotNumber: 7, PhoneNumber: "1"},
			wantReason: models.RejectHourOutOfRange,
			wantReply:  constvars.ReplyOutOfHours,
		},
		{
			name:       "lunch break",
			request:    &models.AppointmentRequest{RequesterName: "Ana", DateString: "2024-10-21", SlotNumber: 1, PhoneNumber: "1"},
			wantReason: models.RejectHourOutOfRange,
			wantReply:  constvars.ReplyOutsideBusinessHours,
		},
		{
			name:       "unparsable date",
			request:    &models.AppointmentRequest{RequesterName: "Ana", DateString: "el lunes", SlotNumber: 10, PhoneNumber: "1"},
			wantReason: models.RejectInvalidDate,
			wantReply:  constvars.ReplyInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calendar := &fakeCalendar{}
			locker := &fakeLocker{}
			publisher := &fakePublisher{}
			booker := newTestSlotBooker(calendar, locker, publisher)

			outcome := booker.Book(testContext(), tt.request)

			assert.Equal(t, models.OutcomeRejected, outcome.State)
			assert.Equal(t, tt.wantReason, outcome.RejectReason)
			assert.Equal(t, tt.wantReply, outcome.Reply)
			assert.Equal(t, 0, calendar.calls())
			assert.Empty(t, locker.acquired)
			assert.Empty(t, publisher.records)
		})
	}
}

func TestSlotBooker_Book_ConflictPerformsNoWrite(t *testing.T) {
	loc := limaLocation()
	calendar := &fakeCalendar{events: []models.CalendarEvent{{
		ID:      "busy",
		Summary: "Almuerzo",
		Start:   time.Date(2024, time.October, 21, 14, 30, 0, 0, loc),
		End:     time.Date(2024, time.October, 21, 15, 30, 0, 0, loc),
	}}}
	locker := &fakeLocker{}
	publisher := &fakePublisher{}
	booker := newTestSlotBooker(calendar, locker, publisher)

	outcome := booker.Book(testContext(), appointmentRequest())

	assert.Equal(t, models.OutcomeRejected, outcome.State)
	assert.Equal(t, models.RejectSlotConflict, outcome.RejectReason)
	assert.Equal(t, constvars.ReplySlotAlreadyBooked, outcome.Reply)
	assert.Len(t, calendar.lists, 1)
	assert.Empty(t, calendar.inserts)
	assert.Empty(t, publisher.records)
	assert.Len(t, locker.released, 1)
}

func TestSlotBooker_Book_SlotLockBusy(t *testing.T) {
	calendar := &fakeCalendar{}
	booker := newTestSlotBooker(calendar, &fakeLocker{busy: true}, &fakePublisher{})

	outcome := booker.Book(testContext(), appointmentRequest())

	assert.Equal(t, models.OutcomeRejected, outcome.State)
	assert.Equal(t, models.RejectSlotConflict, outcome.RejectReason)
	assert.Equal(t, 0, calendar.calls())
}

func TestSlotBooker_Book_Failures(t *testing.T) {
	t.Run("lock store unavailable", func(t *testing.T) {
		calendar := &fakeCalendar{}
		booker := newTestSlotBooker(calendar, &fakeLocker{err: errors.New("redis down")}, &fakePublisher{})

		outcome := booker.Book(testContext(), appointmentRequest())

		assert.Equal(t, models.OutcomeFailed, outcome.State)
		assert.Equal(t, models.FailedAvailabilityQuery, outcome.FailedStep)
		assert.Equal(t, constvars.ReplyAvailabilityFailed, outcome.Reply)
		assert.Equal(t, 0, calendar.calls())
	})

	t.Run("availability query", func(t *testing.T) {
		calendar := &fakeCalendar{listErr: context.DeadlineExceeded}
		publisher := &fakePublisher{}
		booker := newTestSlotBooker(calendar, &fakeLocker{}, publisher)

		outcome := booker.Book(testContext(), appointmentRequest())

		assert.Equal(t, models.OutcomeFailed, outcome.State)
		assert.Equal(t, models.FailedAvailabilityQuery, outcome.FailedStep)
		assert.Equal(t, constvars.ReplyAvailabilityFailed, outcome.Reply)
		assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
		assert.Empty(t, calendar.inserts)
		assert.Empty(t, publisher.records)
	})

	t.Run("event create", func(t *testing.T) {
		calendar := &fakeCalendar{insertErr: errors.New("quota exceeded")}
		publisher := &fakePublisher{}
		booker := newTestSlotBooker(calendar, &fakeLocker{}, publisher)

		outcome := booker.Book(testContext(), appointmentRequest())

		assert.Equal(t, models.OutcomeFailed, outcome.State)
		assert.Equal(t, models.FailedAppointmentCreate, outcome.FailedStep)
		assert.Equal(t, constvars.ReplyAppointmentFailed, outcome.Reply)
		assert.Len(t, calendar.inserts, 1)
		assert.Empty(t, publisher.records)
	})

	t.Run("slot lock expired before create", func(t *testing.T) {
		calendar := &fakeCalendar{}
		locker := &fakeLocker{refreshErr: errors.New("lock expired before refresh")}
		publisher := &fakePublisher{}
		booker := newTestSlotBooker(calendar, locker, publisher)

		outcome := booker.Book(testContext(), appointmentRequest())

		assert.Equal(t, models.OutcomeFailed, outcome.State)
		assert.Equal(t, models.FailedAppointmentCreate, outcome.FailedStep)
		assert.Equal(t, constvars.ReplyAppointmentFailed, outcome.Reply)
		assert.Len(t, calendar.lists, 1)
		assert.Empty(t, calendar.inserts)
		assert.Empty(t, publisher.records)
		assert.Len(t, locker.refreshed, 1)
	})
}

type failingSink struct{}

func (failingSink) Name() string { return "failing" }

func (failingSink) Append(ctx context.Context, record *models.AnalyticsRecord) error {
	return errors.New("analytics store unavailable")
}

func TestSlotBooker_Book_AnalyticsFailureKeepsBooking(t *testing.T) {
	calendar := &fakeCalendar{}
	dispatcher := analytics.NewDispatcher(failingSink{}, time.Second, zap.NewNop())
	booker := NewSlotBooker(testSettings(), calendar, &fakeLocker{}, dispatcher, fixedNow, zap.NewNop())

	withoutFailure := newTestSlotBooker(&fakeCalendar{}, &fakeLocker{}, &fakePublisher{}).Book(testContext(), appointmentRequest())
	outcome := booker.Book(testContext(), appointmentRequest())
	dispatcher.Drain(context.Background())

	assert.Equal(t, models.OutcomeBooked, outcome.State)
	assert.Equal(t, withoutFailure.Reply, outcome.Reply)
	assert.Len(t, calendar.inserts, 1)
}
