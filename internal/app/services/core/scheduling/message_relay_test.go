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

const expectedEntry = "Mensaje de Ana, ana@example.com enviado el 19 de octubre, 14:05: Necesito reprogramar"

func newTestMessageRelay(calendar *fakeCalendar, locker *fakeLocker, publisher *fakePublisher) *messageRelay {
	return NewMessageRelay(testSettings(), calendar, locker, publisher, fixedNow, zap.NewNop()).(*messageRelay)
}

func messageRequest() *models.MessageRequest {
	return &models.MessageRequest{
		SenderName:  "Ana",
		SenderEmail: "ana@example.com",
		Body:        "Necesito reprogramar",
	}
}

func TestMessageRelay_Relay_AppendsToExistingInbox(t *testing.T) {
	loc := limaLocation()
	calendar := &fakeCalendar{events: []models.CalendarEvent{
		{
			ID:          "inbox-1",
			ETag:        "\"42\"",
			Summary:     constvars.DefaultInboxLabel,
			Description: "Mensaje de Luis, luis@example.com enviado el 19 de octubre, 09:00: Hola",
			Start:       time.Date(2024, time.October, 19, 0, 0, 0, 0, loc),
			End:         time.Date(2024, time.October, 20, 0, 0, 0, 0, loc),
			AllDay:      true,
		},
		{ID: "inbox-2", Summary: constvars.DefaultInboxLabel, AllDay: true},
	}}
	locker := &fakeLocker{}
	publisher := &fakePublisher{}
	relay := newTestMessageRelay(calendar, locker, publisher)

	outcome := relay.Relay(testContext(), messageRequest())

	require.Equal(t, models.OutcomeAppended, outcome.State)
	assert.Equal(t, "Gracias, Ana. Tu mensaje ha sido enviado al supervisor. Te contactaremos a través de ana@example.com.", outcome.Reply)

	require.Len(t, calendar.lists, 1)
	query := calendar.lists[0].Query
	assert.Equal(t, constvars.DefaultInboxLabel, query.Query)
	assert.Equal(t, time.Date(2024, time.October, 19, 0, 0, 0, 0, loc), query.TimeMin)
	assert.Equal(t, time.Date(2024, time.October, 20, 0, 0, 0, 0, loc), query.TimeMax)

	require.Len(t, calendar.patches, 1)
	patch := calendar.patches[0]
	assert.Equal(t, "inbox-1", patch.EventID)
	assert.Equal(t, "\"42\"", patch.Patch.IfMatch)
	assert.Equal(t,
		"Mensaje de Luis, luis@example.com enviado el 19 de octubre, 09:00: Hola\n\n"+expectedEntry,
		patch.Patch.Description,
	)
	assert.Empty(t, calendar.inserts)

	require.Len(t, publisher.records, 1)
	assert.Equal(t, constvars.IntentLeaveMessage, publisher.records[0].Intent)
	assert.Equal(t, "ana@example.com", publisher.records[0].Email)
	assert.Equal(t, "Necesito reprogramar", publisher.records[0].Message)

	assert.Equal(t, []string{"lock:inbox:primary:2024-10-19"}, locker.acquired)
	assert.Equal(t, locker.acquired, locker.released)
}

func TestMessageRelay_Relay_EmptyInboxDescription(t *testing.T) {
	calendar := &fakeCalendar{events: []models.CalendarEvent{{ID: "inbox-1", Summary: constvars.DefaultInboxLabel, AllDay: true}}}
	relay := newTestMessageRelay(calendar, &fakeLocker{}, &fakePublisher{})

	outcome := relay.Relay(testContext(), messageRequest())

	require.Equal(t, models.OutcomeAppended, outcome.State)
	require.Len(t, calendar.patches, 1)
	assert.Equal(t, expectedEntry, calendar.patches[0].Patch.Description)
}

func TestMessageRelay_Relay_CreatesInboxOnEmptyDay(t *testing.T) {
	loc := limaLocation()
	calendar := &fakeCalendar{}
	publisher := &fakePublisher{}
	relay := newTestMessageRelay(calendar, &fakeLocker{}, publisher)

	outcome := relay.Relay(testContext(), messageRequest())

	require.Equal(t, models.OutcomeCreated, outcome.State)
	assert.Empty(t, calendar.patches)
	require.Len(t, calendar.inserts, 1)

	created := calendar.inserts[0]
	assert.True(t, created.AllDay)
	assert.Equal(t, constvars.DefaultInboxLabel, created.Summary)
	assert.Equal(t, expectedEntry, created.Description)
	assert.Equal(t, time.Date(2024, time.October, 19, 0, 0, 0, 0, loc), created.Start)
	assert.Equal(t, time.Date(2024, time.October, 20, 0, 0, 0, 0, loc), created.End)
	assert.Len(t, publisher.records, 1)
}

func TestMessageRelay_Relay_Failures(t *testing.T) {
	tests := []struct {
		name      string
		calendar  *fakeCalendar
		locker    *fakeLocker
		wantStep  models.FailedStep
		wantReply string
		wantCalls int
	}{
		{
			name:      "inbox lock not acquired",
			calendar:  &fakeCalendar{},
			locker:    &fakeLocker{busy: true},
			wantStep:  models.FailedInboxSearch,
			wantReply: constvars.ReplyInboxSearchFailed,
			wantCalls: 0,
		},
		{
			name:      "search",
			calendar:  &fakeCalendar{listErr: errors.New("unavailable")},
			locker:    &fakeLocker{},
			wantStep:  models.FailedInboxSearch,
			wantReply: constvars.ReplyInboxSearchFailed,
			wantCalls: 1,
		},
		{
			name: "update",
			calendar: &fakeCalendar{
				events:   []models.CalendarEvent{{ID: "inbox-1", ETag: "\"1\"", Description: "old"}},
				patchErr: errors.New("precondition failed"),
			},
			locker:    &fakeLocker{},
			wantStep:  models.FailedInboxUpdate,
			wantReply: constvars.ReplyInboxUpdateFailed,
			wantCalls: 2,
		},
		{
			name:      "create",
			calendar:  &fakeCalendar{insertErr: errors.New("forbidden")},
			locker:    &fakeLocker{},
			wantStep:  models.FailedInboxCreate,
			wantReply: constvars.ReplyInboxCreateFailed,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := &fakePublisher{}
			relay := newTestMessageRelay(tt.calendar, tt.locker, publisher)

			outcome := relay.Relay(testContext(), messageRequest())

			assert.Equal(t, models.OutcomeFailed, outcome.State)
			assert.Equal(t, tt.wantStep, outcome.FailedStep)
			assert.Equal(t, tt.wantReply, outcome.Reply)
			assert.Error(t, outcome.Err)
			assert.Equal(t, tt.wantCalls, tt.calendar.calls())
			assert.Empty(t, publisher.records)
		})
	}
}

func TestMessageRelay_Relay_AnalyticsFailureKeepsOutcome(t *testing.T) {
	inbox := func() []models.CalendarEvent {
		return []models.CalendarEvent{{ID: "inbox-1", ETag: "\"7\"", Summary: constvars.DefaultInboxLabel, Description: "Hola", AllDay: true}}
	}

	tests := []struct {
		name   string
		events func() []models.CalendarEvent
		state  models.OutcomeState
	}{
		{name: "append to inbox", events: inbox, state: models.OutcomeAppended},
		{name: "create inbox", events: func() []models.CalendarEvent { return nil }, state: models.OutcomeCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withoutFailure := newTestMessageRelay(&fakeCalendar{events: tt.events()}, &fakeLocker{}, &fakePublisher{}).
				Relay(testContext(), messageRequest())

			calendar := &fakeCalendar{events: tt.events()}
			dispatcher := analytics.NewDispatcher(failingSink{}, time.Second, zap.NewNop())
			relay := NewMessageRelay(testSettings(), calendar, &fakeLocker{}, dispatcher, fixedNow, zap.NewNop())

			outcome := relay.Relay(testContext(), messageRequest())
			dispatcher.Drain(context.Background())

			assert.Equal(t, tt.state, outcome.State)
			assert.Equal(t, withoutFailure.State, outcome.State)
			assert.Equal(t, withoutFailure.Reply, outcome.Reply)
			assert.Equal(t, len(calendar.patches)+len(calendar.inserts), 1)
		})
	}
}
