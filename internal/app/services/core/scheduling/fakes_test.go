package scheduling

import (
	"context"
	"sync"
	"time"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
)

type listCall struct {
	CalendarID string
	Query      models.EventQuery
}

type patchCall struct {
	CalendarID string
	EventID    string
	Patch      models.EventPatch
}

type fakeCalendar struct {
	mu sync.Mutex

	events    []models.CalendarEvent
	listErr   error
	insertErr error
	patchErr  error

	lists   []listCall
	inserts []models.CalendarEvent
	patches []patchCall
}

func (f *fakeCalendar) ListEvents(ctx context.Context, calendarID string, query models.EventQuery) ([]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, listCall{CalendarID: calendarID, Query: query})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, calendarID string, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts = append(f.inserts, *event)
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	created := *event
	created.ID = "created-event"
	created.ETag = "\"1\""
	return &created, nil
}

func (f *fakeCalendar) PatchEvent(ctx context.Context, calendarID, eventID string, patch models.EventPatch) (*models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patchCall{CalendarID: calendarID, EventID: eventID, Patch: patch})
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	return &models.CalendarEvent{ID: eventID, Description: patch.Description, AllDay: true}, nil
}

func (f *fakeCalendar) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lists) + len(f.inserts) + len(f.patches)
}

type fakeLocker struct {
	busy       bool
	err        error
	refreshErr error
	refreshed  []string
	acquired   []string
	released   []string
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.err != nil {
		return false, "", f.err
	}
	if f.busy {
		return false, "", nil
	}
	f.acquired = append(f.acquired, key)
	return true, "lock-" + key, nil
}

func (f *fakeLocker) Acquire(ctx context.Context, key string, expiration, wait time.Duration) (bool, string, error) {
	return f.TryLock(ctx, key, expiration)
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	f.released = append(f.released, key)
	return nil
}

func (f *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	f.refreshed = append(f.refreshed, key)
	return f.refreshErr
}

type fakePublisher struct {
	records []*models.AnalyticsRecord
}

func (f *fakePublisher) Publish(ctx context.Context, record *models.AnalyticsRecord) {
	f.records = append(f.records, record)
}

var (
	limaOnce sync.Once
	lima     *time.Location
)

// limaLocation loads the zone once so every test time shares one *Location.
func limaLocation() *time.Location {
	limaOnce.Do(func() {
		loc, err := time.LoadLocation(constvars.DefaultTimezone)
		if err != nil {
			panic(err)
		}
		lima = loc
	})
	return lima
}

func testSettings() Settings {
	return Settings{
		CalendarID:          "primary",
		Location:            limaLocation(),
		InboxLabel:          constvars.DefaultInboxLabel,
		AppointmentDuration: time.Hour,
		LockTTL:             30 * time.Second,
		LockWait:            time.Second,
	}
}

// fixedNow is Saturday 19 October 2024, 14:05 in Lima.
func fixedNow() time.Time {
	return time.Date(2024, time.October, 19, 14, 5, 0, 0, limaLocation())
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "TRCY_SVC_test")
}
