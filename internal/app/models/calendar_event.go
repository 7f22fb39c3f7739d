package models

import "time"

// CalendarEvent mirrors the subset of an external calendar event this service
// reads and writes. All-day events carry midnight start/end in the business
// timezone with an exclusive end date.
type CalendarEvent struct {
	ID          string    `json:"id"`
	ETag        string    `json:"etag,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day,omitempty"`
	TimeZone    string    `json:"time_zone,omitempty"`
}

type EventQuery struct {
	TimeMin  time.Time
	TimeMax  time.Time
	Query    string
	TimeZone string
}

// EventPatch only carries the fields this service ever changes. IfMatch is the
// etag read before the patch; when set the store rejects a stale write.
type EventPatch struct {
	Description string
	IfMatch     string
}
