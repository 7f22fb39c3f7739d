package models

import "time"

type AppointmentRequest struct {
	RequesterName string
	DateString    string
	SlotNumber    int
	PhoneNumber   string
}

type MessageRequest struct {
	SenderName  string
	SenderEmail string
	Body        string
}

// ResolvedSlot is the concrete time range of a requested appointment in the
// business timezone. It only lives as long as the booking request.
type ResolvedSlot struct {
	Start time.Time
	End   time.Time
}

func (s ResolvedSlot) Location() *time.Location {
	return s.Start.Location()
}
