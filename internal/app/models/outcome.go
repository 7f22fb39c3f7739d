package models

type OutcomeState string

const (
	OutcomeBooked   OutcomeState = "booked"
	OutcomeAppended OutcomeState = "appended"
	OutcomeCreated  OutcomeState = "created"
	OutcomeRejected OutcomeState = "rejected"
	OutcomeFailed   OutcomeState = "failed"
)

type RejectReason string

const (
	RejectHourOutOfRange RejectReason = "hour_out_of_range"
	RejectInvalidDate    RejectReason = "invalid_date"
	RejectNotWeekday     RejectReason = "not_weekday"
	RejectSlotConflict   RejectReason = "slot_conflict"
)

type FailedStep string

const (
	FailedAvailabilityQuery FailedStep = "availability_query"
	FailedAppointmentCreate FailedStep = "appointment_create"
	FailedInboxSearch       FailedStep = "inbox_search"
	FailedInboxUpdate       FailedStep = "inbox_update"
	FailedInboxCreate       FailedStep = "inbox_create"
)

// Outcome is the terminal state of one intent request. Rejections and
// failures are values here, not errors: every outcome carries the single reply
// sent back to the agent, and Err keeps the logged detail of a failure.
type Outcome struct {
	State        OutcomeState
	Reply        string
	RejectReason RejectReason
	FailedStep   FailedStep
	Event        *CalendarEvent
	Slot         *ResolvedSlot
	Err          error
}

func (o *Outcome) IsSuccess() bool {
	return o.State == OutcomeBooked || o.State == OutcomeAppended || o.State == OutcomeCreated
}
