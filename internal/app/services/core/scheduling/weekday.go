package scheduling

import (
	"errors"
	"time"
	"tracybot-service/internal/pkg/constvars"
)

var ErrInvalidDate = errors.New(constvars.ReplyInvalidDate)

// ParseBusinessDate returns midnight of the given date in loc. It accepts a
// plain date or an RFC3339 timestamp; the latter is first converted into loc
// so the calendar day is the one seen by the business.
func ParseBusinessDate(dateString string, loc *time.Location) (time.Time, error) {
	if day, err := time.ParseInLocation(constvars.DateLayout, dateString, loc); err == nil {
		return day, nil
	}

	instant, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	local := instant.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
}

func IsWeekday(dateString string, loc *time.Location) (bool, error) {
	day, err := ParseBusinessDate(dateString, loc)
	if err != nil {
		return false, err
	}
	return isWeekday(day), nil
}

func isWeekday(day time.Time) bool {
	weekday := day.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}
