package scheduling

import (
	"errors"
	"tracybot-service/internal/pkg/constvars"
)

const (
	PeriodAM = "AM"
	PeriodPM = "PM"
)

var (
	ErrOutOfHours           = errors.New(constvars.ReplyOutOfHours)
	ErrOutsideBusinessHours = errors.New(constvars.ReplyOutsideBusinessHours)
)

type HourWindow struct {
	Hour24     int
	TimePeriod string
}

// InterpretHour maps the hour a caller typed into a business hour. Morning
// hours are taken as is and 1 to 5 are read as afternoon hours.
func InterpretHour(slotNumber int) (HourWindow, error) {
	var window HourWindow
	switch {
	case slotNumber >= constvars.MorningFirstHour && slotNumber <= constvars.MorningLastHour:
		window.Hour24 = slotNumber
		window.TimePeriod = PeriodAM
		if slotNumber == constvars.MorningLastHour {
			window.TimePeriod = PeriodPM
		}
	case slotNumber >= constvars.AfternoonSlotMin && slotNumber <= constvars.AfternoonSlotMax:
		window.Hour24 = slotNumber + constvars.HoursToAfternoon
		window.TimePeriod = PeriodPM
	default:
		return HourWindow{}, ErrOutOfHours
	}

	// 13 and 14 are reachable from slots 1 and 2
	if !isBusinessHour(window.Hour24) {
		return HourWindow{}, ErrOutsideBusinessHours
	}
	return window, nil
}

func isBusinessHour(hour24 int) bool {
	morning := hour24 >= constvars.MorningFirstHour && hour24 <= constvars.MorningLastHour
	afternoon := hour24 >= constvars.AfternoonFirstHour && hour24 <= constvars.AfternoonLastHour
	return morning || afternoon
}
