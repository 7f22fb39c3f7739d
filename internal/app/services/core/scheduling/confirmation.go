package scheduling

import (
	"fmt"
	"time"
	"tracybot-service/internal/app/models"
	"tracybot-service/internal/pkg/constvars"
	"unicode"
	"unicode/utf8"
)

var spanishWeekdays = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var spanishMonths = [...]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// ConfirmationFormatter renders replies in Spanish for the business timezone.
// It never reads the clock; callers pass every instant in.
type ConfirmationFormatter struct {
	location *time.Location
}

func NewConfirmationFormatter(location *time.Location) *ConfirmationFormatter {
	return &ConfirmationFormatter{location: location}
}

// LongDate renders "Lunes, 21 de octubre".
func (f *ConfirmationFormatter) LongDate(t time.Time) string {
	local := t.In(f.location)
	phrase := fmt.Sprintf("%s, %d de %s", spanishWeekdays[local.Weekday()], local.Day(), spanishMonths[local.Month()])
	return capitalize(phrase)
}

// Clock renders "3:00 PM".
func (f *ConfirmationFormatter) Clock(t time.Time) string {
	return t.In(f.location).Format("3:04 PM")
}

// MessageTimestamp renders "19 de octubre, 14:05".
func (f *ConfirmationFormatter) MessageTimestamp(t time.Time) string {
	local := t.In(f.location)
	return fmt.Sprintf("%d de %s, %s", local.Day(), spanishMonths[local.Month()], local.Format("15:04"))
}

func (f *ConfirmationFormatter) BookingReply(requesterName string, slot models.ResolvedSlot, phoneNumber string) string {
	return fmt.Sprintf(constvars.ReplyAppointmentBooked,
		requesterName,
		f.LongDate(slot.Start),
		f.Clock(slot.Start),
		phoneNumber,
	)
}

func (f *ConfirmationFormatter) RelayReply(senderName, senderEmail string) string {
	return fmt.Sprintf(constvars.ReplyMessageRelayed, senderName, senderEmail)
}

func (f *ConfirmationFormatter) InboxEntry(senderName, senderEmail string, sentAt time.Time, body string) string {
	return fmt.Sprintf(constvars.InboxEntryFormat, senderName, senderEmail, f.MessageTimestamp(sentAt), body)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
