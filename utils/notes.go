// utils/notes.go
package utils

import (
	"regexp"
	"strings"
)

var (
	notesPhoneRe   = regexp.MustCompile(`(?m)^Phone:\s*(.*)$`)
	notesAddressRe = regexp.MustCompile(`(?m)^Address:\s*(.*)$`)
	notesPriceRe   = regexp.MustCompile(`(?m)^Total price:\s*(.*)$`)
)

// BookingNotesFields are the values recoverable from the legacy
// free-text notes mini-format.
type BookingNotesFields struct {
	Phone      string
	Address    string
	TotalPrice string
}

// ParseBookingNotes extracts Phone/Address/Total price lines from a
// booking's notes blob. Bookings created by the current intake endpoint
// carry these as typed columns; this parser only backfills rows written
// by the old booking form. Absent lines yield empty strings.
func ParseBookingNotes(notes string) BookingNotesFields {
	return BookingNotesFields{
		Phone:      firstMatch(notesPhoneRe, notes),
		Address:    firstMatch(notesAddressRe, notes),
		TotalPrice: firstMatch(notesPriceRe, notes),
	}
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
