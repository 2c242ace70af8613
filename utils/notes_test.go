package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingNotes(t *testing.T) {
	notes := "Client prefers morning visits.\n" +
		"Phone: +1 555 123 4567\n" +
		"Address: 12 Oak Lane, Springfield\n" +
		"Total price: $400\n" +
		"Has a friendly dog."

	fields := ParseBookingNotes(notes)
	assert.Equal(t, "+1 555 123 4567", fields.Phone)
	assert.Equal(t, "12 Oak Lane, Springfield", fields.Address)
	assert.Equal(t, "$400", fields.TotalPrice)
}

func TestParseBookingNotesMissingLines(t *testing.T) {
	fields := ParseBookingNotes("just a free-form note with no structured lines")
	assert.Equal(t, "", fields.Phone)
	assert.Equal(t, "", fields.Address)
	assert.Equal(t, "", fields.TotalPrice)
}

func TestParseBookingNotesEmpty(t *testing.T) {
	fields := ParseBookingNotes("")
	assert.Equal(t, "", fields.Phone)
	assert.Equal(t, "", fields.Address)
	assert.Equal(t, "", fields.TotalPrice)
}

func TestParseBookingNotesPrefixMustStartLine(t *testing.T) {
	// "Phone:" in the middle of a line is not the mini-format
	fields := ParseBookingNotes("Call the listed Phone: 555-0000 number")
	assert.Equal(t, "", fields.Phone)
}
