package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/normalize"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "PT Visit", "pt visit"},
		{"collapses internal whitespace", "pt   visit", "pt visit"},
		{"trims", "  pt visit  ", "pt visit"},
		{"non-breaking space", "pt visit", "pt visit"},
		{"tabs and newlines", "pt\tvisit\n", "pt visit"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Text(tt.in))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{"PT  Visit", " ot EVAL ", "already normal", "", "  "}
	for _, in := range inputs {
		once := normalize.Text(in)
		assert.Equal(t, once, normalize.Text(once), "input %q", in)
	}
}

func TestASCII(t *testing.T) {
	assert.Equal(t, "jose garcia", normalize.ASCII("José García"))
	assert.Equal(t, "pt visit", normalize.ASCII("PT Visit"))
	assert.Equal(t, "visit", normalize.ASCII("visit™"))
}

func TestDateToISO(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unpadded", "2/3/2026", "2026-02-03"},
		{"padded", "02/03/2026", "2026-02-03"},
		{"mixed", "12/3/2026", "2026-12-03"},
		{"two parts passthrough", "2/2026", "2/2026"},
		{"already iso passthrough", "2026-02-03", "2026-02-03"},
		{"garbage passthrough", "soon", "soon"},
		{"empty passthrough", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.DateToISO(tt.in))
		})
	}
}

func TestDateMDY(t *testing.T) {
	assert.Equal(t, "2/3/2026", normalize.DateMDY("02/03/2026"))
	assert.Equal(t, "2/3/2026", normalize.DateMDY("2/3/2026"))
	assert.Equal(t, "12/13/2026", normalize.DateMDY("12/13/2026"))
	assert.Equal(t, "not a date", normalize.DateMDY("not a date"))
}

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1PM", "13:00"},
		{"12:00 AM", "00:00"},
		{"12:30 PM", "12:30"},
		{"9:05 am", "09:05"},
		{"11:59 pm", "23:59"},
		{"1 PM", "13:00"},
		{"13:00", "00:00"},   // no meridiem
		{"0:30 AM", "00:00"}, // hour out of range
		{"", "00:00"},
		{"lunchtime", "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.To24Hour(tt.in))
		})
	}
}
