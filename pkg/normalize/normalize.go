// Package normalize canonicalizes text, dates, and times coming out of the
// two record systems so their values can be compared directly. Both systems
// render the same visit with different casing, padding, and whitespace; every
// comparison in the matching layer goes through these helpers first.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text collapses all internal whitespace (including non-breaking spaces) to
// single spaces, trims, and lower-cases. Idempotent.
func Text(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// asciiStripper decomposes accented characters and drops anything that still
// is not ASCII afterwards.
var asciiStripper = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// ASCII is Text plus a non-ASCII strip: accented letters fold to their base
// form ("José" -> "jose"), anything else non-ASCII is removed.
func ASCII(s string) string {
	stripped, _, err := transform.String(asciiStripper, s)
	if err != nil {
		return Text(s)
	}
	return Text(stripped)
}

// DateToISO converts M/D/YYYY or MM/DD/YYYY to YYYY-MM-DD with zero-padded
// month and day. Input that is not exactly three slash-separated numeric
// parts is returned unchanged: callers must treat an unchanged value as
// unparseable and compare it literally.
func DateToISO(date string) string {
	parts := strings.Split(strings.TrimSpace(date), "/")
	if len(parts) != 3 {
		return date
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return date
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return date
	}
	year := strings.TrimSpace(parts[2])
	if year == "" {
		return date
	}
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

// DateMDY strips leading zeros from the month and day of an M/D/YYYY date
// while preserving the year, for literal comparisons between systems that
// both use slash dates but pad inconsistently. Non-conforming input is
// returned unchanged.
func DateMDY(date string) string {
	parts := strings.Split(strings.TrimSpace(date), "/")
	if len(parts) != 3 {
		return date
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return date
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%d/%s", month, day, strings.TrimSpace(parts[2]))
}

// To24Hour parses "H[:MM] AM/PM" (case-insensitive, optional space before the
// meridiem) and returns zero-padded 24-hour "HH:MM". Unparseable input yields
// "00:00"; this function never fails.
func To24Hour(t string) string {
	s := strings.ToUpper(strings.TrimSpace(t))

	var meridiem string
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
	default:
		return "00:00"
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, meridiem))

	hourPart := s
	minutePart := "00"
	if i := strings.Index(s, ":"); i >= 0 {
		hourPart = s[:i]
		minutePart = s[i+1:]
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil || hour < 1 || hour > 12 {
		return "00:00"
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minutePart))
	if err != nil || minute < 0 || minute > 59 {
		return "00:00"
	}

	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
