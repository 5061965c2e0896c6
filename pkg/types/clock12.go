// Package types holds small shared value helpers for textual date/time input.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidFormat is returned for any date/time text that does not parse
var ErrInvalidFormat = errors.New("types: invalid date/time format")

const (
	dateLayout    = "2006-01-02"
	clock12Layout = "03:04 PM"
)

// ParseDateTime12 parses a calendar date ("2025-10-15") plus a 12-hour wall
// clock with AM/PM marker ("09:00 AM") into a single local instant.
// Pure function: it touches no clocks and no storage.
func ParseDateTime12(dateText, clockText string) (time.Time, error) {
	dateText = strings.TrimSpace(dateText)
	clockText = strings.ToUpper(strings.TrimSpace(clockText))

	if dateText == "" || clockText == "" {
		return time.Time{}, fmt.Errorf("%w: empty date or time", ErrInvalidFormat)
	}

	t, err := time.ParseInLocation(dateLayout+" "+clock12Layout, dateText+" "+clockText, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidFormat, dateText, clockText)
	}
	return t, nil
}

// FormatClock12 renders an instant's wall clock in the 12-hour form ("02:30 PM")
func FormatClock12(t time.Time) string {
	return t.Format(clock12Layout)
}

// FormatDate renders an instant's calendar date ("2025-10-15")
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
