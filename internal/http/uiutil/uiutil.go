// Package uiutil provides formatting helpers shared by UI handlers and
// templates.
package uiutil

import (
	"strconv"
	"strings"
	"time"
)

const (
	// FriendlyDateTimeLayout renders timestamps the way the dashboard
	// displays them.
	FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"
	// FriendlyDateLayout renders date-only values such as join and
	// service dates.
	FriendlyDateLayout = "Jan 2, 2006"
)

// FormatFriendlyDateTime returns a consistent, user-friendly local timestamp representation.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FormatFriendlyDate returns a date-only representation, empty for zero times.
func FormatFriendlyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateLayout)
}

// FormatNumber renders an integer with comma thousands separators, the
// way the dashboard localizes mileage figures.
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
