package planning

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Slash dates are month-first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2 2006",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01",
	"Jan 2006",
	"January 2006",
}

// ParseDate reads a calendar date from a cell, returning false when no
// known layout matches.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
