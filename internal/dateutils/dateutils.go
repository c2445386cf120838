// Package dateutils provides the date parsing helpers used by the matcher
// and the import path.
package dateutils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Date layouts seen across the supported banks' exports.
const (
	LayoutISO      = "2006-01-02"
	LayoutEuropean = "02/01/2006"
	LayoutDotted   = "02.01.2006"
)

// commonLayouts is the order in which ParseDate tries layouts. ISO first:
// the store always holds ISO dates, the others only appear in raw imports.
var commonLayouts = []string{
	LayoutISO,
	LayoutEuropean,
	LayoutDotted,
	"2006/01/02",
	"02-01-2006",
}

// ParseDate parses a date string against the known layouts.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range commonLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
}

// ToISO formats a time as YYYY-MM-DD.
func ToISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// DaysBetween returns the absolute distance in calendar days between two
// dates. Time-of-day components are ignored.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Abs(a.Sub(b).Hours() / 24))
}
