package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

// Layouts accepted for dates coming from spreadsheets.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"01-02-06",
	"1/2/2006",
	"1/2/06",
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}

// ParseDateFlexible parses an ISO date or one of the common spreadsheet layouts.
func ParseDateFlexible(raw string) (civil.Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return civil.Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("unrecognised date %q", raw)
}

// FormatDatePtr renders an optional date, empty when nil.
func FormatDatePtr(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
