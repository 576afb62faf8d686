// Package alerts computes inspection due dates and classifies equipment
// into Current, DueSoon and Overdue as of a given calendar day.
package alerts

import (
	"fmt"
	"time"

	"github.com/golang-sql/civil"

	"ppe-tracker/internal/entities"
	apperrors "ppe-tracker/pkg/errors"
)

type Status string

const (
	StatusCurrent Status = "Current"
	StatusDueSoon Status = "DueSoon"
	StatusOverdue Status = "Overdue"
)

// WarnWindowMonths is how long before the due date an item becomes DueSoon.
const WarnWindowMonths = 1

// ParseStatus accepts the exact status names used on the wire.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusCurrent, StatusDueSoon, StatusOverdue:
		return s, nil
	}
	return "", fmt.Errorf("unknown alert status %q: %w", raw, apperrors.ErrBadRequest)
}

func (s Status) String() string { return string(s) }

// Rank orders statuses from the least to the most urgent.
func (s Status) Rank() int {
	switch s {
	case StatusCurrent:
		return 0
	case StatusDueSoon:
		return 1
	case StatusOverdue:
		return 2
	}
	return -1
}

// Alert is the derived due state of one equipment item.
type Alert struct {
	Equipment          entities.Equipment
	LastInspectionDate civil.Date
	NextDueDate        civil.Date
	WarnFrom           civil.Date
	Status             Status
}

// AddMonths moves d by n calendar months (n may be negative). When the day
// does not exist in the target month it is clamped to that month's last day.
func AddMonths(d civil.Date, n int) civil.Date {
	total := int(d.Month) - 1 + n
	year := d.Year + floorDiv(total, 12)
	month := total - floorDiv(total, 12)*12 + 1

	day := d.Day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return civil.Date{Year: year, Month: time.Month(month), Day: day}
}

// Classify computes the alert for e. last is the date of the most recent
// inspection of e, nil when e was never inspected.
func Classify(e entities.Equipment, last *civil.Date, today civil.Date) (Alert, error) {
	if e.InspectionIntervalMonths < 1 {
		return Alert{}, apperrors.NewInvalidInputError(
			"inspection interval must be at least 1 month, got %d", e.InspectionIntervalMonths)
	}

	var baseline civil.Date
	switch {
	case last != nil:
		baseline = *last
	case e.CommissionDate != nil:
		baseline = *e.CommissionDate
	default:
		return Alert{}, apperrors.NewInvalidInputError(
			"no commission date and no inspection, due date cannot be derived")
	}

	nextDue := AddMonths(baseline, e.InspectionIntervalMonths)
	warnFrom := AddMonths(nextDue, -WarnWindowMonths)

	status := StatusCurrent
	switch {
	case nextDue.Before(today):
		status = StatusOverdue
	case !today.Before(warnFrom):
		status = StatusDueSoon
	}

	return Alert{
		Equipment:          e,
		LastInspectionDate: baseline,
		NextDueDate:        nextDue,
		WarnFrom:           warnFrom,
		Status:             status,
	}, nil
}

// ClassifyAll classifies every item of list in order, looking up its latest
// inspection date in latest. When filter is set only alerts with that status
// are returned. The first failing item aborts the run.
func ClassifyAll(list []entities.Equipment, latest map[uint64]civil.Date, today civil.Date, filter *Status) ([]Alert, error) {
	result := make([]Alert, 0, len(list))
	for _, e := range list {
		var last *civil.Date
		if d, ok := latest[e.ID]; ok {
			last = &d
		}

		alert, err := Classify(e, last, today)
		if err != nil {
			return nil, fmt.Errorf("equipment %d (%s): %w", e.ID, e.CustomIdentifier, err)
		}
		if filter != nil && alert.Status != *filter {
			continue
		}
		result = append(result, alert)
	}
	return result, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}
