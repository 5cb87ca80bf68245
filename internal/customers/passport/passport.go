// Package passport checks a passport's expiry against the holder's upcoming
// departures. Saudi entry requires six months of validity past the
// departure date.
package passport

import (
	"fmt"
	"time"

	"umroh_travel_backend/internal/shared/calendar"
)

// MinValidityMonths is the validity a passport must have left on the day of
// departure.
const MinValidityMonths = 6

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// UpcomingDeparture is a departure dated today or later that the passport
// holder is booked on.
type UpcomingDeparture struct {
	Date        time.Time
	PackageName string
}

// Violation is a departure the passport does not cover.
type Violation struct {
	DepartureDate time.Time
	PackageName   string
	MinValidDate  time.Time
	// ShortfallDays is always positive.
	ShortfallDays int
}

type Result struct {
	Severity Severity
	Message  string
	// First is the first violating departure in input order. Nil unless
	// Severity is warning.
	First              *Violation
	AdditionalAffected int
	Violations         []Violation
}

// Check classifies expiry against departures. It returns nil when there is
// nothing to check: no expiry on file or no upcoming departures. All dates
// are civil dates (UTC midnight).
func Check(expiry *time.Time, departures []UpcomingDeparture, today time.Time) *Result {
	if expiry == nil || len(departures) == 0 {
		return nil
	}

	if expiry.Before(today) {
		return &Result{
			Severity: SeverityError,
			Message:  fmt.Sprintf("Paspor sudah kedaluwarsa sejak %s.", calendar.FormatLong(*expiry)),
		}
	}

	var violations []Violation
	for _, d := range departures {
		minValid := calendar.AddMonths(d.Date, MinValidityMonths)
		if !expiry.Before(minValid) {
			continue
		}
		violations = append(violations, Violation{
			DepartureDate: d.Date,
			PackageName:   d.PackageName,
			MinValidDate:  minValid,
			ShortfallDays: calendar.DaysBetween(*expiry, minValid),
		})
	}

	if len(violations) == 0 {
		return &Result{
			Severity: SeveritySuccess,
			Message: fmt.Sprintf("Paspor berlaku minimal %d bulan untuk %d keberangkatan mendatang.",
				MinValidityMonths, len(departures)),
		}
	}

	first := violations[0]
	msg := fmt.Sprintf("Paspor harus berlaku hingga %s untuk keberangkatan %s (%s), kurang %d hari.",
		calendar.FormatLong(first.MinValidDate), first.PackageName,
		calendar.FormatLong(first.DepartureDate), first.ShortfallDays)
	if n := len(violations) - 1; n > 0 {
		msg += fmt.Sprintf(" %d keberangkatan lain juga terdampak.", n)
	}

	return &Result{
		Severity:           SeverityWarning,
		Message:            msg,
		First:              &first,
		AdditionalAffected: len(violations) - 1,
		Violations:         violations,
	}
}
