package services

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ValidateSlot checks a caller-supplied (day, from, to) slot payload:
// the day must be a weekday name and the times "HH:MM" with from < to.
func ValidateSlot(day, from, to string) error {
	if _, ok := weekdays[day]; !ok {
		return fmt.Errorf("invalid day of week: %s", day)
	}

	fromTime, err := time.Parse("15:04", from)
	if err != nil {
		return fmt.Errorf("invalid start time: %s", from)
	}
	toTime, err := time.Parse("15:04", to)
	if err != nil {
		return fmt.Errorf("invalid end time: %s", to)
	}

	if !fromTime.Before(toTime) {
		return errors.New("slot start time must be before end time")
	}
	return nil
}

// ComputeTotalAmount derives the session price from the tutor's hourly
// rate and the session duration in minutes, rounded to the cent.
func ComputeTotalAmount(hourlyRate float64, durationMinutes int) float64 {
	amount := hourlyRate * float64(durationMinutes) / 60.0
	return math.Round(amount*100) / 100
}

// AmountMatches reports whether a client-declared total agrees with the
// server-side recomputation within one cent.
func AmountMatches(declared, computed float64) bool {
	return math.Abs(declared-computed) < 0.01
}

// NextOccurrence resolves a weekly slot to its next concrete start time
// strictly after the reference instant.
func NextOccurrence(day, from string, after time.Time) (time.Time, error) {
	wd, ok := weekdays[day]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid day of week: %s", day)
	}
	start, err := time.Parse("15:04", from)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time: %s", from)
	}

	daysAhead := (int(wd) - int(after.Weekday()) + 7) % 7
	candidate := time.Date(after.Year(), after.Month(), after.Day(), start.Hour(), start.Minute(), 0, 0, after.Location()).
		AddDate(0, 0, daysAhead)
	if !candidate.After(after) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate, nil
}
