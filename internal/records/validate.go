package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const (
	maxRefills  = 99
	minDuration = 5
	maxDuration = 480
)

var timeLayouts = []string{"3:04 PM", "15:04"}

// canonical matches value case-insensitively against allowed and returns the
// allowed spelling.
func canonical(field, value string, allowed ...string) (string, error) {
	value = strings.TrimSpace(value)
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, value) {
			return candidate, nil
		}
	}
	return "", invalid(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
}

func validateDate(field, value string) error {
	if _, err := time.Parse(model.DateLayout, strings.TrimSpace(value)); err != nil {
		return invalid(field, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return nil
}

func parseClock(value string) (time.Time, bool) {
	value = strings.ToUpper(strings.TrimSpace(value))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validateClock(field, value string) error {
	if _, ok := parseClock(value); !ok {
		return invalid(field, fmt.Sprintf("%s must look like 3:04 PM or 15:04", field))
	}
	return nil
}

func validateRefills(refills int) error {
	if refills < 0 || refills > maxRefills {
		return invalid("refills", fmt.Sprintf("refills must be between 0 and %d", maxRefills))
	}
	return nil
}

func validateDuration(duration int) error {
	if duration < minDuration || duration > maxDuration {
		return invalid("duration", fmt.Sprintf("duration must be between %d and %d minutes", minDuration, maxDuration))
	}
	return nil
}

func requireNonBlank(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return invalid(field, fmt.Sprintf("%s cannot be empty", field))
	}
	return nil
}

// appointmentStart combines an appointment's date and time in loc. ok is
// false when either part does not parse.
func appointmentStart(date, clock string, loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, false
	}
	tod, ok := parseClock(clock)
	if !ok {
		return day, false
	}
	return day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute), true
}
