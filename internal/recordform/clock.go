package recordform

import (
	"time"

	"github.com/noah-isme/care-record-api/internal/models"
)

// Clock returns the current facility-local time.
type Clock func() time.Time

// SystemClock returns a Clock reading the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// CurrentShift returns the duty shift covering t, using t's own location.
// Morning is 08:00-16:00, afternoon 16:00-23:59 and night 00:00-08:00.
func CurrentShift(t time.Time) models.Shift {
	switch h := t.Hour(); {
	case h >= 8 && h < 16:
		return models.ShiftMorning
	case h >= 16:
		return models.ShiftAfternoon
	default:
		return models.ShiftNight
	}
}

// CalculateAge returns the whole years between dob and now. Unknown or future
// birth dates yield zero.
func CalculateAge(dob, now time.Time) int {
	if dob.IsZero() || now.Before(dob) {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
