package recordform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/care-record-api/internal/models"
)

func TestCurrentShiftBoundaries(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         models.Shift
	}{
		{0, 0, models.ShiftNight},
		{7, 59, models.ShiftNight},
		{8, 0, models.ShiftMorning},
		{15, 59, models.ShiftMorning},
		{16, 0, models.ShiftAfternoon},
		{23, 59, models.ShiftAfternoon},
	}
	for _, tc := range cases {
		at := time.Date(2026, 10, 19, tc.hour, tc.minute, 0, 0, bangkok)
		assert.Equal(t, tc.want, CurrentShift(at), at.Format("15:04"))
	}
}

func TestCurrentShiftUsesClockLocation(t *testing.T) {
	utc := time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, models.ShiftNight, CurrentShift(utc))
	assert.Equal(t, models.ShiftMorning, CurrentShift(utc.In(bangkok)))
}

func TestCalculateAge(t *testing.T) {
	dob := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, CalculateAge(dob, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, CalculateAge(dob, time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, CalculateAge(dob, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, CalculateAge(dob, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, CalculateAge(time.Time{}, time.Now()))
}
