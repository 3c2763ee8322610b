package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"09:30xyz", 0, true},
		{"09:30:15", 0, true},
		{"late", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestBooking_Selector(t *testing.T) {
	b := &Booking{OperatingSystem: "deb12"}
	assert.Equal(t, "deb12", b.Selector())

	sub := "net"
	b.SubSystem = &sub
	assert.Equal(t, "deb12 net", b.Selector())
}

func TestBooking_StartsAt(t *testing.T) {
	b := &Booking{
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		StartMinute: 540,
	}
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), b.StartsAt())
}

func TestBooking_Window(t *testing.T) {
	b := &Booking{StartMinute: 540, DurationMinutes: 90}
	assert.Equal(t, "09:00-10:30", b.Window())
	assert.Equal(t, 630, b.EndMinute())
}

func TestConflictError_NamesWindow(t *testing.T) {
	err := &ConflictError{Existing: &Booking{
		StationID:       "s5",
		StartDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		StartMinute:     540,
		DurationMinutes: 60,
	}}
	assert.Contains(t, err.Error(), "s5")
	assert.Contains(t, err.Error(), "09:00-10:00")
	assert.Contains(t, err.Error(), "2024-03-01")
}

func TestValidationError_ListsFields(t *testing.T) {
	err := &ValidationError{Fields: []string{"station_id", "start_time"}}
	assert.Contains(t, err.Error(), "station_id")
	assert.Contains(t, err.Error(), "start_time")
}
