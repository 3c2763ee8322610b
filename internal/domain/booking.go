package domain

import (
	"fmt"
	"time"
)

const MinutesPerDay = 24 * 60

// Booking reserves a lab station for a half-open window
// [StartMinute, StartMinute+DurationMinutes) on StartDate.
type Booking struct {
	ID              int64
	RequesterID     string
	StationID       string
	StartDate       time.Time // date only, UTC midnight
	StartMinute     int       // minutes since midnight
	DurationMinutes int
	OperatingSystem string
	SubSystem       *string // nil when no secondary image was selected
	JobID           int64
	CreatedAt       time.Time
}

func (b *Booking) EndMinute() int {
	return b.StartMinute + b.DurationMinutes
}

// StartsAt combines StartDate and StartMinute into the wall-clock moment
// the power-on job must fire.
func (b *Booking) StartsAt() time.Time {
	return b.StartDate.Add(time.Duration(b.StartMinute) * time.Minute)
}

// Selector encodes the boot image choice the scheduled job passes to the
// station: "<os> <subSystem>", or just "<os>" without a secondary image.
func (b *Booking) Selector() string {
	if b.SubSystem != nil {
		return b.OperatingSystem + " " + *b.SubSystem
	}
	return b.OperatingSystem
}

func (b *Booking) Window() string {
	return fmt.Sprintf("%s-%s", FormatClock(b.StartMinute), FormatClock(b.EndMinute()))
}

// ParseClock parses an "HH:MM" time of day into minutes since midnight.
// The whole string must match; trailing characters are rejected.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
