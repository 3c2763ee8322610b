package domain

import "time"

// OperatingSystem is a bootable image students can select for a station.
type OperatingSystem struct {
	ID         int64
	Code       string
	Name       string
	SubSystems []SubSystem
}

// SubSystem is an optional secondary image tied to an operating system.
type SubSystem struct {
	ID                int64
	Code              string
	Name              string
	OperatingSystemID int64
}

// ActionLogEntry is an append-only audit record. Written for observability,
// never read back by the reservation logic.
type ActionLogEntry struct {
	ID          int64
	RequesterID string
	Action      string
	StationID   string
	Timestamp   time.Time
}
