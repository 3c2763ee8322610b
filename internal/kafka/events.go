package kafka

import "time"

// Event types emitted by the reservation service and the power endpoint.
const (
	EventReservationCreated     = "reservation_created"
	EventReservationCancelled   = "reservation_cancelled"
	EventReconciliationRequired = "reconciliation_required"
	EventPowerAction            = "power_action"
)

// ReservationEvent describes a booking lifecycle transition. The worker
// persists these as audit log rows.
type ReservationEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	BookingID   int64     `json:"booking_id"`
	RequesterID string    `json:"requester_id"`
	StationID   string    `json:"station_id"`
	StartDate   string    `json:"start_date"`
	StartTime   string    `json:"start_time"`
	Duration    int       `json:"duration_minutes"`
	JobID       int64     `json:"job_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ActionEvent is an out-of-band power action issued against a station.
type ActionEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	RequesterID string    `json:"requester_id"`
	Action      string    `json:"action"`
	StationID   string    `json:"station_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
