package attendance

import (
	"time"
)

type EventType string

const (
	EventCheckIn  EventType = "check-in"
	EventCheckOut EventType = "check-out"
)

// Event is an immutable punch fact captured by an external collaborator.
type Event struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Type      EventType
	Latitude  *float64
	Longitude *float64
}

type Status string

const (
	StatusPresent     Status = "Present"
	StatusHalfDay     Status = "Half Day"
	StatusAbsent      Status = "Absent"
	StatusHoliday     Status = "Holiday"
	StatusWeekend     Status = "Weekend"
	StatusIncomplete  Status = "Incomplete"
	StatusOnLeaveFull Status = "On Leave (Full)"
	StatusOnLeaveHalf Status = "On Leave (Half)"
)

// DailyRecord is the per-employee, per-day verdict. It is derived on demand
// from events, approved leaves, holidays and settings, never stored as a
// source of truth.
type DailyRecord struct {
	Date          time.Time
	Day           string
	CheckIn       *time.Time
	CheckOut      *time.Time
	DurationHours *float64
	Status        Status
}

// Settings holds the process-wide classification thresholds and leave
// entitlements. Changes apply to subsequent computations only; a running
// batch keeps the snapshot it started with.
type Settings struct {
	MinimumHoursFullDay   float64
	MinimumHoursHalfDay   float64
	AnnualEarnedLeaves    int
	AnnualSickLeaves      int
	MonthlyFloatingLeaves int
	EnableNotifications   bool
}

type AnomalyKind string

const (
	AnomalyMissingCheckIn   AnomalyKind = "missing_check_in"
	AnomalyNegativeDuration AnomalyKind = "negative_duration"
)

// Anomaly is a non-fatal data gap detected during classification. The day is
// still classified through the normal precedence rules; anomalies exist for
// audit logging only.
type Anomaly struct {
	UserID string
	Date   time.Time
	Kind   AnomalyKind
}
