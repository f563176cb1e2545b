package attendance

import "errors"

// Attendance domain errors
var (
	ErrSettingsNotFound  = errors.New("attendance settings not found")
	ErrInvalidThresholds = errors.New("half-day threshold must be lower than the full-day threshold")
	ErrEndBeforeStart    = errors.New("end date must not be before start date")
)
