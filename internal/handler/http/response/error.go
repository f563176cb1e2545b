package response

import (
	"errors"
	"net/http"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/report"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	"github.com/rosterline/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrSettingsNotFound):
		NotFound(w, "Attendance settings not found")
	case errors.Is(err, attendance.ErrInvalidThresholds):
		BadRequest(w, "Half-day threshold must be below the full-day threshold", nil)
	case errors.Is(err, attendance.ErrEndBeforeStart):
		BadRequest(w, "End date must not be before start date", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on that date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrStateConflict):
		Conflict(w, "Leave request was changed by another decision")
	case errors.Is(err, leave.ErrNotCurrentApprover):
		Forbidden(w, "Not the current approver for this request")
	case errors.Is(err, leave.ErrApproverNotFound):
		BadRequest(w, "No approver available for this request", nil)

	// User directory errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrNoRoleHolder):
		BadRequest(w, "No active user holds the required role", nil)

	// Report domain errors
	case errors.Is(err, report.ErrNoEmployeesMatched):
		NotFound(w, "No employees matched the report selection")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
