package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeEarned   LeaveType = "Earned"
	LeaveTypeSick     LeaveType = "Sick"
	LeaveTypeFloating LeaveType = "Floating"
)

type DayOption string

const (
	DayOptionFull DayOption = "full"
	DayOptionHalf DayOption = "half"
)

type RequestStatus string

const (
	StatusPendingManagerApproval RequestStatus = "pending_manager_approval"
	StatusPendingHRConfirmation  RequestStatus = "pending_hr_confirmation"
	StatusApproved               RequestStatus = "approved"
	StatusRejected               RequestStatus = "rejected"
)

type ApprovalStage string

const (
	StageManagerApproval   ApprovalStage = "manager_approval"
	StageFinalConfirmation ApprovalStage = "final_confirmation"
)

type ApprovalAction string

const (
	ActionApproved ApprovalAction = "approved"
	ActionRejected ApprovalAction = "rejected"
)

// ApprovalRecord is one append-only entry in a request's approval history.
type ApprovalRecord struct {
	ID         string
	RequestID  string
	ApproverID string
	Stage      ApprovalStage
	Action     ApprovalAction
	Note       *string
	DecidedAt  time.Time
}

// LeaveRequest is mutated only through the workflow transitions. DayOption is
// meaningful only for single-day Earned leave.
type LeaveRequest struct {
	ID                string
	UserID            string
	LeaveType         LeaveType
	StartDate         time.Time
	EndDate           time.Time
	DayOption         *DayOption
	Reason            string
	Status            RequestStatus
	CurrentApproverID *string
	ApprovalHistory   []ApprovalRecord
	SubmittedAt       time.Time
	UpdatedAt         time.Time

	// DTO
	UserName *string
}

// IsTerminal reports whether the request can accept no further transitions.
func (r LeaveRequest) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// Covers reports whether the leave interval contains the given calendar day,
// inclusive on both ends.
func (r LeaveRequest) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, day.Location())
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, day.Location())
	return !d.Before(start) && !d.After(end)
}

// IsHalfDay reports whether the request is a single-day half leave. The day
// option carries no meaning on multi-day spans.
func (r LeaveRequest) IsHalfDay() bool {
	if r.DayOption == nil || *r.DayOption != DayOptionHalf {
		return false
	}
	return r.StartDate.Year() == r.EndDate.Year() && r.StartDate.YearDay() == r.EndDate.YearDay()
}

// Days returns the calendar-day span the request occupies, half-weighted for
// half-day requests.
func (r LeaveRequest) Days() float64 {
	days := float64(int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1)
	if r.IsHalfDay() {
		return 0.5
	}
	return days
}
