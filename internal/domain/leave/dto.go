package leave

import (
	"time"

	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	"github.com/rosterline/attendance-engine-go/internal/pkg/validator"
)

const minReasonLength = 10

type SubmitLeaveRequest struct {
	UserID    string  `json:"user_id"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	DayOption *string `json:"day_option,omitempty"`
	Reason    string  `json:"reason"`
}

var leaveTypes = []string{
	string(LeaveTypeEarned),
	string(LeaveTypeSick),
	string(LeaveTypeFloating),
}

var dayOptions = []string{
	string(DayOptionFull),
	string(DayOptionHalf),
}

// Validate enforces the pre-submission rules: a request that fails here never
// enters the workflow.
func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !validator.IsInSlice(r.LeaveType, leaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of Earned, Sick, Floating",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if start.Before(today) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must not be in the past",
			})
		}

		// The day option belongs to single-day Earned leave only.
		if start.Equal(end) && r.LeaveType == string(LeaveTypeEarned) {
			if r.DayOption == nil || validator.IsEmpty(*r.DayOption) {
				errs = append(errs, validator.ValidationError{
					Field:   "day_option",
					Message: "day_option is required for single-day Earned leave",
				})
			}
		} else if r.DayOption != nil && !validator.IsEmpty(*r.DayOption) {
			errs = append(errs, validator.ValidationError{
				Field:   "day_option",
				Message: "day_option is only allowed for single-day Earned leave",
			})
		}
	}

	if r.DayOption != nil && !validator.IsEmpty(*r.DayOption) && !validator.IsInSlice(*r.DayOption, dayOptions) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_option",
			Message: "day_option must be either full or half",
		})
	}

	if len([]rune(r.Reason)) < minReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at least " + validator.Itoa(minReasonLength) + " characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecisionRequest struct {
	RequestID string `json:"request_id"`
	ActorID   string `json:"actor_id"`
	Note      string `json:"note,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovalRecordResponse struct {
	ApproverID string  `json:"approver_id"`
	Stage      string  `json:"stage"`
	Action     string  `json:"action"`
	Note       *string `json:"note,omitempty"`
	DecidedAt  string  `json:"decided_at"`
}

type LeaveRequestResponse struct {
	ID                string                   `json:"id"`
	UserID            string                   `json:"user_id"`
	UserName          *string                  `json:"user_name,omitempty"`
	LeaveType         string                   `json:"leave_type"`
	StartDate         string                   `json:"start_date"`
	EndDate           string                   `json:"end_date"`
	DayOption         *string                  `json:"day_option,omitempty"`
	Reason            string                   `json:"reason"`
	Status            string                   `json:"status"`
	CurrentApproverID *string                  `json:"current_approver_id"`
	ApprovalHistory   []ApprovalRecordResponse `json:"approval_history"`
	SubmittedAt       string                   `json:"submitted_at"`
}

func MapRequestToResponse(req LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                req.ID,
		UserID:            req.UserID,
		UserName:          req.UserName,
		LeaveType:         string(req.LeaveType),
		StartDate:         req.StartDate.Format("2006-01-02"),
		EndDate:           req.EndDate.Format("2006-01-02"),
		Reason:            req.Reason,
		Status:            string(req.Status),
		CurrentApproverID: req.CurrentApproverID,
		SubmittedAt:       req.SubmittedAt.Format(time.RFC3339),
		ApprovalHistory:   make([]ApprovalRecordResponse, 0, len(req.ApprovalHistory)),
	}

	if req.DayOption != nil {
		v := string(*req.DayOption)
		resp.DayOption = &v
	}

	for _, rec := range req.ApprovalHistory {
		resp.ApprovalHistory = append(resp.ApprovalHistory, ApprovalRecordResponse{
			ApproverID: rec.ApproverID,
			Stage:      string(rec.Stage),
			Action:     string(rec.Action),
			Note:       rec.Note,
			DecidedAt:  rec.DecidedAt.Format(time.RFC3339),
		})
	}

	return resp
}

type ApprovalPolicyResponse struct {
	FinalConfirmationRole string `json:"final_confirmation_role"`
}

type UpdateApprovalPolicyRequest struct {
	FinalConfirmationRole string `json:"final_confirmation_role"`
}

func (r *UpdateApprovalPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	roles := make([]string, 0, len(user.FinalConfirmationRoles))
	for _, role := range user.FinalConfirmationRoles {
		roles = append(roles, string(role))
	}

	if !validator.IsInSlice(r.FinalConfirmationRole, roles) {
		errs = append(errs, validator.ValidationError{
			Field:   "final_confirmation_role",
			Message: "final_confirmation_role must be one of hr, admin, director",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TypeBalance struct {
	Entitled  float64 `json:"entitled"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type BalanceResponse struct {
	UserID   string      `json:"user_id"`
	Year     int         `json:"year"`
	Month    int         `json:"month"`
	Earned   TypeBalance `json:"earned"`
	Sick     TypeBalance `json:"sick"`
	Floating TypeBalance `json:"floating"`
}
