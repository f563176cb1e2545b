package attendance

import (
	"fmt"
	"time"

	"github.com/rosterline/attendance-engine-go/internal/pkg/validator"
)

type RecordRangeRequest struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *RecordRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
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

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyRecordResponse struct {
	Date     string  `json:"date"`
	Day      string  `json:"day"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Duration *string `json:"duration"`
	Status   string  `json:"status"`
}

type RecordRangeResponse struct {
	UserID    string                `json:"user_id"`
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Records   []DailyRecordResponse `json:"records"`
}

// MapRecordToResponse converts a DailyRecord to its transport shape. Durations
// render as fractional hours with two decimals, e.g. "9.50".
func MapRecordToResponse(rec DailyRecord) DailyRecordResponse {
	resp := DailyRecordResponse{
		Date:   rec.Date.Format("2006-01-02"),
		Day:    rec.Day,
		Status: string(rec.Status),
	}

	if rec.CheckIn != nil {
		v := rec.CheckIn.Format("15:04")
		resp.CheckIn = &v
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.Format("15:04")
		resp.CheckOut = &v
	}
	if rec.DurationHours != nil {
		v := fmt.Sprintf("%.2f", *rec.DurationHours)
		resp.Duration = &v
	}

	return resp
}

type UpdateSettingsRequest struct {
	MinimumHoursFullDay   *float64 `json:"minimum_hours_full_day,omitempty"`
	MinimumHoursHalfDay   *float64 `json:"minimum_hours_half_day,omitempty"`
	AnnualEarnedLeaves    *int     `json:"annual_earned_leaves,omitempty"`
	AnnualSickLeaves      *int     `json:"annual_sick_leaves,omitempty"`
	MonthlyFloatingLeaves *int     `json:"monthly_floating_leaves,omitempty"`
	EnableNotifications   *bool    `json:"enable_attendance_notifications,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MinimumHoursFullDay != nil && *r.MinimumHoursFullDay < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minimum_hours_full_day",
			Message: "minimum_hours_full_day must not be negative",
		})
	}

	if r.MinimumHoursHalfDay != nil && *r.MinimumHoursHalfDay < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minimum_hours_half_day",
			Message: "minimum_hours_half_day must not be negative",
		})
	}

	if r.AnnualEarnedLeaves != nil && *r.AnnualEarnedLeaves < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_earned_leaves",
			Message: "annual_earned_leaves must not be negative",
		})
	}

	if r.AnnualSickLeaves != nil && *r.AnnualSickLeaves < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_sick_leaves",
			Message: "annual_sick_leaves must not be negative",
		})
	}

	if r.MonthlyFloatingLeaves != nil && *r.MonthlyFloatingLeaves < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_floating_leaves",
			Message: "monthly_floating_leaves must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the request into existing settings and enforces the
// half-day < full-day invariant on the result.
func (r *UpdateSettingsRequest) Apply(current Settings) (Settings, error) {
	next := current

	if r.MinimumHoursFullDay != nil {
		next.MinimumHoursFullDay = *r.MinimumHoursFullDay
	}
	if r.MinimumHoursHalfDay != nil {
		next.MinimumHoursHalfDay = *r.MinimumHoursHalfDay
	}
	if r.AnnualEarnedLeaves != nil {
		next.AnnualEarnedLeaves = *r.AnnualEarnedLeaves
	}
	if r.AnnualSickLeaves != nil {
		next.AnnualSickLeaves = *r.AnnualSickLeaves
	}
	if r.MonthlyFloatingLeaves != nil {
		next.MonthlyFloatingLeaves = *r.MonthlyFloatingLeaves
	}
	if r.EnableNotifications != nil {
		next.EnableNotifications = *r.EnableNotifications
	}

	if next.MinimumHoursHalfDay >= next.MinimumHoursFullDay {
		return Settings{}, ErrInvalidThresholds
	}

	return next, nil
}

type SettingsResponse struct {
	MinimumHoursFullDay   float64 `json:"minimum_hours_full_day"`
	MinimumHoursHalfDay   float64 `json:"minimum_hours_half_day"`
	AnnualEarnedLeaves    int     `json:"annual_earned_leaves"`
	AnnualSickLeaves      int     `json:"annual_sick_leaves"`
	MonthlyFloatingLeaves int     `json:"monthly_floating_leaves"`
	EnableNotifications   bool    `json:"enable_attendance_notifications"`
}

func MapSettingsToResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		MinimumHoursFullDay:   s.MinimumHoursFullDay,
		MinimumHoursHalfDay:   s.MinimumHoursHalfDay,
		AnnualEarnedLeaves:    s.AnnualEarnedLeaves,
		AnnualSickLeaves:      s.AnnualSickLeaves,
		MonthlyFloatingLeaves: s.MonthlyFloatingLeaves,
		EnableNotifications:   s.EnableNotifications,
	}
}

// TruncateToDay normalizes a timestamp to its calendar day in the zone it was
// recorded.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
