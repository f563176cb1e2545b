package report

import (
	"fmt"
	"time"

	"github.com/rosterline/attendance-engine-go/internal/pkg/validator"
)

// Day-grid status codes used by the muster roll.
const (
	CodePresent = "P"
	CodeAbsent  = "A"
	CodeHalfDay = "HD"
	CodeLeave   = "L"
	CodeWeekOff = "WO"
	CodeHoliday = "H"
)

type MusterRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MusterRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlyReportRow is one employee's muster line: the full day grid plus
// status tallies. TotalPayable weighs half days at 0.5 and counts leaves,
// holidays and week-offs as fully payable.
type MonthlyReportRow struct {
	SlNo      int            `json:"sl_no"`
	RefNo     string         `json:"ref_no"`
	StaffName string         `json:"staff_name"`
	DayGrid   map[int]string `json:"day_grid"`

	Present      int     `json:"present"`
	WeekOff      int     `json:"week_off"`
	Leaves       int     `json:"leaves"`
	Absent       int     `json:"absent"`
	HalfDay      int     `json:"half_day"`
	Holidays     int     `json:"holidays"`
	TotalPayable float64 `json:"total_payable"`
}

type MusterReport struct {
	Month       int                `json:"month"`
	Year        int                `json:"year"`
	DaysInMonth int                `json:"days_in_month"`
	GeneratedAt string             `json:"generated_at"`
	Rows        []MonthlyReportRow `json:"rows"`
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodCustom  Period = "custom"
)

var periods = []string{
	string(PeriodDaily),
	string(PeriodWeekly),
	string(PeriodMonthly),
	string(PeriodCustom),
}

type CustomLogRequest struct {
	UserIDs []string `json:"user_ids"`
	Period  string   `json:"period"`

	// Date anchors the daily/weekly/monthly periods.
	Date string `json:"date,omitempty"`

	// StartDate/EndDate apply only to the custom period.
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

func (r *CustomLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.UserIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_ids",
			Message: "at least one user_id is required",
		})
	}

	if !validator.IsInSlice(r.Period, periods) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be one of daily, weekly, monthly, custom",
		})
		if len(errs) > 0 {
			return errs
		}
	}

	switch Period(r.Period) {
	case PeriodCustom:
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
			if end.After(today) {
				errs = append(errs, validator.ValidationError{
					Field:   "end_date",
					Message: "end_date must not be in the future",
				})
			}
		}
	default:
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Resolve turns the period selection into an inclusive [start, end] day range.
// Validate must pass first.
func (r *CustomLogRequest) Resolve() (time.Time, time.Time) {
	switch Period(r.Period) {
	case PeriodCustom:
		start, _ := time.Parse("2006-01-02", r.StartDate)
		end, _ := time.Parse("2006-01-02", r.EndDate)
		return start, end
	case PeriodWeekly:
		anchor, _ := time.Parse("2006-01-02", r.Date)
		// Monday-start window containing the anchor.
		offset := (int(anchor.Weekday()) + 6) % 7
		start := anchor.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case PeriodMonthly:
		anchor, _ := time.Parse("2006-01-02", r.Date)
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return start, start.AddDate(0, 1, -1)
	default:
		day, _ := time.Parse("2006-01-02", r.Date)
		return day, day
	}
}

type CustomLogRow struct {
	Date     string  `json:"date"`
	Day      string  `json:"day"`
	UserID   string  `json:"employee_id"`
	UserName string  `json:"employee_name"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Duration *string `json:"duration"`
	Status   string  `json:"status"`
}

type CustomLogReport struct {
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	GeneratedAt string         `json:"generated_at"`
	Rows        []CustomLogRow `json:"rows"`
}
