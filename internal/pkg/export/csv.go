package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rosterline/attendance-engine-go/internal/domain/report"
)

// MusterCSV streams the monthly muster roll as CSV: one row per employee
// with the full day grid followed by the status tallies.
func MusterCSV(w io.Writer, m report.MusterReport) error {
	writer := csv.NewWriter(w)

	header := []string{"SL.No", "Ref No", "Staff Name"}
	for d := 1; d <= m.DaysInMonth; d++ {
		header = append(header, fmt.Sprintf("%d", d))
	}
	header = append(header, "Present", "Half Day", "Absent", "Leaves", "Week Off", "Holidays", "Total Payable Days")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write muster header: %w", err)
	}

	for _, row := range m.Rows {
		record := []string{
			fmt.Sprintf("%d", row.SlNo),
			row.RefNo,
			row.StaffName,
		}
		for d := 1; d <= m.DaysInMonth; d++ {
			record = append(record, row.DayGrid[d])
		}
		record = append(record,
			fmt.Sprintf("%d", row.Present),
			fmt.Sprintf("%d", row.HalfDay),
			fmt.Sprintf("%d", row.Absent),
			fmt.Sprintf("%d", row.Leaves),
			fmt.Sprintf("%d", row.WeekOff),
			fmt.Sprintf("%d", row.Holidays),
			fmt.Sprintf("%.1f", row.TotalPayable),
		)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write muster row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// CustomLogCSV streams a custom attendance log as CSV, one row per employee
// per day.
func CustomLogCSV(w io.Writer, log report.CustomLogReport) error {
	writer := csv.NewWriter(w)

	header := []string{"Date", "Day", "Employee ID", "Employee Name", "Check-In", "Check-Out", "Duration", "Status"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write log header: %w", err)
	}

	for _, row := range log.Rows {
		record := []string{
			row.Date,
			row.Day,
			row.UserID,
			row.UserName,
			orDash(row.CheckIn),
			orDash(row.CheckOut),
			orDash(row.Duration),
			row.Status,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write log row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
