package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/rosterline/attendance-engine-go/internal/domain/report"
)

// MusterPDF renders the monthly muster roll as a landscape A4 grid.
func MusterPDF(w io.Writer, m report.MusterReport) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Attendance Muster - %02d/%d", m.Month, m.Year))
	pdf.Ln(10)

	dayWidth := 6.0
	pdf.SetFont("Helvetica", "B", 6)
	pdf.CellFormat(10, 5, "SL", "1", 0, "C", false, 0, "")
	pdf.CellFormat(16, 5, "Ref No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(34, 5, "Staff Name", "1", 0, "C", false, 0, "")
	for d := 1; d <= m.DaysInMonth; d++ {
		pdf.CellFormat(dayWidth, 5, fmt.Sprintf("%d", d), "1", 0, "C", false, 0, "")
	}
	for _, col := range []string{"P", "HD", "A", "L", "WO", "H", "Pay"} {
		pdf.CellFormat(9, 5, col, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 6)
	for _, row := range m.Rows {
		pdf.CellFormat(10, 5, fmt.Sprintf("%d", row.SlNo), "1", 0, "C", false, 0, "")
		pdf.CellFormat(16, 5, row.RefNo, "1", 0, "L", false, 0, "")
		pdf.CellFormat(34, 5, row.StaffName, "1", 0, "L", false, 0, "")
		for d := 1; d <= m.DaysInMonth; d++ {
			pdf.CellFormat(dayWidth, 5, row.DayGrid[d], "1", 0, "C", false, 0, "")
		}
		for _, val := range []string{
			fmt.Sprintf("%d", row.Present),
			fmt.Sprintf("%d", row.HalfDay),
			fmt.Sprintf("%d", row.Absent),
			fmt.Sprintf("%d", row.Leaves),
			fmt.Sprintf("%d", row.WeekOff),
			fmt.Sprintf("%d", row.Holidays),
			fmt.Sprintf("%.1f", row.TotalPayable),
		} {
			pdf.CellFormat(9, 5, val, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render muster pdf: %w", err)
	}
	return nil
}

// CustomLogPDF renders a custom attendance log as a portrait table.
func CustomLogPDF(w io.Writer, log report.CustomLogReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Attendance Log %s to %s", log.StartDate, log.EndDate))
	pdf.Ln(10)

	widths := []float64{22, 20, 24, 36, 18, 18, 16, 32}
	headers := []string{"Date", "Day", "Employee ID", "Employee Name", "Check-In", "Check-Out", "Duration", "Status"}

	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range log.Rows {
		cells := []string{
			row.Date,
			row.Day,
			row.UserID,
			row.UserName,
			orDash(row.CheckIn),
			orDash(row.CheckOut),
			orDash(row.Duration),
			row.Status,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render log pdf: %w", err)
	}
	return nil
}
