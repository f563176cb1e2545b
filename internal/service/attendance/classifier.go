package attendance

import (
	"time"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
)

// Classify maps one employee-day to its attendance verdict. The precedence
// order is load-bearing: approved leave beats holiday beats weekend beats the
// punch-derived statuses, evaluated strictly in that order.
//
// The function is pure: it reads only its arguments and the snapshot, and the
// same inputs always yield the same record.
func Classify(userID string, date time.Time, events []attendance.Event, approvedLeaves []leave.LeaveRequest, snap Snapshot) (attendance.DailyRecord, []attendance.Anomaly) {
	day := attendance.TruncateToDay(date)
	rec := attendance.DailyRecord{
		Date: day,
		Day:  day.Weekday().String(),
	}

	// 1. Approved leave covering the date wins over everything else, including
	// holidays and recorded punches.
	for _, lr := range approvedLeaves {
		if lr.Status != leave.StatusApproved || !lr.Covers(day) {
			continue
		}
		if lr.IsHalfDay() {
			rec.Status = attendance.StatusOnLeaveHalf
		} else {
			rec.Status = attendance.StatusOnLeaveFull
		}
		return rec, nil
	}

	// 2. Holiday
	if snap.IsHoliday(day) {
		rec.Status = attendance.StatusHoliday
		return rec, nil
	}

	// 3. Weekend. Only Sunday is a non-workday; Saturday is a regular workday
	// (six-day week policy).
	if day.Weekday() == time.Sunday {
		rec.Status = attendance.StatusWeekend
		return rec, nil
	}

	// Collapse the day's punches to first check-in / last check-out. A stray
	// check-out never supplies the check-in, but it still competes for the
	// last-out slot.
	var firstIn, lastOut *time.Time
	for i := range events {
		ev := events[i]
		if !attendance.SameDay(ev.Timestamp, day) {
			continue
		}
		switch ev.Type {
		case attendance.EventCheckIn:
			if firstIn == nil || ev.Timestamp.Before(*firstIn) {
				ts := ev.Timestamp
				firstIn = &ts
			}
		case attendance.EventCheckOut:
			if lastOut == nil || ev.Timestamp.After(*lastOut) {
				ts := ev.Timestamp
				lastOut = &ts
			}
		}
	}

	// 4. No check-in at all
	if firstIn == nil {
		rec.Status = attendance.StatusAbsent
		if lastOut != nil {
			return rec, []attendance.Anomaly{{UserID: userID, Date: day, Kind: attendance.AnomalyMissingCheckIn}}
		}
		return rec, nil
	}

	rec.CheckIn = firstIn

	// 5. Checked in, never checked out
	if lastOut == nil {
		rec.Status = attendance.StatusIncomplete
		return rec, nil
	}

	rec.CheckOut = lastOut

	// 6. Both punches present: bucket by worked duration. A checkout recorded
	// before the checkin yields a negative span; it is classified through the
	// thresholds unclamped and flagged for audit.
	duration := lastOut.Sub(*firstIn).Hours()
	rec.DurationHours = &duration

	var anomalies []attendance.Anomaly
	if duration < 0 {
		anomalies = append(anomalies, attendance.Anomaly{UserID: userID, Date: day, Kind: attendance.AnomalyNegativeDuration})
	}

	switch {
	case duration >= snap.Settings.MinimumHoursFullDay:
		rec.Status = attendance.StatusPresent
	case duration >= snap.Settings.MinimumHoursHalfDay:
		rec.Status = attendance.StatusHalfDay
	default:
		rec.Status = attendance.StatusAbsent
	}

	return rec, anomalies
}
