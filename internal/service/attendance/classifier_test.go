package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
)

var testSettings = attendance.Settings{
	MinimumHoursFullDay: 8,
	MinimumHoursHalfDay: 4,
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func checkIn(userID string, ts time.Time) attendance.Event {
	return attendance.Event{ID: "in-" + ts.Format("150405"), UserID: userID, Timestamp: ts, Type: attendance.EventCheckIn}
}

func checkOut(userID string, ts time.Time) attendance.Event {
	return attendance.Event{ID: "out-" + ts.Format("150405"), UserID: userID, Timestamp: ts, Type: attendance.EventCheckOut}
}

func approvedLeave(userID string, start, end time.Time, opt *leave.DayOption) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:        "lr-1",
		UserID:    userID,
		LeaveType: leave.LeaveTypeEarned,
		StartDate: start,
		EndDate:   end,
		DayOption: opt,
		Status:    leave.StatusApproved,
	}
}

func TestClassifyFullDayPresence(t *testing.T) {
	t.Parallel()

	// Tuesday, 09:00 - 18:30 with an 8 hour full-day threshold.
	tuesday := day(2024, time.June, 11)
	events := []attendance.Event{
		checkIn("u1", at(2024, time.June, 11, 9, 0)),
		checkOut("u1", at(2024, time.June, 11, 18, 30)),
	}

	rec, anomalies := Classify("u1", tuesday, events, nil, NewSnapshot(testSettings, nil))

	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, "Tuesday", rec.Day)
	require.NotNil(t, rec.DurationHours)
	assert.InDelta(t, 9.5, *rec.DurationHours, 0.001)
	assert.Empty(t, anomalies)

	resp := attendance.MapRecordToResponse(rec)
	require.NotNil(t, resp.Duration)
	assert.Equal(t, "9.50", *resp.Duration)
}

func TestClassifyCheckInWithoutCheckOut(t *testing.T) {
	t.Parallel()

	tuesday := day(2024, time.June, 11)
	events := []attendance.Event{checkIn("u1", at(2024, time.June, 11, 9, 0))}

	rec, anomalies := Classify("u1", tuesday, events, nil, NewSnapshot(testSettings, nil))

	assert.Equal(t, attendance.StatusIncomplete, rec.Status)
	require.NotNil(t, rec.CheckIn)
	assert.Nil(t, rec.CheckOut)
	assert.Nil(t, rec.DurationHours)
	assert.Empty(t, anomalies)
}

func TestClassifyNoEvents(t *testing.T) {
	t.Parallel()

	rec, anomalies := Classify("u1", day(2024, time.June, 11), nil, nil, NewSnapshot(testSettings, nil))

	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Empty(t, anomalies)
}

func TestClassifyThresholdBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		outHour int
		outMin  int
		want    attendance.Status
	}{
		{"exactly full-day threshold", 17, 0, attendance.StatusPresent},
		{"just below full-day threshold", 16, 59, attendance.StatusHalfDay},
		{"exactly half-day threshold", 13, 0, attendance.StatusHalfDay},
		{"just below half-day threshold", 12, 59, attendance.StatusAbsent},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			events := []attendance.Event{
				checkIn("u1", at(2024, time.June, 11, 9, 0)),
				checkOut("u1", at(2024, time.June, 11, tc.outHour, tc.outMin)),
			}
			rec, _ := Classify("u1", day(2024, time.June, 11), events, nil, NewSnapshot(testSettings, nil))
			assert.Equal(t, tc.want, rec.Status)
		})
	}
}

func TestClassifyLeaveBeatsEverything(t *testing.T) {
	t.Parallel()

	// 2024-06-10..12 approved multi-day leave, with punches recorded on the
	// 11th and the 12th marked as a holiday.
	start := day(2024, time.June, 10)
	end := day(2024, time.June, 12)
	leaves := []leave.LeaveRequest{approvedLeave("u1", start, end, nil)}
	holidays := []holiday.Holiday{{ID: "h1", Date: day(2024, time.June, 12), Name: "Founders Day"}}
	snap := NewSnapshot(testSettings, holidays)

	events := []attendance.Event{
		checkIn("u1", at(2024, time.June, 11, 9, 0)),
		checkOut("u1", at(2024, time.June, 11, 18, 0)),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rec, _ := Classify("u1", d, events, leaves, snap)
		assert.Equal(t, attendance.StatusOnLeaveFull, rec.Status, d.Format("2006-01-02"))
		assert.Nil(t, rec.CheckIn)
	}
}

func TestClassifyHalfDayLeave(t *testing.T) {
	t.Parallel()

	opt := leave.DayOptionHalf
	d := day(2024, time.June, 11)
	leaves := []leave.LeaveRequest{approvedLeave("u1", d, d, &opt)}

	rec, _ := Classify("u1", d, nil, leaves, NewSnapshot(testSettings, nil))
	assert.Equal(t, attendance.StatusOnLeaveHalf, rec.Status)
}

func TestClassifyMultiDayLeaveIgnoresHalfOption(t *testing.T) {
	t.Parallel()

	// The half option belongs to single-day leave; on a span it is inert and
	// every covered day is a full leave day.
	opt := leave.DayOptionHalf
	start := day(2024, time.June, 10)
	end := day(2024, time.June, 11)
	leaves := []leave.LeaveRequest{approvedLeave("u1", start, end, &opt)}
	snap := NewSnapshot(testSettings, nil)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rec, _ := Classify("u1", d, nil, leaves, snap)
		assert.Equal(t, attendance.StatusOnLeaveFull, rec.Status, d.Format("2006-01-02"))
	}
}

func TestClassifyPendingLeaveIsIgnored(t *testing.T) {
	t.Parallel()

	d := day(2024, time.June, 11)
	pending := approvedLeave("u1", d, d, nil)
	pending.Status = leave.StatusPendingManagerApproval

	rec, _ := Classify("u1", d, nil, []leave.LeaveRequest{pending}, NewSnapshot(testSettings, nil))
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
}

func TestClassifyHolidayBeatsWeekendAndPunches(t *testing.T) {
	t.Parallel()

	// 2024-06-09 is a Sunday and a declared holiday; holiday wins.
	sunday := day(2024, time.June, 9)
	snap := NewSnapshot(testSettings, []holiday.Holiday{{ID: "h1", Date: sunday, Name: "Eid"}})

	events := []attendance.Event{
		checkIn("u1", at(2024, time.June, 9, 9, 0)),
		checkOut("u1", at(2024, time.June, 9, 18, 0)),
	}

	rec, _ := Classify("u1", sunday, events, nil, snap)
	assert.Equal(t, attendance.StatusHoliday, rec.Status)
}

func TestClassifySundayIsWeekendSaturdayIsNot(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(testSettings, nil)

	sunday, _ := Classify("u1", day(2024, time.June, 9), nil, nil, snap)
	assert.Equal(t, attendance.StatusWeekend, sunday.Status)

	// Saturday with no punches is a plain absence, not a week-off.
	saturday, _ := Classify("u1", day(2024, time.June, 8), nil, nil, snap)
	assert.Equal(t, attendance.StatusAbsent, saturday.Status)
}

func TestClassifyCollapsesToFirstInLastOut(t *testing.T) {
	t.Parallel()

	// Two sessions on one day: only the earliest in and latest out matter;
	// sessions are not summed pairwise.
	events := []attendance.Event{
		checkIn("u1", at(2024, time.June, 11, 13, 0)),
		checkOut("u1", at(2024, time.June, 11, 12, 0)),
		checkIn("u1", at(2024, time.June, 11, 9, 0)),
		checkOut("u1", at(2024, time.June, 11, 18, 0)),
	}

	rec, _ := Classify("u1", day(2024, time.June, 11), events, nil, NewSnapshot(testSettings, nil))

	require.NotNil(t, rec.CheckIn)
	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, 9, rec.CheckIn.Hour())
	assert.Equal(t, 18, rec.CheckOut.Hour())
	assert.InDelta(t, 9.0, *rec.DurationHours, 0.001)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
}

func TestClassifyStrayCheckOut(t *testing.T) {
	t.Parallel()

	// A check-out with no check-in leaves the day absent but is flagged as a
	// data gap.
	events := []attendance.Event{checkOut("u1", at(2024, time.June, 11, 18, 0))}

	rec, anomalies := Classify("u1", day(2024, time.June, 11), events, nil, NewSnapshot(testSettings, nil))

	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyMissingCheckIn, anomalies[0].Kind)
}

func TestClassifyNegativeDurationFlagged(t *testing.T) {
	t.Parallel()

	// Out-of-order punches: checkout precedes checkin. The span stays
	// negative (no clamping) and the day is flagged.
	events := []attendance.Event{
		checkIn("u1", at(2024, time.June, 11, 18, 0)),
		checkOut("u1", at(2024, time.June, 11, 9, 0)),
	}

	rec, anomalies := Classify("u1", day(2024, time.June, 11), events, nil, NewSnapshot(testSettings, nil))

	require.NotNil(t, rec.DurationHours)
	assert.Less(t, *rec.DurationHours, 0.0)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyNegativeDuration, anomalies[0].Kind)
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		checkIn("u1", at(2024, time.June, 11, 9, 0)),
		checkOut("u1", at(2024, time.June, 11, 18, 30)),
	}
	snap := NewSnapshot(testSettings, nil)

	first, _ := Classify("u1", day(2024, time.June, 11), events, nil, snap)
	second, _ := Classify("u1", day(2024, time.June, 11), events, nil, snap)

	assert.Equal(t, first, second)
}
