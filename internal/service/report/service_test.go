package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/report"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
)

type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) ListByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range f.events {
		if e.UserID == userID && !e.Timestamp.Before(start) && e.Timestamp.Before(end.AddDate(0, 0, 1)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByRange(_ context.Context, start, end time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range f.events {
		if !e.Timestamp.Before(start) && e.Timestamp.Before(end.AddDate(0, 0, 1)) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct{}

func (f *fakeSettingsRepo) Get(_ context.Context) (attendance.Settings, error) {
	return attendance.Settings{MinimumHoursFullDay: 8, MinimumHoursHalfDay: 4}, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s attendance.Settings) (attendance.Settings, error) {
	return s, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) List(_ context.Context) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) ListByRange(_ context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, _ string) error {
	return nil
}

type fakeLeaveRepo struct {
	approved []leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, _ string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) UpdateFromStatus(_ context.Context, _ leave.StatusUpdate, _ leave.RequestStatus) error {
	return nil
}

func (f *fakeLeaveRepo) AppendApproval(_ context.Context, _ leave.ApprovalRecord) error {
	return nil
}

func (f *fakeLeaveRepo) ListByUser(_ context.Context, _ string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListPendingForApprover(_ context.Context, _ string) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListApprovedByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.approved {
		if req.UserID == userID && !req.StartDate.After(end) && !req.EndDate.Before(start) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListApprovedByRange(_ context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.approved {
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListApprovedByUserAndYear(_ context.Context, _ string, _ int) ([]leave.LeaveRequest, error) {
	return nil, nil
}

type fakeDirectory struct {
	users []user.User
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeDirectory) FirstByRole(_ context.Context, _ user.Role) (user.User, error) {
	return user.User{}, user.ErrNoRoleHolder
}

func (f *fakeDirectory) ListActive(_ context.Context) ([]user.User, error) {
	return f.users, nil
}

func (f *fakeDirectory) ListOrganizations(_ context.Context) ([]user.Organization, error) {
	return nil, nil
}

func punch(userID string, d time.Time, inHour, outHour int) []attendance.Event {
	return []attendance.Event{
		{ID: userID + d.Format("0102") + "-in", UserID: userID, Timestamp: time.Date(d.Year(), d.Month(), d.Day(), inHour, 0, 0, 0, time.UTC), Type: attendance.EventCheckIn},
		{ID: userID + d.Format("0102") + "-out", UserID: userID, Timestamp: time.Date(d.Year(), d.Month(), d.Day(), outHour, 0, 0, 0, time.UTC), Type: attendance.EventCheckOut},
	}
}

func newFixture(events []attendance.Event, leaves []leave.LeaveRequest, holidays []holiday.Holiday, users []user.User) *ReportServiceImpl {
	svc := NewReportService(
		&fakeEventRepo{events: events},
		&fakeSettingsRepo{},
		&fakeHolidayRepo{holidays: holidays},
		&fakeLeaveRepo{approved: leaves},
		&fakeDirectory{users: users},
		2,
	)
	impl := svc.(*ReportServiceImpl)
	impl.now = func() time.Time { return time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC) }
	return impl
}

func TestGenerateMusterTallies(t *testing.T) {
	// June 2026: 30 days, Sundays on the 7th, 14th, 21st and 28th. Three
	// declared holidays, one plain absence, present every other workday.
	users := []user.User{{ID: "u1", RefNo: "E001", Name: "Asha", OrganizationID: "org-1", Active: true}}
	holidays := []holiday.Holiday{
		{ID: "h1", Date: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), Name: "Founders Day"},
		{ID: "h2", Date: time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC), Name: "Eid"},
		{ID: "h3", Date: time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC), Name: "Local Holiday"},
	}

	var events []attendance.Event
	for d := 4; d <= 30; d++ {
		day := time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
		if day.Weekday() == time.Sunday || d == 30 {
			continue
		}
		events = append(events, punch("u1", day, 9, 18)...)
	}

	svc := newFixture(events, nil, holidays, users)

	muster, err := svc.GenerateMuster(context.Background(), report.MusterRequest{Month: 6, Year: 2026})
	require.NoError(t, err)

	assert.Equal(t, 30, muster.DaysInMonth)
	require.Len(t, muster.Rows, 1)

	row := muster.Rows[0]
	assert.Equal(t, 1, row.SlNo)
	assert.Equal(t, "E001", row.RefNo)
	assert.Equal(t, 22, row.Present)
	assert.Equal(t, 4, row.WeekOff)
	assert.Equal(t, 3, row.Holidays)
	assert.Equal(t, 1, row.Absent)
	assert.Equal(t, 0, row.Leaves)
	assert.Equal(t, 0, row.HalfDay)
	assert.InDelta(t, 29.0, row.TotalPayable, 0.001)

	assert.Equal(t, report.CodeHoliday, row.DayGrid[1])
	assert.Equal(t, report.CodeWeekOff, row.DayGrid[7])
	assert.Equal(t, report.CodePresent, row.DayGrid[4])
	assert.Equal(t, report.CodeAbsent, row.DayGrid[30])
	assert.Len(t, row.DayGrid, 30)
}

func TestGenerateMusterHalfDayAndLeaveWeights(t *testing.T) {
	users := []user.User{{ID: "u1", RefNo: "E001", Name: "Asha", OrganizationID: "org-1", Active: true}}

	// Monday the 1st: half-day presence. Tuesday the 2nd: approved leave.
	var events []attendance.Event
	events = append(events, punch("u1", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), 9, 14)...)
	leaves := []leave.LeaveRequest{{
		ID: "lr-1", UserID: "u1", LeaveType: leave.LeaveTypeEarned,
		StartDate: time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusApproved,
	}}

	svc := newFixture(events, leaves, nil, users)

	muster, err := svc.GenerateMuster(context.Background(), report.MusterRequest{Month: 6, Year: 2026})
	require.NoError(t, err)

	row := muster.Rows[0]
	assert.Equal(t, 1, row.HalfDay)
	assert.Equal(t, 1, row.Leaves)
	assert.Equal(t, report.CodeHalfDay, row.DayGrid[1])
	assert.Equal(t, report.CodeLeave, row.DayGrid[2])

	// 0 present + 0.5 half + 1 leave + 4 week-offs.
	assert.InDelta(t, 5.5, row.TotalPayable, 0.001)
}

func TestGenerateMusterNoEmployees(t *testing.T) {
	svc := newFixture(nil, nil, nil, nil)

	_, err := svc.GenerateMuster(context.Background(), report.MusterRequest{Month: 6, Year: 2026})
	assert.ErrorIs(t, err, report.ErrNoEmployeesMatched)
}

func TestGenerateCustomLogWeekly(t *testing.T) {
	users := []user.User{
		{ID: "u1", RefNo: "E001", Name: "Asha", OrganizationID: "org-1", Active: true},
		{ID: "u2", RefNo: "E002", Name: "Ravi", OrganizationID: "org-1", Active: true},
	}

	// Wednesday 2026-06-10 anchors the Mon 8th - Sun 14th window.
	events := punch("u1", time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), 9, 18)

	svc := newFixture(events, nil, nil, users)

	log, err := svc.GenerateCustomLog(context.Background(), report.CustomLogRequest{
		UserIDs: []string{"u1"},
		Period:  string(report.PeriodWeekly),
		Date:    "2026-06-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-06-08", log.StartDate)
	assert.Equal(t, "2026-06-14", log.EndDate)
	require.Len(t, log.Rows, 7)

	assert.Equal(t, "Monday", log.Rows[0].Day)
	assert.Equal(t, string(attendance.StatusPresent), log.Rows[2].Status)
	require.NotNil(t, log.Rows[2].Duration)
	assert.Equal(t, "9.00", *log.Rows[2].Duration)
	assert.Equal(t, string(attendance.StatusWeekend), log.Rows[6].Status)
}

func TestGenerateCustomLogUnknownUsers(t *testing.T) {
	users := []user.User{{ID: "u1", RefNo: "E001", Name: "Asha", OrganizationID: "org-1", Active: true}}
	svc := newFixture(nil, nil, nil, users)

	_, err := svc.GenerateCustomLog(context.Background(), report.CustomLogRequest{
		UserIDs: []string{"ghost"},
		Period:  string(report.PeriodDaily),
		Date:    "2026-06-10",
	})
	assert.ErrorIs(t, err, report.ErrNoEmployeesMatched)
}
