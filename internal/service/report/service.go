package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/report"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	attendancesvc "github.com/rosterline/attendance-engine-go/internal/service/attendance"
)

type ReportServiceImpl struct {
	eventRepo    attendance.EventRepository
	settingsRepo attendance.SettingsRepository
	holidayRepo  holiday.Repository
	leaveRepo    leave.LeaveRequestRepository
	userRepo     user.DirectoryRepository
	maxWorkers   int
	now          func() time.Time
}

func NewReportService(
	eventRepo attendance.EventRepository,
	settingsRepo attendance.SettingsRepository,
	holidayRepo holiday.Repository,
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.DirectoryRepository,
	maxWorkers int,
) report.Service {
	return &ReportServiceImpl{
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		holidayRepo:  holidayRepo,
		leaveRepo:    leaveRepo,
		userRepo:     userRepo,
		maxWorkers:   maxWorkers,
		now:          time.Now,
	}
}

// GenerateMuster implements report.Service.
func (s *ReportServiceImpl) GenerateMuster(ctx context.Context, req report.MusterRequest) (report.MusterReport, error) {
	if err := req.Validate(); err != nil {
		return report.MusterReport{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return report.MusterReport{}, fmt.Errorf("failed to list active users: %w", err)
	}
	if len(users) == 0 {
		return report.MusterReport{}, report.ErrNoEmployeesMatched
	}

	records, err := s.reconcile(ctx, users, start, end)
	if err != nil {
		return report.MusterReport{}, err
	}

	sort.Slice(users, func(i, j int) bool { return users[i].RefNo < users[j].RefNo })

	out := report.MusterReport{
		Month:       req.Month,
		Year:        req.Year,
		DaysInMonth: end.Day(),
		GeneratedAt: s.now().Format(time.RFC3339),
		Rows:        make([]report.MonthlyReportRow, 0, len(users)),
	}

	for i, u := range users {
		row := report.MonthlyReportRow{
			SlNo:      i + 1,
			RefNo:     u.RefNo,
			StaffName: u.Name,
			DayGrid:   make(map[int]string, end.Day()),
		}

		for _, rec := range records[u.ID] {
			code := statusCode(rec.Status)
			row.DayGrid[rec.Date.Day()] = code
			switch code {
			case report.CodePresent:
				row.Present++
			case report.CodeWeekOff:
				row.WeekOff++
			case report.CodeLeave:
				row.Leaves++
			case report.CodeAbsent:
				row.Absent++
			case report.CodeHalfDay:
				row.HalfDay++
			case report.CodeHoliday:
				row.Holidays++
			}
		}

		row.TotalPayable = float64(row.Present) +
			0.5*float64(row.HalfDay) +
			float64(row.Leaves) +
			float64(row.Holidays) +
			float64(row.WeekOff)

		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// GenerateCustomLog implements report.Service.
func (s *ReportServiceImpl) GenerateCustomLog(ctx context.Context, req report.CustomLogRequest) (report.CustomLogReport, error) {
	if err := req.Validate(); err != nil {
		return report.CustomLogReport{}, err
	}

	users, err := s.resolveUsers(ctx, req.UserIDs)
	if err != nil {
		return report.CustomLogReport{}, err
	}

	start, end := req.Resolve()

	records, err := s.reconcile(ctx, users, start, end)
	if err != nil {
		return report.CustomLogReport{}, err
	}

	sort.Slice(users, func(i, j int) bool { return users[i].RefNo < users[j].RefNo })

	out := report.CustomLogReport{
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		GeneratedAt: s.now().Format(time.RFC3339),
	}

	for _, u := range users {
		for _, rec := range records[u.ID] {
			resp := attendance.MapRecordToResponse(rec)
			out.Rows = append(out.Rows, report.CustomLogRow{
				Date:     resp.Date,
				Day:      resp.Day,
				UserID:   u.ID,
				UserName: u.Name,
				CheckIn:  resp.CheckIn,
				CheckOut: resp.CheckOut,
				Duration: resp.Duration,
				Status:   resp.Status,
			})
		}
	}

	return out, nil
}

// resolveUsers maps the requested IDs onto directory entries, failing before
// any computation when none match.
func (s *ReportServiceImpl) resolveUsers(ctx context.Context, ids []string) ([]user.User, error) {
	active, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	byID := make(map[string]user.User, len(active))
	for _, u := range active {
		byID[u.ID] = u
	}

	var users []user.User
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}

	if len(users) == 0 {
		return nil, report.ErrNoEmployeesMatched
	}

	return users, nil
}

func (s *ReportServiceImpl) reconcile(ctx context.Context, users []user.User, start, end time.Time) (map[string][]attendance.DailyRecord, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	holidays, err := s.holidayRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	events, err := s.eventRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	snap := attendancesvc.NewSnapshot(settings, holidays)
	inputs := attendancesvc.GroupInputs(events, leaves)

	records, anomalies, err := attendancesvc.ReconcileUsers(ctx, ids, inputs, start, end, snap, s.maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile attendance: %w", err)
	}
	attendancesvc.LogAnomalies(anomalies)

	return records, nil
}

// statusCode compresses a day verdict into its muster-grid code. Incomplete
// days carry no payable presence, so they land in the absent column.
func statusCode(status attendance.Status) string {
	switch status {
	case attendance.StatusPresent:
		return report.CodePresent
	case attendance.StatusHalfDay:
		return report.CodeHalfDay
	case attendance.StatusOnLeaveFull, attendance.StatusOnLeaveHalf:
		return report.CodeLeave
	case attendance.StatusWeekend:
		return report.CodeWeekOff
	case attendance.StatusHoliday:
		return report.CodeHoliday
	default:
		return report.CodeAbsent
	}
}
