package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/dashboard"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	attendancesvc "github.com/rosterline/attendance-engine-go/internal/service/attendance"
)

const (
	defaultTrendDays  = 7
	siteRateWindowDay = 30
)

type DashboardServiceImpl struct {
	eventRepo    attendance.EventRepository
	settingsRepo attendance.SettingsRepository
	holidayRepo  holiday.Repository
	leaveRepo    leave.LeaveRequestRepository
	userRepo     user.DirectoryRepository
	maxWorkers   int
	now          func() time.Time
}

func NewDashboardService(
	eventRepo attendance.EventRepository,
	settingsRepo attendance.SettingsRepository,
	holidayRepo holiday.Repository,
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.DirectoryRepository,
	maxWorkers int,
) dashboard.Service {
	return &DashboardServiceImpl{
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		holidayRepo:  holidayRepo,
		leaveRepo:    leaveRepo,
		userRepo:     userRepo,
		maxWorkers:   maxWorkers,
		now:          time.Now,
	}
}

// GetSnapshot implements dashboard.Service. Half-day presences count as
// present; both leave variants count as on leave.
func (s *DashboardServiceImpl) GetSnapshot(ctx context.Context) (dashboard.SnapshotResponse, error) {
	today := attendance.TruncateToDay(s.now())

	_, records, err := s.reconcileAll(ctx, today, today)
	if err != nil {
		return dashboard.SnapshotResponse{}, err
	}

	resp := dashboard.SnapshotResponse{Date: today.Format("2006-01-02")}
	for _, recs := range records {
		for _, rec := range recs {
			switch rec.Status {
			case attendance.StatusPresent, attendance.StatusHalfDay:
				resp.Present++
			case attendance.StatusAbsent:
				resp.Absent++
			case attendance.StatusOnLeaveFull, attendance.StatusOnLeaveHalf:
				resp.OnLeave++
			}
		}
	}

	return resp, nil
}

// GetAttendanceTrend implements dashboard.Service.
func (s *DashboardServiceImpl) GetAttendanceTrend(ctx context.Context, days int) (dashboard.AttendanceTrendResponse, error) {
	if days < 1 {
		days = defaultTrendDays
	}

	end := attendance.TruncateToDay(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	_, records, err := s.reconcileAll(ctx, start, end)
	if err != nil {
		return dashboard.AttendanceTrendResponse{}, err
	}

	points := make([]dashboard.TrendPoint, days)
	for i := range points {
		points[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
	}

	for _, recs := range records {
		for i, rec := range recs {
			switch rec.Status {
			case attendance.StatusPresent, attendance.StatusHalfDay:
				points[i].Present++
			case attendance.StatusAbsent:
				points[i].Absent++
			}
		}
	}

	return dashboard.AttendanceTrendResponse{Days: days, Points: points}, nil
}

// GetProductivityTrend implements dashboard.Service. The average covers only
// Present and Half Day records, so leave, incomplete, and short-span absent
// days do not drag the line down.
func (s *DashboardServiceImpl) GetProductivityTrend(ctx context.Context, days int) (dashboard.ProductivityTrendResponse, error) {
	if days < 1 {
		days = defaultTrendDays
	}

	end := attendance.TruncateToDay(s.now())
	start := end.AddDate(0, 0, -(days - 1))

	_, records, err := s.reconcileAll(ctx, start, end)
	if err != nil {
		return dashboard.ProductivityTrendResponse{}, err
	}

	sums := make([]float64, days)
	counts := make([]int, days)
	for _, recs := range records {
		for i, rec := range recs {
			if rec.Status != attendance.StatusPresent && rec.Status != attendance.StatusHalfDay {
				continue
			}
			if rec.DurationHours == nil || *rec.DurationHours < 0 {
				continue
			}
			sums[i] += *rec.DurationHours
			counts[i]++
		}
	}

	points := make([]dashboard.ProductivityPoint, days)
	for i := range points {
		points[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
		if counts[i] > 0 {
			points[i].AverageHours = sums[i] / float64(counts[i])
		}
	}

	return dashboard.ProductivityTrendResponse{Days: days, Points: points}, nil
}

// GetSiteRates implements dashboard.Service. Rates cover the trailing 30-day
// window; sites with no presence at all are dropped and the rest are ranked
// best first.
func (s *DashboardServiceImpl) GetSiteRates(ctx context.Context) (dashboard.SiteRatesResponse, error) {
	end := attendance.TruncateToDay(s.now())
	start := end.AddDate(0, 0, -(siteRateWindowDay - 1))

	users, records, err := s.reconcileAll(ctx, start, end)
	if err != nil {
		return dashboard.SiteRatesResponse{}, err
	}

	orgs, err := s.userRepo.ListOrganizations(ctx)
	if err != nil {
		return dashboard.SiteRatesResponse{}, fmt.Errorf("failed to list organizations: %w", err)
	}

	orgNames := make(map[string]string, len(orgs))
	for _, org := range orgs {
		orgNames[org.ID] = org.Name
	}

	// presentDays / workDays per site, where a half day is half a presence
	// and weekends and holidays do not count as expected work days.
	presentDays := make(map[string]float64)
	workDays := make(map[string]float64)
	for _, u := range users {
		for _, rec := range records[u.ID] {
			if rec.Status == attendance.StatusWeekend || rec.Status == attendance.StatusHoliday {
				continue
			}
			workDays[u.OrganizationID]++
			switch rec.Status {
			case attendance.StatusPresent:
				presentDays[u.OrganizationID]++
			case attendance.StatusHalfDay:
				presentDays[u.OrganizationID] += 0.5
			}
		}
	}

	resp := dashboard.SiteRatesResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Sites:     make([]dashboard.SiteRate, 0, len(workDays)),
	}

	for orgID, work := range workDays {
		if work == 0 || presentDays[orgID] == 0 {
			continue
		}
		resp.Sites = append(resp.Sites, dashboard.SiteRate{
			OrganizationID:   orgID,
			OrganizationName: orgNames[orgID],
			Rate:             presentDays[orgID] / work * 100,
		})
	}

	sort.Slice(resp.Sites, func(i, j int) bool {
		if resp.Sites[i].Rate != resp.Sites[j].Rate {
			return resp.Sites[i].Rate > resp.Sites[j].Rate
		}
		return resp.Sites[i].OrganizationID < resp.Sites[j].OrganizationID
	})

	return resp, nil
}

// reconcileAll runs the classifier over every active employee for the range
// and returns per-user day records keyed by user ID.
func (s *DashboardServiceImpl) reconcileAll(ctx context.Context, start, end time.Time) ([]user.User, map[string][]attendance.DailyRecord, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list active users: %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	holidays, err := s.holidayRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	events, err := s.eventRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedByRange(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list approved leave: %w", err)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	snap := attendancesvc.NewSnapshot(settings, holidays)
	inputs := attendancesvc.GroupInputs(events, leaves)

	records, anomalies, err := attendancesvc.ReconcileUsers(ctx, ids, inputs, start, end, snap, s.maxWorkers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reconcile attendance: %w", err)
	}
	attendancesvc.LogAnomalies(anomalies)

	return users, records, nil
}
