package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
)

type AttendanceServiceImpl struct {
	attendance.EventRepository
	attendance.SettingsRepository
	holidayRepo holiday.Repository
	leaveRepo   leave.LeaveRequestRepository
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	settingsRepo attendance.SettingsRepository,
	holidayRepo holiday.Repository,
	leaveRepo leave.LeaveRequestRepository,
) attendance.Service {
	return &AttendanceServiceImpl{
		EventRepository:    eventRepo,
		SettingsRepository: settingsRepo,
		holidayRepo:        holidayRepo,
		leaveRepo:          leaveRepo,
	}
}

// snapshot freezes settings and holidays before a reconciliation batch
// starts.
func (s *AttendanceServiceImpl) snapshot(ctx context.Context) (Snapshot, error) {
	settings, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	return NewSnapshot(settings, holidays), nil
}

// GetUserRecords implements attendance.Service.
func (s *AttendanceServiceImpl) GetUserRecords(ctx context.Context, req attendance.RecordRangeRequest) (attendance.RecordRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordRangeResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return attendance.RecordRangeResponse{}, err
	}

	events, err := s.EventRepository.ListByUserAndRange(ctx, req.UserID, start, end)
	if err != nil {
		return attendance.RecordRangeResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedByUserAndRange(ctx, req.UserID, start, end)
	if err != nil {
		return attendance.RecordRangeResponse{}, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	records, anomalies, err := Reconcile(req.UserID, start, end, events, leaves, snap)
	if err != nil {
		return attendance.RecordRangeResponse{}, err
	}
	LogAnomalies(anomalies)

	responses := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.MapRecordToResponse(rec))
	}

	return attendance.RecordRangeResponse{
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Records:   responses,
	}, nil
}

// GetSettings implements attendance.Service.
func (s *AttendanceServiceImpl) GetSettings(ctx context.Context) (attendance.SettingsResponse, error) {
	settings, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return attendance.SettingsResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}
	return attendance.MapSettingsToResponse(settings), nil
}

// UpdateSettings implements attendance.Service.
func (s *AttendanceServiceImpl) UpdateSettings(ctx context.Context, req attendance.UpdateSettingsRequest) (attendance.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SettingsResponse{}, err
	}

	current, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return attendance.SettingsResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	next, err := req.Apply(current)
	if err != nil {
		return attendance.SettingsResponse{}, err
	}

	updated, err := s.SettingsRepository.Update(ctx, next)
	if err != nil {
		return attendance.SettingsResponse{}, fmt.Errorf("failed to update attendance settings: %w", err)
	}

	return attendance.MapSettingsToResponse(updated), nil
}

// ListHolidays implements attendance.Service.
func (s *AttendanceServiceImpl) ListHolidays(ctx context.Context) ([]holiday.Response, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.Response, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.MapToResponse(h))
	}
	return responses, nil
}

// AddHoliday implements attendance.Service.
func (s *AttendanceServiceImpl) AddHoliday(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error) {
	if err := req.Validate(); err != nil {
		return holiday.Response{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		ID:   uuid.NewString(),
		Date: date,
		Name: req.Name,
	})
	if err != nil {
		return holiday.Response{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return holiday.MapToResponse(created), nil
}

// RemoveHoliday implements attendance.Service.
func (s *AttendanceServiceImpl) RemoveHoliday(ctx context.Context, id string) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

// LogAnomalies records data gaps for audit. Classification already computed
// through them; nothing is retried or rejected here.
func LogAnomalies(anomalies []attendance.Anomaly) {
	for _, a := range anomalies {
		slog.Warn("attendance data gap",
			"user_id", a.UserID,
			"date", a.Date.Format("2006-01-02"),
			"kind", string(a.Kind),
		)
	}
}
