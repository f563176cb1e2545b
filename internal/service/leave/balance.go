package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
)

// GetBalance implements leave.Service. Earned and Sick entitlements are
// annual; Floating resets every month. Only approved requests consume
// balance, weighted by their day span.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, userID string, year, month int) (leave.BalanceResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	approved, err := s.ListApprovedByUserAndYear(ctx, userID, year)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to list approved leave: %w", err)
	}

	var earnedUsed, sickUsed, floatingUsed float64
	for _, req := range approved {
		switch req.LeaveType {
		case leave.LeaveTypeEarned:
			earnedUsed += req.Days()
		case leave.LeaveTypeSick:
			sickUsed += req.Days()
		case leave.LeaveTypeFloating:
			if req.StartDate.Month() == time.Month(month) {
				floatingUsed += req.Days()
			}
		}
	}

	return leave.BalanceResponse{
		UserID:   userID,
		Year:     year,
		Month:    month,
		Earned:   typeBalance(float64(settings.AnnualEarnedLeaves), earnedUsed),
		Sick:     typeBalance(float64(settings.AnnualSickLeaves), sickUsed),
		Floating: typeBalance(float64(settings.MonthlyFloatingLeaves), floatingUsed),
	}, nil
}

func typeBalance(entitled, used float64) leave.TypeBalance {
	return leave.TypeBalance{
		Entitled:  entitled,
		Used:      used,
		Remaining: entitled - used,
	}
}
