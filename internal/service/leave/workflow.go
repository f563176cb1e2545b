package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
)

// Submit implements leave.Service. New requests route to the requester's
// reporting manager; requesters without one skip straight to the final
// confirmation stage.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	requester, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to resolve requester: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	request := leave.LeaveRequest{
		ID:          uuid.NewString(),
		UserID:      requester.ID,
		LeaveType:   leave.LeaveType(req.LeaveType),
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		SubmittedAt: time.Now(),
	}
	if req.DayOption != nil && *req.DayOption != "" {
		opt := leave.DayOption(*req.DayOption)
		request.DayOption = &opt
	}

	if requester.ReportingManagerID != nil {
		manager, err := s.userRepo.GetByID(ctx, *requester.ReportingManagerID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return leave.LeaveRequestResponse{}, leave.ErrApproverNotFound
			}
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to resolve reporting manager: %w", err)
		}

		request.Status = leave.StatusPendingManagerApproval
		request.CurrentApproverID = &manager.ID
	} else {
		confirmer, err := s.finalConfirmer(ctx)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}

		request.Status = leave.StatusPendingHRConfirmation
		request.CurrentApproverID = &confirmer.ID
	}

	created, err := s.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.MapRequestToResponse(created), nil
}

// Approve implements leave.Service. A manager-stage approval advances the
// request to the final confirmation stage; a final-stage approval closes it.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.loadForDecision(ctx, req)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	upd := leave.StatusUpdate{ID: request.ID}
	switch request.Status {
	case leave.StatusPendingManagerApproval:
		confirmer, err := s.finalConfirmer(ctx)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		upd.Status = leave.StatusPendingHRConfirmation
		upd.CurrentApproverID = &confirmer.ID
	case leave.StatusPendingHRConfirmation:
		upd.Status = leave.StatusApproved
	default:
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyDecided
	}

	err = s.transact(ctx, func(ctx context.Context) error {
		if err := s.UpdateFromStatus(ctx, upd, request.Status); err != nil {
			return fmt.Errorf("failed to advance leave request: %w", err)
		}
		return s.AppendApproval(ctx, decisionRecord(request, req, leave.ActionApproved))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return s.Get(ctx, request.ID)
}

// Reject implements leave.Service. Rejection at either stage is terminal.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.loadForDecision(ctx, req)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	upd := leave.StatusUpdate{ID: request.ID, Status: leave.StatusRejected}
	err = s.transact(ctx, func(ctx context.Context) error {
		if err := s.UpdateFromStatus(ctx, upd, request.Status); err != nil {
			return fmt.Errorf("failed to reject leave request: %w", err)
		}
		return s.AppendApproval(ctx, decisionRecord(request, req, leave.ActionRejected))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return s.Get(ctx, request.ID)
}

// loadForDecision fetches the request and checks the actor may decide it now.
func (s *LeaveServiceImpl) loadForDecision(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequest, error) {
	request, err := s.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.IsTerminal() {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyDecided
	}

	if request.CurrentApproverID == nil || *request.CurrentApproverID != req.ActorID {
		return leave.LeaveRequest{}, leave.ErrNotCurrentApprover
	}

	return request, nil
}

// finalConfirmer resolves the holder of the configured final-confirmation
// role.
func (s *LeaveServiceImpl) finalConfirmer(ctx context.Context) (user.User, error) {
	role, err := s.policyRepo.FinalConfirmationRole(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get final confirmation role: %w", err)
	}

	confirmer, err := s.userRepo.FirstByRole(ctx, role)
	if err != nil {
		if errors.Is(err, user.ErrNoRoleHolder) {
			return user.User{}, leave.ErrApproverNotFound
		}
		return user.User{}, fmt.Errorf("failed to resolve final confirmer: %w", err)
	}

	return confirmer, nil
}

func decisionRecord(request leave.LeaveRequest, req leave.DecisionRequest, action leave.ApprovalAction) leave.ApprovalRecord {
	stage := leave.StageManagerApproval
	if request.Status == leave.StatusPendingHRConfirmation {
		stage = leave.StageFinalConfirmation
	}

	rec := leave.ApprovalRecord{
		ID:         uuid.NewString(),
		RequestID:  request.ID,
		ApproverID: req.ActorID,
		Stage:      stage,
		Action:     action,
		DecidedAt:  time.Now(),
	}
	if req.Note != "" {
		note := req.Note
		rec.Note = &note
	}

	return rec
}
