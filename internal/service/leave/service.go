package leave

import (
	"context"
	"fmt"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	"github.com/rosterline/attendance-engine-go/internal/pkg/database"
	"github.com/rosterline/attendance-engine-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	userRepo     user.DirectoryRepository
	policyRepo   leave.ApprovalPolicyRepository
	settingsRepo attendance.SettingsRepository

	// transact runs fn atomically; decisions write two rows.
	transact func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	requestRepo leave.LeaveRequestRepository,
	userRepo user.DirectoryRepository,
	policyRepo leave.ApprovalPolicyRepository,
	settingsRepo attendance.SettingsRepository,
) leave.Service {
	return &LeaveServiceImpl{
		LeaveRequestRepository: requestRepo,
		userRepo:               userRepo,
		policyRepo:             policyRepo,
		settingsRepo:           settingsRepo,
		transact: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Get implements leave.Service.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	req, err := s.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return leave.MapRequestToResponse(req), nil
}

// ListByUser implements leave.Service.
func (s *LeaveServiceImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.MapRequestToResponse(req))
	}

	return responses, nil
}

// GetApprovalPolicy implements leave.Service.
func (s *LeaveServiceImpl) GetApprovalPolicy(ctx context.Context) (leave.ApprovalPolicyResponse, error) {
	role, err := s.policyRepo.FinalConfirmationRole(ctx)
	if err != nil {
		return leave.ApprovalPolicyResponse{}, fmt.Errorf("failed to get approval policy: %w", err)
	}

	return leave.ApprovalPolicyResponse{FinalConfirmationRole: string(role)}, nil
}

// UpdateApprovalPolicy implements leave.Service.
func (s *LeaveServiceImpl) UpdateApprovalPolicy(ctx context.Context, req leave.UpdateApprovalPolicyRequest) (leave.ApprovalPolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApprovalPolicyResponse{}, err
	}

	if err := s.policyRepo.SetFinalConfirmationRole(ctx, user.Role(req.FinalConfirmationRole)); err != nil {
		return leave.ApprovalPolicyResponse{}, fmt.Errorf("failed to update approval policy: %w", err)
	}

	return leave.ApprovalPolicyResponse{FinalConfirmationRole: req.FinalConfirmationRole}, nil
}

// ListPendingForApprover implements leave.Service.
func (s *LeaveServiceImpl) ListPendingForApprover(ctx context.Context, approverID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListPendingForApprover(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.MapRequestToResponse(req))
	}

	return responses, nil
}
