package leave

import (
	"context"
	"time"

	"github.com/rosterline/attendance-engine-go/internal/domain/user"
)

// StatusUpdate carries one workflow transition to storage.
type StatusUpdate struct {
	ID                string
	Status            RequestStatus
	CurrentApproverID *string
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// UpdateFromStatus applies the transition only when the stored status still
	// equals expected. Returns ErrStateConflict when it no longer does, so
	// concurrent decisions on the same request serialize cleanly.
	UpdateFromStatus(ctx context.Context, upd StatusUpdate, expected RequestStatus) error

	AppendApproval(ctx context.Context, rec ApprovalRecord) error

	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]LeaveRequest, error)

	// ListApprovedByUserAndRange returns approved requests overlapping the
	// inclusive day range for one user.
	ListApprovedByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]LeaveRequest, error)

	// ListApprovedByRange returns approved requests overlapping the range for
	// all users.
	ListApprovedByRange(ctx context.Context, start, end time.Time) ([]LeaveRequest, error)

	ListApprovedByUserAndYear(ctx context.Context, userID string, year int) ([]LeaveRequest, error)
}

// ApprovalPolicyRepository exposes the admin-configured final confirmation
// role.
type ApprovalPolicyRepository interface {
	FinalConfirmationRole(ctx context.Context) (user.Role, error)
	SetFinalConfirmationRole(ctx context.Context, role user.Role) error
}
