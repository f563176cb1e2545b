package leave

import "context"

type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)

	Get(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]LeaveRequestResponse, error)

	GetBalance(ctx context.Context, userID string, year, month int) (BalanceResponse, error)

	GetApprovalPolicy(ctx context.Context) (ApprovalPolicyResponse, error)
	UpdateApprovalPolicy(ctx context.Context, req UpdateApprovalPolicyRequest) (ApprovalPolicyResponse, error)
}
