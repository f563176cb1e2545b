package leave

import "errors"

// Leave workflow errors
var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveAlreadyDecided  = errors.New("leave request has already been approved or rejected")
	ErrStateConflict        = errors.New("leave request is no longer in the expected state")
	ErrNotCurrentApprover   = errors.New("only the current approver may decide this request")
	ErrApproverNotFound     = errors.New("no approver could be resolved for this request")
)
