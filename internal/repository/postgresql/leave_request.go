package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date,
	lr.day_option, lr.reason, lr.status, lr.current_approver_id,
	lr.submitted_at, lr.updated_at
`

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, leave_type, start_date, end_date,
			day_option, reason, status, current_approver_id, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.UserID, req.LeaveType, req.StartDate, req.EndDate,
		req.DayOption, req.Reason, req.Status, req.CurrentApproverID, req.SubmittedAt,
	).Scan(&req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, u.name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.LeaveType, &req.StartDate, &req.EndDate,
		&req.DayOption, &req.Reason, &req.Status, &req.CurrentApproverID,
		&req.SubmittedAt, &req.UpdatedAt, &req.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	history, err := r.listApprovals(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	req.ApprovalHistory = history

	return req, nil
}

// UpdateFromStatus implements leave.LeaveRequestRepository. The WHERE clause
// carries the expected status, so a transition raced by another decision
// matches zero rows instead of clobbering it.
func (r *leaveRequestRepository) UpdateFromStatus(ctx context.Context, upd leave.StatusUpdate, expected leave.RequestStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, current_approver_id = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	tag, err := q.Exec(ctx, query, upd.ID, upd.Status, upd.CurrentApproverID, expected)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a stale expectation.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_requests WHERE id = $1)`, upd.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check leave request: %w", err)
		}
		if !exists {
			return leave.ErrLeaveRequestNotFound
		}
		return leave.ErrStateConflict
	}

	return nil
}

// AppendApproval implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) AppendApproval(ctx context.Context, rec leave.ApprovalRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_approvals (id, request_id, approver_id, stage, action, note, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		rec.ID, rec.RequestID, rec.ApproverID, rec.Stage, rec.Action, rec.Note, rec.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append approval record: %w", err)
	}

	return nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `, u.name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		WHERE lr.user_id = $1
		ORDER BY lr.submitted_at DESC
	`

	return r.list(ctx, query, userID)
}

// ListPendingForApprover implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListPendingForApprover(ctx context.Context, approverID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `, u.name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		WHERE lr.current_approver_id = $1
		  AND lr.status IN ('pending_manager_approval', 'pending_hr_confirmation')
		ORDER BY lr.submitted_at ASC
	`

	return r.list(ctx, query, approverID)
}

// ListApprovedByUserAndRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListApprovedByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `, u.name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		WHERE lr.user_id = $1
		  AND lr.status = 'approved'
		  AND lr.start_date <= $3
		  AND lr.end_date >= $2
		ORDER BY lr.start_date ASC
	`

	return r.list(ctx, query, userID, start, end)
}

// ListApprovedByRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListApprovedByRange(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `, u.name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		WHERE lr.status = 'approved'
		  AND lr.start_date <= $2
		  AND lr.end_date >= $1
		ORDER BY lr.user_id, lr.start_date ASC
	`

	return r.list(ctx, query, start, end)
}

// ListApprovedByUserAndYear implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListApprovedByUserAndYear(ctx context.Context, userID string, year int) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `, u.name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		WHERE lr.user_id = $1
		  AND lr.status = 'approved'
		  AND EXTRACT(YEAR FROM lr.start_date) = $2
		ORDER BY lr.start_date ASC
	`

	return r.list(ctx, query, userID, year)
}

func (r *leaveRequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.LeaveType, &req.StartDate, &req.EndDate,
			&req.DayOption, &req.Reason, &req.Status, &req.CurrentApproverID,
			&req.SubmittedAt, &req.UpdatedAt, &req.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave requests: %w", err)
	}

	return requests, nil
}

func (r *leaveRequestRepository) listApprovals(ctx context.Context, requestID string) ([]leave.ApprovalRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, request_id, approver_id, stage, action, note, decided_at
		FROM leave_approvals
		WHERE request_id = $1
		ORDER BY decided_at ASC
	`

	rows, err := q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval records: %w", err)
	}
	defer rows.Close()

	var records []leave.ApprovalRecord
	for rows.Next() {
		var rec leave.ApprovalRecord
		if err := rows.Scan(&rec.ID, &rec.RequestID, &rec.ApproverID, &rec.Stage, &rec.Action, &rec.Note, &rec.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan approval record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read approval records: %w", err)
	}

	return records, nil
}
