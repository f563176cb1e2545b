package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/leave"
	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	"github.com/rosterline/attendance-engine-go/internal/pkg/database"
)

// The settings table holds a single row; its fixed id keeps updates honest.
const settingsRowID = 1

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) attendance.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements attendance.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (attendance.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT minimum_hours_full_day, minimum_hours_half_day,
			   annual_earned_leaves, annual_sick_leaves, monthly_floating_leaves,
			   enable_notifications
		FROM attendance_settings
		WHERE id = $1
	`

	var s attendance.Settings
	err := q.QueryRow(ctx, query, settingsRowID).Scan(
		&s.MinimumHoursFullDay, &s.MinimumHoursHalfDay,
		&s.AnnualEarnedLeaves, &s.AnnualSickLeaves, &s.MonthlyFloatingLeaves,
		&s.EnableNotifications,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Settings{}, attendance.ErrSettingsNotFound
		}
		return attendance.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Update implements attendance.SettingsRepository.
func (r *settingsRepository) Update(ctx context.Context, s attendance.Settings) (attendance.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_settings
		SET minimum_hours_full_day = $2,
			minimum_hours_half_day = $3,
			annual_earned_leaves = $4,
			annual_sick_leaves = $5,
			monthly_floating_leaves = $6,
			enable_notifications = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, settingsRowID,
		s.MinimumHoursFullDay, s.MinimumHoursHalfDay,
		s.AnnualEarnedLeaves, s.AnnualSickLeaves, s.MonthlyFloatingLeaves,
		s.EnableNotifications,
	)
	if err != nil {
		return attendance.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Settings{}, attendance.ErrSettingsNotFound
	}

	return s, nil
}

type approvalPolicyRepository struct {
	db *database.DB
}

func NewApprovalPolicyRepository(db *database.DB) leave.ApprovalPolicyRepository {
	return &approvalPolicyRepository{db: db}
}

// FinalConfirmationRole implements leave.ApprovalPolicyRepository.
func (r *approvalPolicyRepository) FinalConfirmationRole(ctx context.Context) (user.Role, error) {
	q := GetQuerier(ctx, r.db)

	var role user.Role
	err := q.QueryRow(ctx,
		`SELECT final_confirmation_role FROM attendance_settings WHERE id = $1`,
		settingsRowID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", attendance.ErrSettingsNotFound
		}
		return "", fmt.Errorf("failed to get final confirmation role: %w", err)
	}

	return role, nil
}

// SetFinalConfirmationRole implements leave.ApprovalPolicyRepository.
func (r *approvalPolicyRepository) SetFinalConfirmationRole(ctx context.Context, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendance_settings SET final_confirmation_role = $2, updated_at = NOW() WHERE id = $1`,
		settingsRowID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to set final confirmation role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSettingsNotFound
	}

	return nil
}
