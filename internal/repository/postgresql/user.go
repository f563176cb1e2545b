package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rosterline/attendance-engine-go/internal/domain/user"
	"github.com/rosterline/attendance-engine-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.DirectoryRepository {
	return &userRepository{db: db}
}

const userColumns = `id, ref_no, name, role, reporting_manager_id, organization_id, active`

// GetByID implements user.DirectoryRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var u user.User
	err := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(
		&u.ID, &u.RefNo, &u.Name, &u.Role, &u.ReportingManagerID, &u.OrganizationID, &u.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// FirstByRole implements user.DirectoryRepository. Ordering by ref number
// keeps approver routing deterministic when several users hold the role.
func (r *userRepository) FirstByRole(ctx context.Context, role user.Role) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND active = TRUE
		ORDER BY ref_no ASC
		LIMIT 1
	`

	var u user.User
	err := q.QueryRow(ctx, query, role).Scan(
		&u.ID, &u.RefNo, &u.Name, &u.Role, &u.ReportingManagerID, &u.OrganizationID, &u.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNoRoleHolder
		}
		return user.User{}, fmt.Errorf("failed to get role holder: %w", err)
	}

	return u, nil
}

// ListActive implements user.DirectoryRepository.
func (r *userRepository) ListActive(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE active = TRUE ORDER BY ref_no ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.RefNo, &u.Name, &u.Role, &u.ReportingManagerID, &u.OrganizationID, &u.Active); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// ListOrganizations implements user.DirectoryRepository.
func (r *userRepository) ListOrganizations(ctx context.Context) ([]user.Organization, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM organizations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []user.Organization
	for rows.Next() {
		var org user.Organization
		if err := rows.Scan(&org.ID, &org.Name); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read organizations: %w", err)
	}

	return orgs, nil
}
