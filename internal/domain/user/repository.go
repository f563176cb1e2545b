package user

import "context"

// DirectoryRepository is a read-only view over the externally owned user
// directory.
type DirectoryRepository interface {
	GetByID(ctx context.Context, id string) (User, error)

	// FirstByRole returns the first active user holding the role, ordered by
	// ref number so routing stays deterministic.
	FirstByRole(ctx context.Context, role Role) (User, error)

	ListActive(ctx context.Context) ([]User, error)
	ListOrganizations(ctx context.Context) ([]Organization, error)
}
