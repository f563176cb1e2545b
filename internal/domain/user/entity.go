package user

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
)

// FinalConfirmationRoles is the fixed set of roles an admin may configure as
// the last approval step. Kept deliberately small.
var FinalConfirmationRoles = []Role{RoleHR, RoleAdmin, RoleDirector}

// User is a directory entry owned by an external user-management system. The
// engine only reads it for approver routing and report labels.
type User struct {
	ID                 string
	RefNo              string
	Name               string
	Role               Role
	ReportingManagerID *string
	OrganizationID     string
	Active             bool
}

// Organization is a site grouping used for attendance-rate rankings.
type Organization struct {
	ID   string
	Name string
}

func IsFinalConfirmationRole(r Role) bool {
	for _, role := range FinalConfirmationRoles {
		if role == r {
			return true
		}
	}
	return false
}
