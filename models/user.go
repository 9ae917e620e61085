package models

import "fmt"

// Role is the closed set of account roles.
type Role int

const (
	RoleStandard Role = iota + 1
	RoleAdministrator
)

// Persisted role strings. These match the values the original users table
// stored, so an existing database keeps working.
const (
	roleStandardText      = "user"
	roleAdministratorText = "super-admin"
)

// String returns the persisted form of the role.
func (r Role) String() string {
	switch r {
	case RoleStandard:
		return roleStandardText
	case RoleAdministrator:
		return roleAdministratorText
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStandard, RoleAdministrator:
		return true
	default:
		return false
	}
}

// ParseRole maps a persisted role string back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleStandardText:
		return RoleStandard, nil
	case roleAdministratorText:
		return RoleAdministrator, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// Account represents a stored user identity.
// It maps to the `users` table in SQLite.
type Account struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	Role     Role   `db:"role" json:"role"`
}

// IsAdministrator reports whether the account holds the administrator role.
func (a Account) IsAdministrator() bool {
	return a.Role == RoleAdministrator
}
