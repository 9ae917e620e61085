package models

// Well-known bootstrap administrator, created on first run when absent.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// NewAdministrator builds an unsaved account with the administrator role.
func NewAdministrator(username, password string) *Account {
	return &Account{Username: username, Password: password, Role: RoleAdministrator}
}

// NewStandard builds an unsaved account with the standard role.
func NewStandard(username, password string) *Account {
	return &Account{Username: username, Password: password, Role: RoleStandard}
}
