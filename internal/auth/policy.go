package auth

import (
	"errors"

	"mediaUserApp/models"
)

// Denial reasons shown to the user.
const (
	ReasonNotAuthorized    = "not authorized"
	ReasonProtectedAccount = "cannot delete a protected account"
)

// AuthzError is returned when the policy denies an action.
type AuthzError struct {
	Reason string
}

func (e *AuthzError) Error() string { return e.Reason }

// IsAuthzError reports whether err is a policy denial.
func IsAuthzError(err error) bool {
	var ae *AuthzError
	return errors.As(err, &ae)
}

// CanCreateUser reports whether the principal may create accounts.
func CanCreateUser(principal models.Account) bool {
	return AuthorizeCreate(principal) == nil
}

// CanDeleteUser reports whether the principal may delete target.
// Administrator accounts are never deletable, whoever asks.
func CanDeleteUser(principal, target models.Account) bool {
	return AuthorizeDelete(principal, target) == nil
}

// AuthorizeAdmin returns nil when the principal holds the administrator
// role, or an *AuthzError.
func AuthorizeAdmin(principal models.Account) error {
	if !principal.IsAdministrator() {
		return &AuthzError{Reason: ReasonNotAuthorized}
	}
	return nil
}

// AuthorizeCreate returns nil when allowed, or an *AuthzError.
func AuthorizeCreate(principal models.Account) error {
	return AuthorizeAdmin(principal)
}

// AuthorizeDelete returns nil when allowed, or an *AuthzError whose reason
// distinguishes an unprivileged caller from a protected target.
func AuthorizeDelete(principal, target models.Account) error {
	if err := AuthorizeAdmin(principal); err != nil {
		return err
	}
	switch target.Role {
	case models.RoleStandard:
		return nil
	case models.RoleAdministrator:
		return &AuthzError{Reason: ReasonProtectedAccount}
	default:
		// an unknown role is treated as protected
		return &AuthzError{Reason: ReasonProtectedAccount}
	}
}
