package account

import (
	"errors"

	"mediaUserApp/internal/auth"
	"mediaUserApp/repository"
)

// User-visible messages.
const (
	MsgInvalidCredentials = "invalid username or password"
	MsgAlreadyExists      = "this username already exists"
	MsgNotFound           = "user not found"
	MsgStorage            = "could not access the user database, please try again"
	MsgUserCreated        = "user created"
	MsgUserDeleted        = "user deleted"
)

// Message converts an error from this package's operations into the text
// shown to the user. It returns "" for nil.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ae *auth.AuthzError
	switch {
	case errors.As(err, &ae):
		return ae.Reason
	case errors.Is(err, auth.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrMissingFields):
		return ErrMissingFields.Error()
	case errors.Is(err, repository.ErrAlreadyExists):
		return MsgAlreadyExists
	case errors.Is(err, repository.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, repository.ErrInvalidAccount):
		return ErrMissingFields.Error()
	default:
		return MsgStorage
	}
}
