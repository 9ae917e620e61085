package auth

import (
	"context"
	"errors"
	"strings"

	"mediaUserApp/models"
)

// ErrInvalidCredentials is the single login failure. It does not say whether
// the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialFinder is the part of the account store the Authenticator needs.
type CredentialFinder interface {
	FindByCredentials(ctx context.Context, username, password string) (*models.Account, error)
}

// Authenticator turns a username/password pair into an Account.
type Authenticator struct {
	store CredentialFinder
}

func NewAuthenticator(store CredentialFinder) *Authenticator {
	return &Authenticator{store: store}
}

// Login trims both inputs and looks them up. Empty input after trimming fails
// without touching storage. Storage failures are returned as-is so callers
// can tell them apart from bad credentials.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	acc, err := a.store.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}
