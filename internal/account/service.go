// Package account is the interface the UI and session layer use to log in
// and administer accounts. It combines the store, the authenticator, and
// the authorization policy, and returns plain result values.
package account

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"mediaUserApp/internal/auth"
	"mediaUserApp/internal/logging"
	"mediaUserApp/models"
	"mediaUserApp/repository"
)

// ErrMissingFields is returned when a username or password is blank.
var ErrMissingFields = errors.New("please fill in all fields")

// Service implements login, createUser, deleteUser and listUsers.
// Accounts it returns are copies with the password cleared.
type Service struct {
	store repository.AccountStore
	authn *auth.Authenticator
	log   log.FieldLogger
}

func NewService(store repository.AccountStore, logger log.FieldLogger) *Service {
	return &Service{
		store: store,
		authn: auth.NewAuthenticator(store),
		log:   logging.OrDiscard(logger).WithField("component", "account"),
	}
}

// Login authenticates the pair and returns the account.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Account, error) {
	a, err := s.authn.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.log.WithField("username", strings.TrimSpace(username)).Info("login rejected")
		} else {
			s.log.WithError(err).Error("login failed")
		}
		return nil, err
	}
	s.log.WithFields(log.Fields{"username": a.Username, "role": a.Role}).Info("login")
	return redact(a), nil
}

// CreateUser creates a standard account on behalf of principal.
func (s *Service) CreateUser(ctx context.Context, principal models.Account, username, password string) (*models.Account, error) {
	if err := auth.AuthorizeCreate(principal); err != nil {
		s.log.WithField("principal", principal.Username).Warn("create user denied")
		return nil, err
	}
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	std := models.NewStandard(username, password)
	a, err := s.store.Create(ctx, std.Username, std.Password, std.Role)
	if err != nil {
		if !errors.Is(err, repository.ErrAlreadyExists) {
			s.log.WithError(err).Error("create user failed")
		}
		return nil, err
	}
	s.log.WithFields(log.Fields{"principal": principal.Username, "username": a.Username, "id": a.ID}).Info("user created")
	return redact(a), nil
}

// DeleteUser removes the account with id on behalf of principal.
// Callers without the administrator role are denied before the lookup, so
// they learn nothing about which ids exist.
func (s *Service) DeleteUser(ctx context.Context, principal models.Account, id int64) error {
	if err := auth.AuthorizeAdmin(principal); err != nil {
		s.log.WithField("principal", principal.Username).Warn("delete user denied")
		return err
	}
	target, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.log.WithError(err).Error("delete user lookup failed")
		return err
	}
	if target == nil {
		return repository.ErrNotFound
	}
	if err := auth.AuthorizeDelete(principal, *target); err != nil {
		s.log.WithFields(log.Fields{"principal": principal.Username, "target": target.Username}).Warn("delete user denied")
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.WithError(err).Error("delete user failed")
		}
		return err
	}
	s.log.WithFields(log.Fields{"principal": principal.Username, "username": target.Username, "id": id}).Info("user deleted")
	return nil
}

// ListUsers returns every account in insertion order.
func (s *Service) ListUsers(ctx context.Context) ([]models.Account, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.WithError(err).Error("list users failed")
		return nil, err
	}
	for i := range list {
		list[i].Password = ""
	}
	return list, nil
}

// Bootstrap creates the well-known administrator when it does not exist.
// It reports whether an account was created. Credentials are trimmed the
// same way Login trims them, so the stored account can always log in.
func (s *Service) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return false, ErrMissingFields
	}
	ok, err := s.store.Exists(ctx, username)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	admin := models.NewAdministrator(username, password)
	if _, err := s.store.Create(ctx, admin.Username, admin.Password, admin.Role); err != nil {
		// lost a race with another bootstrap; the account exists either way
		if errors.Is(err, repository.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	s.log.WithField("username", username).Info("bootstrap administrator created")
	return true, nil
}

func redact(a *models.Account) *models.Account {
	out := *a
	out.Password = ""
	return &out
}
