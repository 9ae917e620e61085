// Package session holds the currently authenticated account for the life of
// the app and routes between the login, administration and playback screens.
package session

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"mediaUserApp/internal/account"
	"mediaUserApp/internal/auth"
	"mediaUserApp/internal/logging"
	"mediaUserApp/internal/media"
	"mediaUserApp/models"
)

// ErrNotLoggedIn is returned by operations that need a principal.
var ErrNotLoggedIn = errors.New("not logged in")

// Screen is the screen the UI should show.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenAdministration
	ScreenPlayback
)

func (s Screen) String() string {
	switch s {
	case ScreenAdministration:
		return "administration"
	case ScreenPlayback:
		return "playback"
	default:
		return "login"
	}
}

// ScreenFor returns the screen an account lands on after login.
func ScreenFor(r models.Role) Screen {
	switch r {
	case models.RoleAdministrator:
		return ScreenAdministration
	case models.RoleStandard:
		return ScreenPlayback
	default:
		return ScreenLogin
	}
}

// Controller is the LoggedOut / LoggedIn state machine. The zero principal
// means LoggedOut. It is driven from the UI thread only.
type Controller struct {
	accounts *account.Service
	deck     *media.Deck
	log      log.FieldLogger

	principal *models.Account
	screen    Screen
}

func NewController(accounts *account.Service, deck *media.Deck, logger log.FieldLogger) *Controller {
	return &Controller{
		accounts: accounts,
		deck:     deck,
		log:      logging.OrDiscard(logger).WithField("component", "session"),
		screen:   ScreenLogin,
	}
}

// Principal returns a copy of the logged-in account, if any.
func (c *Controller) Principal() (models.Account, bool) {
	if c.principal == nil {
		return models.Account{}, false
	}
	return *c.principal, true
}

func (c *Controller) LoggedIn() bool { return c.principal != nil }

func (c *Controller) Screen() Screen { return c.screen }

// Login authenticates and moves to LoggedIn. Logging in while already
// logged in ends the previous session first.
func (c *Controller) Login(ctx context.Context, username, password string) (Screen, error) {
	a, err := c.accounts.Login(ctx, username, password)
	if err != nil {
		return c.screen, err
	}
	if c.principal != nil {
		c.Logout()
	}
	c.principal = a
	c.screen = ScreenFor(a.Role)
	c.log.WithFields(log.Fields{"username": a.Username, "screen": c.screen}).Debug("session started")
	return c.screen, nil
}

// Logout releases any open media, then always returns to LoggedOut.
func (c *Controller) Logout() {
	if c.deck != nil {
		if err := c.deck.Release(); err != nil {
			c.log.WithError(err).Warn("release media on logout")
		}
	}
	if c.principal != nil {
		c.log.WithField("username", c.principal.Username).Debug("session ended")
	}
	c.principal = nil
	c.screen = ScreenLogin
}

func (c *Controller) requirePrincipal() (models.Account, error) {
	if c.principal == nil {
		return models.Account{}, ErrNotLoggedIn
	}
	return *c.principal, nil
}

// CreateUser creates a standard account as the current principal.
func (c *Controller) CreateUser(ctx context.Context, username, password string) (*models.Account, error) {
	p, err := c.requirePrincipal()
	if err != nil {
		return nil, err
	}
	return c.accounts.CreateUser(ctx, p, username, password)
}

// DeleteUser deletes an account as the current principal.
func (c *Controller) DeleteUser(ctx context.Context, id int64) error {
	p, err := c.requirePrincipal()
	if err != nil {
		return err
	}
	return c.accounts.DeleteUser(ctx, p, id)
}

// ListUsers returns all accounts; any logged-in account may list.
func (c *Controller) ListUsers(ctx context.Context) ([]models.Account, error) {
	if _, err := c.requirePrincipal(); err != nil {
		return nil, err
	}
	return c.accounts.ListUsers(ctx)
}

// OpenMedia runs the permission and file picker flow and opens the result.
func (c *Controller) OpenMedia(ctx context.Context) (media.Loaded, error) {
	if _, err := c.requirePrincipal(); err != nil {
		return media.Loaded{}, err
	}
	if c.deck == nil {
		return media.Loaded{}, media.ErrNoMedia
	}
	return c.deck.Load(ctx)
}

// TogglePlayback plays or pauses the open media.
func (c *Controller) TogglePlayback() (bool, error) {
	if _, err := c.requirePrincipal(); err != nil {
		return false, err
	}
	if c.deck == nil {
		return false, media.ErrNoMedia
	}
	return c.deck.Toggle()
}

// StopPlayback stops and releases the open media.
func (c *Controller) StopPlayback() error {
	if _, err := c.requirePrincipal(); err != nil {
		return err
	}
	if c.deck == nil {
		return media.ErrNoMedia
	}
	return c.deck.Stop()
}

// Message converts any error from the controller into user-facing text.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotLoggedIn):
		return auth.ReasonNotAuthorized
	case errors.Is(err, media.ErrAccessDenied):
		return "storage permission is required to open media"
	case errors.Is(err, media.ErrCancelled):
		return "no file selected"
	case errors.Is(err, media.ErrUnsupportedFormat):
		return "unsupported file format"
	case errors.Is(err, media.ErrNoMedia):
		return "select a file first"
	case errors.Is(err, media.ErrPlayback):
		return "could not play this file"
	default:
		return account.Message(err)
	}
}
