package session

import (
	"context"
	"fmt"

	"mediaUserApp/internal/account"
	"mediaUserApp/internal/media"
	"mediaUserApp/models"
)

// Command is a UI request handled by Controller.Handle.
type Command interface {
	command()
}

type (
	LoginCommand struct {
		Username string
		Password string
	}
	LogoutCommand     struct{}
	CreateUserCommand struct {
		Username string
		Password string
	}
	DeleteUserCommand struct {
		ID int64
	}
	ListUsersCommand      struct{}
	OpenMediaCommand      struct{}
	TogglePlaybackCommand struct{}
	StopPlaybackCommand   struct{}
)

func (LoginCommand) command()          {}
func (LogoutCommand) command()         {}
func (CreateUserCommand) command()     {}
func (DeleteUserCommand) command()     {}
func (ListUsersCommand) command()      {}
func (OpenMediaCommand) command()      {}
func (TogglePlaybackCommand) command() {}
func (StopPlaybackCommand) command()   {}

// Result is what the UI renders after a command. Err is the raw failure;
// Message is the text to show, for failures and for some successes.
// RefreshErr is set when a create or delete succeeded but reloading the
// account list afterwards failed; Err and Message still report the success.
type Result struct {
	Screen     Screen
	Account    *models.Account
	Accounts   []models.Account
	Media      *media.Loaded
	Playing    bool
	Message    string
	Err        error
	RefreshErr error
}

// Handle runs cmd and never panics or returns a bare error: every failure
// comes back as a Result with a message.
func (c *Controller) Handle(ctx context.Context, cmd Command) Result {
	var r Result
	switch cmd := cmd.(type) {
	case LoginCommand:
		_, r.Err = c.Login(ctx, cmd.Username, cmd.Password)
		if r.Err == nil {
			p, _ := c.Principal()
			r.Account = &p
		}
	case LogoutCommand:
		c.Logout()
	case CreateUserCommand:
		r.Account, r.Err = c.CreateUser(ctx, cmd.Username, cmd.Password)
		if r.Err == nil {
			r.Message = account.MsgUserCreated
			r.Accounts, r.RefreshErr = c.ListUsers(ctx)
		}
	case DeleteUserCommand:
		r.Err = c.DeleteUser(ctx, cmd.ID)
		if r.Err == nil {
			r.Message = account.MsgUserDeleted
			r.Accounts, r.RefreshErr = c.ListUsers(ctx)
		}
	case ListUsersCommand:
		r.Accounts, r.Err = c.ListUsers(ctx)
	case OpenMediaCommand:
		var l media.Loaded
		l, r.Err = c.OpenMedia(ctx)
		if r.Err == nil {
			r.Media = &l
		}
	case TogglePlaybackCommand:
		r.Playing, r.Err = c.TogglePlayback()
	case StopPlaybackCommand:
		r.Err = c.StopPlayback()
	default:
		r.Err = fmt.Errorf("unknown command %T", cmd)
	}
	if r.Err != nil {
		r.Message = Message(r.Err)
	}
	r.Screen = c.screen
	return r
}
