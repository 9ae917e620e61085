package session

import (
	"context"
	"errors"
	"testing"

	"mediaUserApp/internal/account"
	"mediaUserApp/internal/auth"
	"mediaUserApp/internal/media"
	"mediaUserApp/internal/testutil"
	"mediaUserApp/models"
	"mediaUserApp/repository"
)

func TestHandle_AdminFlow(t *testing.T) {
	f := newFixture(t, "sesscmdadmin")
	ctx := context.Background()

	r := f.ctl.Handle(ctx, LoginCommand{Username: " admin ", Password: "admin123"})
	if r.Err != nil || r.Screen != ScreenAdministration || r.Account == nil {
		t.Fatalf("login result: %+v", r)
	}
	admin := *r.Account

	r = f.ctl.Handle(ctx, CreateUserCommand{Username: "alice", Password: "pw1"})
	if r.Err != nil || r.Message != account.MsgUserCreated || len(r.Accounts) != 2 {
		t.Fatalf("create result: %+v", r)
	}
	aliceID := r.Account.ID

	r = f.ctl.Handle(ctx, CreateUserCommand{Username: "alice", Password: "pw2"})
	if r.Err == nil || r.Message != account.MsgAlreadyExists {
		t.Fatalf("duplicate result: %+v", r)
	}

	r = f.ctl.Handle(ctx, DeleteUserCommand{ID: admin.ID})
	if r.Message != auth.ReasonProtectedAccount {
		t.Fatalf("protected delete result: %+v", r)
	}

	r = f.ctl.Handle(ctx, DeleteUserCommand{ID: aliceID})
	if r.Err != nil || r.Message != account.MsgUserDeleted || len(r.Accounts) != 1 {
		t.Fatalf("delete result: %+v", r)
	}

	r = f.ctl.Handle(ctx, DeleteUserCommand{ID: aliceID})
	if r.Message != account.MsgNotFound {
		t.Fatalf("second delete result: %+v", r)
	}

	r = f.ctl.Handle(ctx, LogoutCommand{})
	if r.Err != nil || r.Screen != ScreenLogin {
		t.Fatalf("logout result: %+v", r)
	}
}

func TestHandle_PlaybackFlow(t *testing.T) {
	f := newFixture(t, "sesscmdplay")
	ctx := context.Background()
	f.ctl.Handle(ctx, LoginCommand{Username: "admin", Password: "admin123"})
	f.ctl.Handle(ctx, CreateUserCommand{Username: "alice", Password: "pw1"})
	f.ctl.Handle(ctx, LogoutCommand{})

	r := f.ctl.Handle(ctx, LoginCommand{Username: "alice", Password: "pw1"})
	if r.Screen != ScreenPlayback {
		t.Fatalf("login result: %+v", r)
	}

	r = f.ctl.Handle(ctx, OpenMediaCommand{})
	if r.Message != "no file selected" {
		t.Fatalf("cancelled pick: %+v", r)
	}

	f.access.Files = []media.Content{{Name: "song.mp3", MIMEType: "audio/mpeg"}}
	r = f.ctl.Handle(ctx, OpenMediaCommand{})
	if r.Err != nil || r.Media == nil || r.Media.Kind != media.KindAudio {
		t.Fatalf("open result: %+v", r)
	}
	if r = f.ctl.Handle(ctx, TogglePlaybackCommand{}); !r.Playing {
		t.Fatalf("toggle result: %+v", r)
	}
	if r = f.ctl.Handle(ctx, TogglePlaybackCommand{}); r.Playing {
		t.Fatalf("second toggle result: %+v", r)
	}
	if r = f.ctl.Handle(ctx, StopPlaybackCommand{}); r.Err != nil {
		t.Fatalf("stop result: %+v", r)
	}
	if r = f.ctl.Handle(ctx, StopPlaybackCommand{}); r.Message != "select a file first" {
		t.Fatalf("stop on empty deck: %+v", r)
	}
}

func TestHandle_InvalidLogin(t *testing.T) {
	f := newFixture(t, "sesscmdbad")
	for _, cmd := range []LoginCommand{{"", ""}, {"   ", "x"}, {"admin", "wrong"}, {"ghost", "admin123"}} {
		r := f.ctl.Handle(context.Background(), cmd)
		if r.Message != account.MsgInvalidCredentials || r.Screen != ScreenLogin {
			t.Fatalf("%+v: %+v", cmd, r)
		}
	}
}

// failingList lets writes through but fails every ListAll.
type failingList struct {
	*repository.AccountRepository
}

func (failingList) ListAll(ctx context.Context) ([]models.Account, error) {
	return nil, &repository.StorageError{Op: "list", Err: errors.New("disk i/o error")}
}

func TestHandle_CreateSucceedsWhenRefreshFails(t *testing.T) {
	repo := testutil.NewAccountRepository(t, "sesscmdrefresh")
	svc := account.NewService(failingList{repo}, nil)
	if _, err := svc.Bootstrap(context.Background(), models.DefaultAdminUsername, models.DefaultAdminPassword); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	ctl := NewController(svc, media.NewDeck(&testutil.FakePlayer{}, &testutil.FakeAccess{}, nil), nil)
	ctx := context.Background()
	ctl.Handle(ctx, LoginCommand{Username: "admin", Password: "admin123"})

	r := ctl.Handle(ctx, CreateUserCommand{Username: "alice", Password: "pw1"})
	if r.Err != nil || r.Message != account.MsgUserCreated || r.Account == nil {
		t.Fatalf("create result: %+v", r)
	}
	if r.RefreshErr == nil || r.Accounts != nil {
		t.Fatalf("refresh failure not reported: %+v", r)
	}
	if a, _ := repo.GetByUsername(ctx, "alice"); a == nil {
		t.Fatalf("alice not stored")
	}

	r = ctl.Handle(ctx, DeleteUserCommand{ID: r.Account.ID})
	if r.Err != nil || r.Message != account.MsgUserDeleted || r.RefreshErr == nil {
		t.Fatalf("delete result: %+v", r)
	}
}
