package auth

import (
	"context"
	"errors"
	"testing"

	"mediaUserApp/internal/testutil"
	"mediaUserApp/models"
)

// countingFinder records whether storage was consulted.
type countingFinder struct {
	calls int
	acc   *models.Account
	err   error
}

func (f *countingFinder) FindByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	f.calls++
	return f.acc, f.err
}

func TestLogin_EmptyInputDoesNotTouchStorage(t *testing.T) {
	f := &countingFinder{acc: &models.Account{ID: 1, Username: "x", Role: models.RoleStandard}}
	a := NewAuthenticator(f)
	for _, in := range [][2]string{{"", ""}, {"   ", "x"}, {"alice", "  "}, {"\t", "\n"}} {
		if _, err := a.Login(context.Background(), in[0], in[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%q,%q) err = %v, want ErrInvalidCredentials", in[0], in[1], err)
		}
	}
	if f.calls != 0 {
		t.Fatalf("storage consulted %d times for empty input", f.calls)
	}
}

func TestLogin_StorageErrorPassesThrough(t *testing.T) {
	boom := errors.New("disk gone")
	a := NewAuthenticator(&countingFinder{err: boom})
	if _, err := a.Login(context.Background(), "alice", "pw"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want storage error", err)
	}
}

func TestLogin_EndToEnd(t *testing.T) {
	repo := testutil.NewAccountRepository(t, "authlogin")
	testutil.SeedAccount(t, repo, "alice", "pw1", models.RoleStandard)
	a := NewAuthenticator(repo)
	ctx := context.Background()

	acc, err := a.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if acc.Username != "alice" || acc.Role != models.RoleStandard {
		t.Fatalf("unexpected account: %+v", acc)
	}

	// surrounding whitespace is ignored
	if _, err := a.Login(ctx, "  alice ", " pw1\t"); err != nil {
		t.Fatalf("login with padding: %v", err)
	}

	_, errWrongPw := a.Login(ctx, "alice", "wrong")
	_, errNoUser := a.Login(ctx, "mallory", "pw1")
	if !errors.Is(errWrongPw, ErrInvalidCredentials) || !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Fatalf("errs = %v / %v, want ErrInvalidCredentials", errWrongPw, errNoUser)
	}
	if errWrongPw.Error() != errNoUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errWrongPw, errNoUser)
	}
}
