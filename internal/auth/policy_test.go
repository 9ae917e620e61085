package auth

import (
	"testing"

	"mediaUserApp/models"
)

var (
	root  = models.Account{ID: 1, Username: "admin", Role: models.RoleAdministrator}
	other = models.Account{ID: 2, Username: "admin2", Role: models.RoleAdministrator}
	alice = models.Account{ID: 3, Username: "alice", Role: models.RoleStandard}
	bob   = models.Account{ID: 4, Username: "bob", Role: models.RoleStandard}
)

func TestCanCreateUser(t *testing.T) {
	if !CanCreateUser(root) {
		t.Fatalf("administrator must be able to create users")
	}
	if CanCreateUser(alice) {
		t.Fatalf("standard user must not create users")
	}
	if CanCreateUser(models.Account{Role: models.Role(0)}) {
		t.Fatalf("unknown role must not create users")
	}
}

func TestCanDeleteUser(t *testing.T) {
	cases := []struct {
		name      string
		principal models.Account
		target    models.Account
		want      bool
	}{
		{"admin deletes standard", root, alice, true},
		{"admin deletes admin", root, other, false},
		{"admin deletes self", root, root, false},
		{"other admin deletes bootstrap admin", other, root, false},
		{"standard deletes standard", alice, bob, false},
		{"standard deletes admin", alice, root, false},
	}
	for _, c := range cases {
		if got := CanDeleteUser(c.principal, c.target); got != c.want {
			t.Fatalf("%s: got %v want %v", c.name, got, c.want)
		}
	}
}

func TestAuthorizeDelete_Reasons(t *testing.T) {
	err := AuthorizeDelete(alice, bob)
	if !IsAuthzError(err) || err.Error() != ReasonNotAuthorized {
		t.Fatalf("standard caller: %v", err)
	}
	err = AuthorizeDelete(root, other)
	if !IsAuthzError(err) || err.Error() != ReasonProtectedAccount {
		t.Fatalf("protected target: %v", err)
	}
	if err := AuthorizeDelete(root, alice); err != nil {
		t.Fatalf("allowed delete: %v", err)
	}
}

func TestAuthorizeAdmin(t *testing.T) {
	if err := AuthorizeAdmin(root); err != nil {
		t.Fatalf("administrator denied: %v", err)
	}
	for _, p := range []models.Account{alice, {Role: models.Role(0)}, {Role: models.Role(9)}} {
		err := AuthorizeAdmin(p)
		if !IsAuthzError(err) || err.Error() != ReasonNotAuthorized {
			t.Fatalf("AuthorizeAdmin(%+v) = %v", p, err)
		}
	}
	if err := AuthorizeCreate(alice); err == nil || err.Error() != AuthorizeAdmin(alice).Error() {
		t.Fatalf("AuthorizeCreate must follow AuthorizeAdmin: %v", err)
	}
}
