package auth

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc/metadata"

	"mediaUserApp/internal/testutil"
	"mediaUserApp/models"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	acc := models.Account{ID: 7, Username: "alice", Role: models.RoleStandard}
	tok, err := IssueToken(testSecret, acc, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := ParseToken(tok, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.AccountID != 7 || c.Username != "alice" || c.Role != models.RoleStandard {
		t.Fatalf("claims mismatch: %+v", c)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	acc := models.Account{ID: 7, Username: "alice", Role: models.RoleAdministrator}
	tok, _ := IssueToken(testSecret, acc, time.Hour, time.Now())
	if _, err := ParseToken(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
	if _, err := ParseToken(tok+"x", testSecret); err == nil {
		t.Fatalf("expected error for tampered token")
	}
	expired, _ := IssueToken(testSecret, acc, time.Minute, time.Now().Add(-time.Hour))
	if _, err := ParseToken(expired, testSecret); err == nil {
		t.Fatalf("expected error for expired token")
	}
	if _, err := IssueToken("", acc, time.Hour, time.Now()); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestParseFromMD(t *testing.T) {
	acc := models.Account{ID: 3, Username: "bob", Role: models.RoleStandard}
	tok := testutil.GenerateJWTHS256(t, testSecret, acc)

	c, err := ParseFromMD(testutil.CtxWithBearer(context.Background(), tok), testSecret)
	if err != nil {
		t.Fatalf("ParseFromMD: %v", err)
	}
	if c.Username != "bob" || c.AccountID != 3 {
		t.Fatalf("claims mismatch: %+v", c)
	}

	if _, err := ParseFromMD(context.Background(), testSecret); err == nil {
		t.Fatalf("expected error for missing metadata")
	}
	basic := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic "+tok))
	if _, err := ParseFromMD(basic, testSecret); err == nil {
		t.Fatalf("expected error for non-Bearer scheme")
	}
}
