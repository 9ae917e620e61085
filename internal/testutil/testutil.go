package testutil

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"mediaUserApp/internal/db"
	"mediaUserApp/models"
	"mediaUserApp/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The name must be unique per test; the DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so every pooled connection sees the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// NewAccountRepository returns a repository over a fresh in-memory database.
func NewAccountRepository(t *testing.T, name string) *repository.AccountRepository {
	t.Helper()
	return repository.NewAccountRepository(OpenInMemoryDB(t, name))
}

// SeedAccount creates an account or fails the test.
func SeedAccount(t *testing.T, repo *repository.AccountRepository, username, password string, role models.Role) *models.Account {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	a, err := repo.Create(ctx, username, password, role)
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return a
}

// GenerateJWTHS256 returns a signed session token with the claims the app uses.
func GenerateJWTHS256(t *testing.T, secret string, a models.Account) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(a.ID, 10),
		"name": a.Username,
		"role": a.Role.String(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// CtxWithBearer returns a context containing gRPC metadata Authorization header with the given token.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}
