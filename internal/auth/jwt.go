package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"mediaUserApp/models"
)

// Claims is what a session token asserts about its holder.
type Claims struct {
	AccountID int64
	Username  string
	Role      models.Role
}

type tokenClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type principalKey struct{}

// WithPrincipal stores the authenticated account in context.
func WithPrincipal(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, principalKey{}, a)
}

// FromContext retrieves the authenticated account from context (if any).
func FromContext(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(principalKey{}).(*models.Account)
	return a, ok && a != nil
}

// IssueToken signs an HS256 session token for the account.
func IssueToken(secret string, a models.Account, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	c := tokenClaims{
		Name: a.Username,
		Role: a.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(a.ID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// ParseFromMD extracts and validates a Bearer token from gRPC metadata.
func ParseFromMD(ctx context.Context, secret string) (*Claims, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, errors.New("missing metadata")
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(vals[0], " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}
	return ParseToken(strings.TrimSpace(parts[1]), secret)
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*tokenClaims)
	if c == nil || c.Name == "" || c.Subject == "" {
		return nil, errors.New("invalid claims")
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.New("invalid subject")
	}
	role, err := models.ParseRole(c.Role)
	if err != nil {
		return nil, err
	}
	return &Claims{AccountID: id, Username: c.Name, Role: role}, nil
}
