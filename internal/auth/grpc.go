package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mediaUserApp/models"
)

// AccountLookup resolves token claims to the current stored account.
type AccountLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
}

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that validates the
// Bearer token, reloads the account from the store, and injects it into the
// context. A token whose account was deleted, renamed, or changed role is
// rejected. Methods listed in allowUnauthenticated bypass the check.
func NewUnaryAuthInterceptor(secret string, accounts AccountLookup, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		c, err := ParseFromMD(ctx, secret)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		a, err := accounts.GetByID(ctx, c.AccountID)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "get account: %v", err)
		}
		if a == nil || a.Username != c.Username || a.Role != c.Role {
			return nil, status.Error(codes.Unauthenticated, "session no longer valid")
		}
		return handler(WithPrincipal(ctx, a), req)
	}
}

// RequirePrincipal ensures an authenticated account is present in context.
func RequirePrincipal(ctx context.Context) (*models.Account, error) {
	a, ok := FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	return a, nil
}
