package grpcserver

import (
	"context"
	"errors"
	"math"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"mediaUserApp/internal/account"
	"mediaUserApp/internal/auth"
	"mediaUserApp/internal/config"
	"mediaUserApp/internal/logging"
	"mediaUserApp/models"
	"mediaUserApp/repository"
)

// AccountServer exposes the account service to a UI process over gRPC.
type AccountServer struct {
	Accounts *account.Service
	Secret   string
	TokenTTL time.Duration

	now func() time.Time
}

var _ AccountServiceServer = (*AccountServer)(nil)

func (s *AccountServer) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Login checks credentials and returns the account with a session token.
func (s *AccountServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a, err := s.Accounts.Login(ctx, stringField(req, "username"), stringField(req, "password"))
	if err != nil {
		return nil, toStatus(err)
	}
	tok, err := auth.IssueToken(s.Secret, *a, s.TokenTTL, s.clock())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "issue token: %v", err)
	}
	return structpb.NewStruct(map[string]any{
		"account": accountValue(*a),
		"token":   tok,
	})
}

// ListUsers returns every account; any logged-in caller may list.
func (s *AccountServer) ListUsers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequirePrincipal(ctx); err != nil {
		return nil, err
	}
	list, err := s.Accounts.ListUsers(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]any, 0, len(list))
	for _, a := range list {
		out = append(out, accountValue(a))
	}
	return structpb.NewStruct(map[string]any{"accounts": out})
}

// CreateUser creates a standard account; administrators only.
func (s *AccountServer) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.Accounts.CreateUser(ctx, *p, stringField(req, "username"), stringField(req, "password"))
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{"account": accountValue(*a)})
}

// DeleteUser deletes a non-protected account; administrators only.
func (s *AccountServer) DeleteUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	id, ok := idField(req)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := s.Accounts.DeleteUser(ctx, *p, id); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// NewServer builds a gRPC server with the auth interceptor and the account
// service registered. Login is the only unauthenticated method.
func NewServer(cfg *config.Config, accounts *account.Service, store *repository.AccountRepository) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, store, LoginMethod)))
	RegisterAccountServiceServer(srv, &AccountServer{
		Accounts: accounts,
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL,
	})
	return srv
}

// StartGRPC starts the server on cfg.GRPC.Address and returns the bound
// address and a shutdown function.
func StartGRPC(cfg *config.Config, accounts *account.Service, store *repository.AccountRepository, logger log.FieldLogger) (string, func(context.Context) error, error) {
	if cfg == nil {
		return "", nil, errors.New("config is required")
	}
	addr := cfg.GRPC.Address
	if addr == "" {
		addr = "127.0.0.1:50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	l := logging.OrDiscard(logger)
	srv := NewServer(cfg, accounts, store)

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			l.WithError(err).Error("grpc serve")
		}
	}()

	return lis.Addr().String(), func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}

// toStatus maps service errors to gRPC status codes. The message is the
// user-facing text.
func toStatus(err error) error {
	msg := account.Message(err)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, msg)
	case auth.IsAuthzError(err):
		return status.Error(codes.PermissionDenied, msg)
	case errors.Is(err, repository.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, msg)
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, msg)
	case errors.Is(err, account.ErrMissingFields), errors.Is(err, repository.ErrInvalidAccount):
		return status.Error(codes.InvalidArgument, msg)
	default:
		return status.Error(codes.Internal, msg)
	}
}

func accountValue(a models.Account) map[string]any {
	return map[string]any{
		"id":       a.ID,
		"username": a.Username,
		"role":     a.Role.String(),
	}
}

func stringField(req *structpb.Struct, key string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[key].GetStringValue()
}

const maxExactID = 1 << 53

func idField(req *structpb.Struct) (int64, bool) {
	if req == nil {
		return 0, false
	}
	v, ok := req.GetFields()["id"]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	// ids beyond 2^53 cannot be carried exactly by a JSON number
	if !ok || n.NumberValue <= 0 || n.NumberValue > maxExactID || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, false
	}
	return int64(n.NumberValue), true
}
